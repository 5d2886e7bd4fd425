package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"AC", "AC", 0},
		{"", "AN", 2},
		{"AF", "", 2},
		{"AC", "AF", 1},
		{"AC", "ACx", 1},
		{"AC", "ac", 2},
		{"kitten", "sitting", 3},
		{"va.info.AC", "va.info.AF", 1},
		{"AS_FilterStatus", "AS_FilterStatuses", 2},
		{"gène", "gene", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("AN", "AN"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
	assert.InDelta(t, 1-3.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	assert.InDelta(t, 0.75, Similarity("gène", "gene"), 1e-9)
}

func TestClosest(t *testing.T) {
	paths := []string{"va.rsid", "va.qual", "va.info.AC", "va.info.AF", "va.info.AN", "va.filters"}

	assert.Equal(t, []string{"va.info.AC", "va.info.AF"}, Closest("va.info.AX", paths, 2))
	assert.Empty(t, Closest("completely_unrelated_name", paths, 3))
	assert.Equal(t, []string{"va.filters"}, Closest("va.filter", paths, 1))
}

func BenchmarkDistance(b *testing.B) {
	for b.Loop() {
		Distance("va.info.AS_FilterStatus", "va.info.AS_RF_POSITIVE_TRAIN")
	}
}
