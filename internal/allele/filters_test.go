package allele

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeFilters(t *testing.T) {
	tests := []struct {
		name      string
		filters   []string
		catalogue []string
		surviving [][]string
		want      []string
	}{
		{
			name:      "drops catalogue names no allele carries",
			filters:   []string{"RF", "AC0", "LowQual"},
			surviving: [][]string{{"RF"}, {}},
			want:      []string{"RF", "LowQual"},
		},
		{
			name:      "non-catalogue names are kept",
			filters:   []string{"InbreedingCoeff"},
			surviving: nil,
			want:      []string{"InbreedingCoeff"},
		},
		{
			name:      "custom catalogue",
			filters:   []string{"RF", "AC0"},
			catalogue: []string{"AC0"},
			surviving: [][]string{{}},
			want:      []string{"RF"},
		},
		{
			name:      "name carried by any surviving allele",
			filters:   []string{"AC0"},
			surviving: [][]string{{}, {"AC0"}},
			want:      []string{"AC0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecomputeFilters(tt.filters, tt.catalogue, tt.surviving))
		})
	}
}

func TestRule_ApplyRecomputeFilters(t *testing.T) {
	rec := map[string]any{
		"va.filters":              values("RF", "AC0", "LowQual"),
		"va.info.AS_FilterStatus": values(values("AC0"), values()),
	}

	r := Rule{Target: "va.filters", Source: "va.info.AS_FilterStatus", Op: OpRecomputeFilters}

	got, err := r.Apply(getter(rec), Context{})
	require.NoError(t, err)
	assert.Equal(t, values("AC0", "LowQual"), got)

	rec["va.info.AS_FilterStatus"] = values("RF")
	r.Indexed = true

	got, err = r.Apply(getter(rec), Context{})
	require.NoError(t, err)
	assert.Equal(t, values("RF", "LowQual"), got)
}
