package match

import (
	"sort"
	"strings"
)

// MinSuggestionScore is the similarity below which a candidate is not suggested.
const MinSuggestionScore = 0.5

// Candidate is a scored suggestion.
type Candidate struct {
	Path  string
	Score float64
}

// Closest returns up to n candidates most similar to path, best first.
// Scores compare the last path segments as well as the whole path, so that
// "va.info.AC_raw" still finds "va.info_raw.AC_raw".
func Closest(path string, candidates []string, n int) []string {
	var scored []Candidate

	for _, c := range candidates {
		score := max(
			Similarity(path, c),
			Similarity(lastSegment(path), lastSegment(c)),
		)
		if score < MinSuggestionScore {
			continue
		}

		scored = append(scored, Candidate{Path: c, Score: score})
	}

	// Stable so that ties keep schema order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > n {
		scored = scored[:n]
	}

	out := make([]string, len(scored))
	for i, c := range scored {
		out[i] = c.Path
	}

	return out
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}

	return path
}
