package allele

import (
	"fmt"
	"slices"
)

// DefaultCatalogue is the set of allele-specific filter names used when none
// is configured.
var DefaultCatalogue = []string{"AC0", "RF"}

// RecomputeFilters removes from filters every allele-specific name (one in
// catalogue) that no surviving allele carries in its per-allele set.
// Names outside the catalogue are kept. Order of filters is preserved.
func RecomputeFilters(filters, catalogue []string, surviving [][]string) []string {
	if len(catalogue) == 0 {
		catalogue = DefaultCatalogue
	}

	carried := make(map[string]bool)

	for _, set := range surviving {
		for _, name := range set {
			carried[name] = true
		}
	}

	out := make([]string, 0, len(filters))

	for _, name := range filters {
		if slices.Contains(catalogue, name) && !carried[name] {
			continue
		}

		out = append(out, name)
	}

	return out
}

// catalogue is the rule's filter catalogue, DefaultCatalogue when unset.
func (r Rule) catalogue() []string {
	if len(r.Catalogue) == 0 {
		return DefaultCatalogue
	}

	return r.Catalogue
}

func (r Rule) applyFilters(filtersV, perAlleleV any) (any, error) {
	if filtersV == nil {
		return nil, nil
	}

	filters, err := toStrings(filtersV)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Target, err)
	}

	var surviving [][]string

	switch {
	case perAlleleV == nil:
	case r.Indexed:
		set, err := toStrings(perAlleleV)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.source(), err)
		}

		surviving = [][]string{set}
	default:
		sets, ok := perAlleleV.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: %w: %T", r.source(), ErrNotArray, perAlleleV)
		}

		for _, s := range sets {
			set, err := toStrings(s)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", r.source(), err)
			}

			surviving = append(surviving, set)
		}
	}

	out := RecomputeFilters(filters, r.catalogue(), surviving)

	res := make([]any, len(out))
	for i, s := range out {
		res[i] = s
	}

	return res, nil
}

func toStrings(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return x, nil
	case []any:
		out := make([]string, 0, len(x))

		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("filter name is %T, want string", e)
			}

			out = append(out, s)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotArray, v)
	}
}
