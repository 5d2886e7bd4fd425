package allele

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"annotation-schema/internal/common"
	"annotation-schema/utils"
)

var (
	ErrNotArray        = errors.New("value is not an array")
	ErrIndexOutOfRange = errors.New("allele index out of range")
	ErrInvalidContext  = errors.New("invalid allele context")
)

// Op is the kind of rewrite a Rule performs.
type Op int

const (
	OpInvalid            Op = iota
	OpIndexAlt              // A-based, split: [v[aIndex-1]]
	OpRefAndAlt             // R-based, split: [v[0], v[aIndex]]
	OpAltOnly               // R-based, split dropping the reference: [v[aIndex]]
	OpSelectAlleles         // R-based, subset: [v[i] for i in aIndices]
	OpSelectAlts            // A-based, subset: [v[i-1] for i in aIndices[1:]]
	OpDropGenotypes         // G-based, subset: drop genotypes with a removed allele
	OpFilterConsequences    // split: keep consequences whose allele_num is aIndex
	OpRecomputeFilters      // drop allele-specific filters no surviving allele carries
)

// String returns a human-readable representation of the Op.
func (o Op) String() string {
	switch o {
	case OpIndexAlt:
		return "index_alt"
	case OpRefAndAlt:
		return "ref_and_alt"
	case OpAltOnly:
		return "alt_only"
	case OpSelectAlleles:
		return "select_alleles"
	case OpSelectAlts:
		return "select_alts"
	case OpDropGenotypes:
		return "drop_genotypes"
	case OpFilterConsequences:
		return "filter_consequences"
	case OpRecomputeFilters:
		return "recompute_filters"
	default:
		return common.UnknownStr
	}
}

// ParseOp is the inverse of Op.String.
func ParseOp(s string) (Op, error) {
	for o := OpIndexAlt; o <= OpRecomputeFilters; o++ {
		if o.String() == s {
			return o, nil
		}
	}

	return OpInvalid, fmt.Errorf("unknown allele op %q", s)
}

// Context is the per-record allele state a rule is evaluated against.
type Context struct {
	// AIndex is the 1-based surviving alternate allele of a split.
	AIndex int
	// AIndices are the surviving alleles of a subset; AIndices[0] is 0.
	AIndices []int
	// NAltAlleles is the number of alternate alleles before the change.
	NAltAlleles int
}

// Rule rewrites the annotation at Target from the value at Source.
type Rule struct {
	Target string `yaml:"target"`
	// Source defaults to Target.
	Source string `yaml:"source,omitempty"`
	Op     Op     `yaml:"op"`
	// Catalogue lists the allele-specific filter names, for OpRecomputeFilters.
	Catalogue []string `yaml:"catalogue,omitempty"`
	// Indexed is set when Source already holds the per-record filter set
	// (after splitting) rather than one set per allele, for OpRecomputeFilters.
	Indexed bool `yaml:"indexed,omitempty"`
}

func (r Rule) source() string {
	if r.Source == "" {
		return r.Target
	}

	return r.Source
}

// Render returns the host expression of the rule.
func (r Rule) Render() string {
	t, s := r.Target, r.source()

	switch r.Op {
	case OpIndexAlt:
		return fmt.Sprintf("%s = [%s[va.aIndex - 1]]", t, s)
	case OpRefAndAlt:
		return fmt.Sprintf("%s = [%s[0], %s[va.aIndex]]", t, s, s)
	case OpAltOnly:
		return fmt.Sprintf("%s = [%s[va.aIndex]]", t, s)
	case OpSelectAlleles:
		return fmt.Sprintf("%s = aIndices.map(i => %s[i])", t, s)
	case OpSelectAlts:
		return fmt.Sprintf("%s = aIndices[1:].map(i => %s[i - 1])", t, s)
	case OpDropGenotypes:
		return fmt.Sprintf("%s = let removed_alleles = range(1, v.nAltAlleles + 1).filter(i => !aIndices.toSet.contains(i)).toSet in\n"+
			"range(%s.size).filter(i => !removed_alleles.contains(gtj(i)) && !removed_alleles.contains(gtk(i)))\n"+
			".map(i => %s[i])", t, s, s)
	case OpFilterConsequences:
		return fmt.Sprintf("%s = %s.filter(x => x.allele_num == va.aIndex)", t, s)
	case OpRecomputeFilters:
		flatten := ".toSet().flatten()"
		if r.Indexed {
			flatten = ""
		}

		return fmt.Sprintf(`%s = %s.filter(x => !["%s"].toSet.difference(%s%s).contains(x))`,
			t, t, strings.Join(r.catalogue(), `","`), s, flatten)
	default:
		return t + " = " + s
	}
}

// Getter reads the current value at a path of the record being rewritten.
type Getter func(path string) any

// Apply evaluates the rule against one record and returns the new value of
// Target. Arrays are []any; sets of filter names are []any of strings.
// A null source stays null.
func (r Rule) Apply(get Getter, ctx Context) (any, error) {
	if r.Op == OpRecomputeFilters {
		return r.applyFilters(get(r.Target), get(r.source()))
	}

	v := get(r.source())
	if v == nil {
		return nil, nil
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %T", r.source(), ErrNotArray, v)
	}

	out, err := r.applyArray(arr, ctx)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.Op, r.source(), err)
	}

	return out, nil
}

func (r Rule) applyArray(v []any, ctx Context) ([]any, error) {
	switch r.Op {
	case OpIndexAlt:
		x, err := at(v, ctx.AIndex-1)
		return []any{x}, err
	case OpRefAndAlt:
		ref, err := at(v, 0)
		if err != nil {
			return nil, err
		}

		alt, err := at(v, ctx.AIndex)

		return []any{ref, alt}, err
	case OpAltOnly:
		x, err := at(v, ctx.AIndex)
		return []any{x}, err
	case OpSelectAlleles:
		return SelectAlleles(v, ctx.AIndices)
	case OpSelectAlts:
		return SelectAlts(v, ctx.AIndices)
	case OpDropGenotypes:
		return DropGenotypes(v, ctx.AIndices, ctx.NAltAlleles)
	case OpFilterConsequences:
		return filterConsequences(v, ctx.AIndex), nil
	default:
		return nil, fmt.Errorf("op %s does not apply to arrays", r.Op)
	}
}

func at(v []any, i int) (any, error) {
	if !utils.IsInRange(0, i, len(v)-1) {
		return nil, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(v))
	}

	return v[i], nil
}

// SelectAlleles keeps the R-based values of the surviving alleles, in order.
func SelectAlleles(v []any, aIndices []int) ([]any, error) {
	if err := checkIndices(aIndices); err != nil {
		return nil, err
	}

	out := make([]any, 0, len(aIndices))

	for _, i := range aIndices {
		x, err := at(v, i)
		if err != nil {
			return nil, err
		}

		out = append(out, x)
	}

	return out, nil
}

// SelectAlts keeps the A-based values of the surviving alternate alleles.
func SelectAlts(v []any, aIndices []int) ([]any, error) {
	if err := checkIndices(aIndices); err != nil {
		return nil, err
	}

	out := make([]any, 0, len(aIndices)-1)

	for _, i := range aIndices[1:] {
		x, err := at(v, i-1)
		if err != nil {
			return nil, err
		}

		out = append(out, x)
	}

	return out, nil
}

// DropGenotypes keeps, in index order, the G-based values of genotypes made
// only of surviving alleles. The result keeps the original layout order and
// is not renumbered to the reduced allele set.
func DropGenotypes(v []any, aIndices []int, nAltAlleles int) ([]any, error) {
	if err := checkIndices(aIndices); err != nil {
		return nil, err
	}

	removed := RemovedAlleles(aIndices, nAltAlleles)

	out := make([]any, 0, len(v))

	for idx, x := range v {
		g := Decode(idx)
		if removed[g.J] || removed[g.K] {
			continue
		}

		out = append(out, x)
	}

	return out, nil
}

// RemovedAlleles returns {1..nAltAlleles} minus aIndices.
func RemovedAlleles(aIndices []int, nAltAlleles int) map[int]bool {
	removed := make(map[int]bool, nAltAlleles)

	for i := 1; i <= nAltAlleles; i++ {
		if !slices.Contains(aIndices, i) {
			removed[i] = true
		}
	}

	return removed
}

// KeptGenotypeIndices lists the triangular indices DropGenotypes keeps for
// nAllele alleles, reference included.
func KeptGenotypeIndices(aIndices []int, nAllele int) []int {
	removed := RemovedAlleles(aIndices, nAllele-1)

	var out []int

	for idx, g := range Genotypes(nAllele) {
		if !removed[g.J] && !removed[g.K] {
			out = append(out, idx)
		}
	}

	return out
}

func checkIndices(aIndices []int) error {
	if len(aIndices) == 0 || aIndices[0] != 0 {
		return fmt.Errorf("%w: aIndices must start with the reference allele 0, got %v", ErrInvalidContext, aIndices)
	}

	return nil
}

func filterConsequences(v []any, aIndex int) []any {
	out := make([]any, 0, len(v))

	for _, x := range v {
		csq, ok := x.(map[string]any)
		if !ok {
			continue
		}

		if n, ok := asInt(csq["allele_num"]); ok && n == aIndex {
			out = append(out, x)
		}
	}

	return out
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), n == float64(int(n))
	default:
		return 0, false
	}
}
