package allele

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"annotation-schema/internal/diagnostic"
	"annotation-schema/internal/group"
	"annotation-schema/internal/schema"
)

// VEPConsequenceFields are the per-allele consequence arrays under the VEP
// root that a split filters down to the surviving allele.
var VEPConsequenceFields = []string{
	"transcript_consequences",
	"intergenic_consequences",
	"motif_feature_consequences",
	"regulatory_feature_consequences",
}

// SplitOptions configure PlanSplit.
type SplitOptions struct {
	// DropReference turns R-based annotations into A-based ones.
	DropReference bool
	// VEPRoot, when set, adds consequence filtering rules under it.
	VEPRoot string
}

// PlanSplit returns the rules rewriting A- and R-based annotations when a
// multi-allelic record is split into one record per alternate allele.
func PlanSplit(groups *group.Groups, opts SplitOptions) []Rule {
	var rules []Rule

	for _, path := range groups.Paths(group.KeyOf(group.NumberA)) {
		rules = append(rules, Rule{Target: path, Op: OpIndexAlt})
	}

	rOp := OpRefAndAlt
	if opts.DropReference {
		rOp = OpAltOnly
	}

	for _, path := range groups.Paths(group.KeyOf(group.NumberR)) {
		rules = append(rules, Rule{Target: path, Op: rOp})
	}

	if opts.VEPRoot != "" {
		for _, sub := range VEPConsequenceFields {
			rules = append(rules, Rule{Target: schema.JoinPath(opts.VEPRoot, sub), Op: OpFilterConsequences})
		}
	}

	return rules
}

// SubsetOptions configure PlanSubset.
type SubsetOptions struct {
	// Extra rules are appended after the generated ones.
	Extra []Rule
}

// PlanSubset returns the rules rewriting R-, A- and G-based annotations when
// alleles are removed from a record. G-based values are filtered, not
// renumbered: a second pass is needed to reindex them to the reduced allele
// set.
func PlanSubset(groups *group.Groups, opts SubsetOptions) []Rule {
	var rules []Rule

	for _, path := range groups.Paths(group.KeyOf(group.NumberR)) {
		rules = append(rules, Rule{Target: path, Op: OpSelectAlleles})
	}

	for _, path := range groups.Paths(group.KeyOf(group.NumberA)) {
		rules = append(rules, Rule{Target: path, Op: OpSelectAlts})
	}

	for _, path := range groups.Paths(group.KeyOf(group.NumberG)) {
		rules = append(rules, Rule{Target: path, Op: OpDropGenotypes})
	}

	return append(rules, opts.Extra...)
}

// RenderRules joins the host expressions of rules, one per line.
func RenderRules(rules []Rule) string {
	exprs := make([]string, len(rules))
	for i, r := range rules {
		exprs[i] = r.Render()
	}

	return strings.Join(exprs, ",\n")
}

// SplitDatasetOptions configure PlanSplitDataset.
type SplitDatasetOptions struct {
	Root string
	// NumberKey is the arity attribute, group.NumberKey when empty.
	NumberKey     string
	Catalogue     []string
	DropReference bool
}

// SplitPlan is everything a host needs to split a dataset.
type SplitPlan struct {
	Rules []Rule `yaml:"rules"`
	// Schema is the record schema after the split, without G-based fields.
	Schema *schema.Struct `yaml:"-"`
	// Dropped lists the G-based paths removed from Schema.
	Dropped []string `yaml:"dropped,omitempty"`
}

// PlanSplitDataset classifies <root>.info by arity and plans a full split:
// A/R rules, VEP consequence filtering when <root>.vep exists, filter
// recomputation when <root>.info.AS_FilterStatus and <root>.filters exist,
// and removal of G-based fields, which have no meaning on a biallelic record.
func PlanSplitDataset(s *schema.Struct, opts SplitDatasetOptions) (SplitPlan, diagnostic.Diagnostics, error) {
	infoRoot := schema.JoinPath(opts.Root, "info")

	numberKey := opts.NumberKey
	if numberKey == "" {
		numberKey = group.NumberKey
	}

	groups, diags, err := group.NumberedBy(s, numberKey, infoRoot, false, true)
	if err != nil {
		return SplitPlan{}, diags, fmt.Errorf("classify %s: %w", infoRoot, err)
	}

	splitOpts := SplitOptions{DropReference: opts.DropReference}
	if vep := schema.JoinPath(opts.Root, "vep"); schema.Exists(vep, s, opts.Root) {
		splitOpts.VEPRoot = vep
	}

	rules := PlanSplit(groups, splitOpts)

	asFilters := schema.JoinPath(infoRoot, "AS_FilterStatus")
	filters := schema.JoinPath(opts.Root, "filters")

	if schema.Exists(asFilters, s, opts.Root) && schema.Exists(filters, s, opts.Root) {
		// AS_FilterStatus is A-based, so it is still an array of
		// per-allele sets (of length one) when this rule runs.
		rules = append(rules, Rule{
			Target:    filters,
			Source:    asFilters,
			Op:        OpRecomputeFilters,
			Catalogue: opts.Catalogue,
			Indexed:   !isAlleleIndexed(groups, asFilters),
		})
	}

	out := s
	dropped := groups.Paths(group.KeyOf(group.NumberG))

	for _, path := range dropped {
		rel, err := schema.RelativePath(opts.Root, path)
		if err != nil {
			return SplitPlan{}, diags, err
		}

		if out, err = schema.Drop(out, rel); err != nil {
			return SplitPlan{}, diags, err
		}
	}

	return SplitPlan{Rules: rules, Schema: out, Dropped: dropped}, diags, nil
}

func isAlleleIndexed(groups *group.Groups, path string) bool {
	for _, k := range []string{group.NumberA, group.NumberR} {
		for _, p := range groups.Paths(group.KeyOf(k)) {
			if p == path {
				return true
			}
		}
	}

	return false
}

// MarshalYAML writes the op by name.
func (o Op) MarshalYAML() (any, error) {
	if o == OpInvalid {
		return nil, fmt.Errorf("cannot marshal invalid allele op")
	}

	return o.String(), nil
}

// UnmarshalYAML reads an op name.
func (o *Op) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	op, err := ParseOp(s)
	if err != nil {
		return err
	}

	*o = op

	return nil
}
