package allele

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annotation-schema/internal/group"
	"annotation-schema/internal/schema"
)

func number(n string) schema.Attributes {
	return schema.Attributes{group.NumberKey: n}
}

func datasetSchema() *schema.Struct {
	return schema.NewStruct(
		schema.NewField("filters", schema.SetOf(schema.String())),
		schema.NewField("info", schema.StructOf(
			schema.NewField("AC", schema.ArrayOf(schema.Int())).WithAttributes(number("A")),
			schema.NewField("AD", schema.ArrayOf(schema.Int())).WithAttributes(number("R")),
			schema.NewField("PL", schema.ArrayOf(schema.Int())).WithAttributes(number("G")),
			schema.NewField("AS_FilterStatus", schema.ArrayOf(schema.SetOf(schema.String()))).WithAttributes(number("A")),
			schema.NewField("AN", schema.Int()),
		)),
		schema.NewField("vep", schema.StructOf(
			schema.NewField("transcript_consequences", schema.ArrayOf(schema.StructOf(
				schema.NewField("allele_num", schema.Int()),
			))),
		)),
	)
}

func numbered(t *testing.T) *group.Groups {
	t.Helper()

	g, _, err := group.Numbered(datasetSchema(), "va.info", false, true)
	require.NoError(t, err)

	return g
}

func targets(rules []Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Op.String() + " " + r.Target
	}

	return out
}

func TestPlanSplit(t *testing.T) {
	rules := PlanSplit(numbered(t), SplitOptions{VEPRoot: "va.vep"})

	assert.Equal(t, []string{
		"index_alt va.info.AC",
		"index_alt va.info.AS_FilterStatus",
		"ref_and_alt va.info.AD",
		"filter_consequences va.vep.transcript_consequences",
		"filter_consequences va.vep.intergenic_consequences",
		"filter_consequences va.vep.motif_feature_consequences",
		"filter_consequences va.vep.regulatory_feature_consequences",
	}, targets(rules))
}

func TestPlanSplit_DropReference(t *testing.T) {
	rules := PlanSplit(numbered(t), SplitOptions{DropReference: true})

	assert.Equal(t, []string{
		"index_alt va.info.AC",
		"index_alt va.info.AS_FilterStatus",
		"alt_only va.info.AD",
	}, targets(rules))
}

func TestPlanSubset(t *testing.T) {
	extra := Rule{Target: "va.filters", Source: "va.info.AS_FilterStatus", Op: OpRecomputeFilters}
	rules := PlanSubset(numbered(t), SubsetOptions{Extra: []Rule{extra}})

	assert.Equal(t, []string{
		"select_alleles va.info.AD",
		"select_alts va.info.AC",
		"select_alts va.info.AS_FilterStatus",
		"drop_genotypes va.info.PL",
		"recompute_filters va.filters",
	}, targets(rules))
}

func TestRenderRules(t *testing.T) {
	out := RenderRules([]Rule{
		{Target: "a", Op: OpIndexAlt},
		{Target: "b", Op: OpAltOnly},
	})
	assert.Equal(t, "a = [a[va.aIndex - 1]],\nb = [b[va.aIndex]]", out)
}

func TestPlanSplitDataset(t *testing.T) {
	plan, diags, err := PlanSplitDataset(datasetSchema(), SplitDatasetOptions{Root: "va"})
	require.NoError(t, err)
	assert.NotEmpty(t, diags.Infos)

	last := plan.Rules[len(plan.Rules)-1]
	assert.Equal(t, OpRecomputeFilters, last.Op)
	assert.Equal(t, "va.filters", last.Target)
	assert.Equal(t, "va.info.AS_FilterStatus", last.Source)
	assert.False(t, last.Indexed)

	assert.Equal(t, []string{"va.info.PL"}, plan.Dropped)
	assert.False(t, schema.Exists("va.info.PL", plan.Schema, "va"))
	assert.True(t, schema.Exists("va.info.AC", plan.Schema, "va"))
	assert.True(t, schema.Exists("va.info.PL", datasetSchema(), "va"), "input is not mutated")
}

func TestPlanSplitDataset_MissingInfo(t *testing.T) {
	s := schema.NewStruct(schema.NewField("rsid", schema.String()))

	_, _, err := PlanSplitDataset(s, SplitDatasetOptions{Root: "va"})
	require.ErrorIs(t, err, schema.ErrFieldNotFound)
}
