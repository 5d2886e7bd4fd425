package memhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annotation-schema/internal/allele"
	"annotation-schema/internal/group"
	"annotation-schema/internal/schema"
)

func numbered(n string) schema.Attributes {
	return schema.Attributes{group.NumberKey: n}
}

func variantSchema() *schema.Struct {
	return schema.NewStruct(
		schema.NewField("alts", schema.ArrayOf(schema.String())),
		schema.NewField("filters", schema.SetOf(schema.String())),
		schema.NewField("info", schema.StructOf(
			schema.NewField("AC", schema.ArrayOf(schema.Int())).WithAttributes(numbered("A")),
			schema.NewField("AD", schema.ArrayOf(schema.Int())).WithAttributes(numbered("R")),
			schema.NewField("PL", schema.ArrayOf(schema.Int())).WithAttributes(numbered("G")),
			schema.NewField("AS_FilterStatus", schema.ArrayOf(schema.SetOf(schema.String()))).WithAttributes(numbered("A")),
		)),
	)
}

func variant() Record {
	return rec(
		"alts", []any{"T", "G"},
		"filters", []any{"RF", "AC0", "LowQual"},
		"info", rec(
			"AC", []any{3, 0},
			"AD", []any{10, 3, 0},
			"PL", []any{0, 1, 2, 3, 4, 5},
			"AS_FilterStatus", []any{[]any{"RF"}, []any{"AC0"}},
		),
	)
}

func TestSplit(t *testing.T) {
	plan, _, err := allele.PlanSplitDataset(variantSchema(), allele.SplitDatasetOptions{Root: "va"})
	require.NoError(t, err)

	plan.Rules = append([]allele.Rule{{Target: "va.alts", Op: allele.OpIndexAlt}}, plan.Rules...)

	d := New("va", schema.StructType(variantSchema()), variant())

	out, err := d.Split(plan, CountAt("va.alts"))
	require.NoError(t, err)
	require.Len(t, out.Records, 2)

	first, second := out.Records[0], out.Records[1]

	assert.Equal(t, []any{"T"}, Get(first, []string{"alts"}))
	assert.Equal(t, []any{3}, Get(first, []string{"info", "AC"}))
	assert.Equal(t, []any{10, 3}, Get(first, []string{"info", "AD"}))
	assert.Equal(t, []any{"RF", "LowQual"}, Get(first, []string{"filters"}))
	assert.Nil(t, Get(first, []string{"info", "PL"}))

	assert.Equal(t, []any{"G"}, Get(second, []string{"alts"}))
	assert.Equal(t, []any{10, 0}, Get(second, []string{"info", "AD"}))
	assert.Equal(t, []any{"AC0", "LowQual"}, Get(second, []string{"filters"}))

	assert.False(t, schema.Exists("va.info.PL", out.Type.Struct, "va"))
	assert.Equal(t, []any{0, 1, 2, 3, 4, 5}, Get(d.Records[0], []string{"info", "PL"}), "input is not mutated")
}

func TestSubset(t *testing.T) {
	groups, _, err := group.Numbered(variantSchema(), "va.info", false, true)
	require.NoError(t, err)

	rules := allele.PlanSubset(groups, allele.SubsetOptions{Extra: []allele.Rule{
		{Target: "va.filters", Source: "va.info.AS_FilterStatus", Op: allele.OpRecomputeFilters},
	}})

	d := New("va", schema.StructType(variantSchema()), variant())

	out, err := d.Subset(rules, Keep(0, 1), CountAt("va.alts"))
	require.NoError(t, err)

	r := out.Records[0]
	assert.Equal(t, []any{3}, Get(r, []string{"info", "AC"}))
	assert.Equal(t, []any{10, 3}, Get(r, []string{"info", "AD"}))
	assert.Equal(t, []any{0, 1, 2}, Get(r, []string{"info", "PL"}))
	assert.Equal(t, []any{[]any{"RF"}}, Get(r, []string{"info", "AS_FilterStatus"}))
	assert.Equal(t, []any{"RF", "LowQual"}, Get(r, []string{"filters"}))
}

func TestSplit_BadRecord(t *testing.T) {
	d := New("va", schema.StructType(variantSchema()), rec("alts", "T"))

	_, err := d.Split(allele.SplitPlan{}, CountAt("va.alts"))
	require.ErrorIs(t, err, allele.ErrNotArray)
}
