package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// variantSchema is the usual record-annotation root of a variant dataset.
func variantSchema() *Struct {
	return NewStruct(
		NewField("rsid", String()),
		NewField("qual", Double()),
		NewField("filters", SetOf(String())),
		NewField("info", StructOf(
			NewField("AC", ArrayOf(Int())).WithAttributes(Attributes{"Number": "A"}),
			NewField("AF", ArrayOf(Double())).WithAttributes(Attributes{"Number": "A"}),
			NewField("AN", Int()),
			NewField("nested", StructOf(
				NewField("depth", Int()),
			)),
		)),
	)
}

func TestFlatten_LeafOnlyRecursive(t *testing.T) {
	flat := Flatten(variantSchema(), "va", true, true)

	assert.Equal(t, []string{
		"va.rsid",
		"va.qual",
		"va.filters",
		"va.info.AC",
		"va.info.AF",
		"va.info.AN",
		"va.info.nested.depth",
	}, Paths(flat))

	for pair := flat.Oldest(); pair != nil; pair = pair.Next() {
		assert.False(t, pair.Value.Type.IsStruct(), "%s should be a leaf", pair.Key)
	}
}

func TestFlatten_QuotedNamesStayDistinct(t *testing.T) {
	s := NewStruct(
		NewField("AF.raw", Double()),
		NewField("AF", StructOf(NewField("raw", Int()))),
	)

	assert.Equal(t, []string{"va.`AF.raw`", "va.AF.raw"}, Paths(Flatten(s, "va", true, true)))

	quoted, err := TypeOf("va.`AF.raw`", s, "va")
	require.NoError(t, err)
	assert.Equal(t, Double(), quoted)

	nested, err := TypeOf("va.AF.raw", s, "va")
	require.NoError(t, err)
	assert.Equal(t, Int(), nested)
}

func TestFlatten_PreOrderStructs(t *testing.T) {
	flat := Flatten(variantSchema(), "va", false, true)

	assert.Equal(t, []string{
		"va.rsid",
		"va.qual",
		"va.filters",
		"va.info",
		"va.info.AC",
		"va.info.AF",
		"va.info.AN",
		"va.info.nested",
		"va.info.nested.depth",
	}, Paths(flat))
}

func TestFlatten_NonRecursiveIgnoresLeafOnly(t *testing.T) {
	for _, leafOnly := range []bool{true, false} {
		flat := Flatten(variantSchema(), "va", leafOnly, false)
		assert.Equal(t, []string{"va.rsid", "va.qual", "va.filters", "va.info"}, Paths(flat))

		info, ok := flat.Get("va.info")
		require.True(t, ok)
		assert.True(t, info.Type.IsStruct())
	}
}

func TestFlatten_EmptyRoot(t *testing.T) {
	flat := Flatten(variantSchema(), "", true, false)
	assert.Equal(t, []string{"rsid", "qual", "filters", "info"}, Paths(flat))
}

func TestFlatten_PathsAreUnique(t *testing.T) {
	flat := Flatten(variantSchema(), "va", false, true)
	seen := map[string]bool{}

	for _, p := range Paths(flat) {
		assert.False(t, seen[p], "duplicate path %s", p)
		seen[p] = true
	}
}

func TestLookup(t *testing.T) {
	s := variantSchema()

	f, err := Lookup("va.info.AC", s, "va")
	require.NoError(t, err)
	assert.Equal(t, "AC", f.Name)
	assert.Equal(t, "A", f.Attributes["Number"])

	f, err = Lookup("va.info", s, "va")
	require.NoError(t, err)
	assert.True(t, f.Type.IsStruct())

	assert.True(t, Exists("va.info.nested", s, "va"))
	assert.False(t, Exists("va.info.AX", s, "va"))
}

func TestLookup_NotFound(t *testing.T) {
	_, err := Lookup("va.info.AX", variantSchema(), "va")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFieldNotFound))

	var nf *FieldNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "va.info.AX", nf.Path)
	assert.Contains(t, nf.Suggestions, "va.info.AC")
	assert.Contains(t, err.Error(), "did you mean")
}

func TestStructAt(t *testing.T) {
	s := variantSchema()

	info, err := StructAt("va.info", s, "va")
	require.NoError(t, err)
	assert.Equal(t, []string{"AC", "AF", "AN", "nested"}, info.Names())

	root, err := StructAt("va", s, "va")
	require.NoError(t, err)
	assert.Same(t, s, root)

	_, err = StructAt("va.qual", s, "va")
	assert.ErrorIs(t, err, ErrNotStruct)
}

func TestInsert(t *testing.T) {
	s := variantSchema()

	out, err := Insert(s, []string{"info", "nested"}, NewField("mq", Double()))
	require.NoError(t, err)

	typ, err := TypeOf("va.info.nested.mq", out, "va")
	require.NoError(t, err)
	assert.Equal(t, "Double", typ.String())

	// the input is untouched
	assert.False(t, Exists("va.info.nested.mq", s, "va"))

	out, err = Insert(s, []string{"vep", "lof"}, NewField("flags", String()))
	require.NoError(t, err)
	assert.Equal(t, []string{"rsid", "qual", "filters", "info", "vep"}, out.Names())
	assert.True(t, Exists("va.vep.lof.flags", out, "va"))

	_, err = Insert(s, []string{"qual"}, NewField("x", Int()))
	assert.ErrorIs(t, err, ErrNotStruct)
}

func TestUpdate_ReplacesInPlace(t *testing.T) {
	out, err := Update(variantSchema(), []string{"info", "AN"}, func(f Field, exists bool) Field {
		assert.True(t, exists)
		return f.WithAttributes(Attributes{"Number": "1"})
	})
	require.NoError(t, err)

	f, err := Lookup("va.info.AN", out, "va")
	require.NoError(t, err)
	assert.Equal(t, 2, f.Index)
	assert.Equal(t, "1", f.Attributes["Number"])
}
