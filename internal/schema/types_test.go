package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name       string
		typ        Type
		numeric    bool
		exportable bool
	}{
		{"Int", Int(), true, true},
		{"Long", Long(), true, true},
		{"Float", Float(), true, true},
		{"Double", Double(), true, true},
		{"String", String(), false, true},
		{"Boolean", Boolean(), false, true},
		{"Array", ArrayOf(Int()), false, true},
		{"Set", SetOf(String()), false, true},
		{"Struct", StructOf(NewField("a", Int())), false, false},
		{"Invalid", Type{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.numeric, IsNumeric(tt.typ))
			assert.Equal(t, tt.exportable, IsNativelyExportable(tt.typ))
		})
	}
}

func TestSameTag(t *testing.T) {
	assert.True(t, SameTag(Int(), Int()))
	assert.False(t, SameTag(Int(), Long()))
	assert.False(t, SameTag(Int(), String()))
	assert.False(t, SameTag(ArrayOf(Int()), SetOf(Int())))

	// element types are not part of the tag
	assert.True(t, SameTag(ArrayOf(Int()), ArrayOf(String())))
	assert.True(t, SameTag(StructOf(NewField("a", Int())), StructOf()))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, Identical, Compare(ArrayOf(Int()), ArrayOf(Int())))
	assert.Equal(t, SameTagOnly, Compare(ArrayOf(Int()), ArrayOf(String())))
	assert.Equal(t, Incompatible, Compare(Int(), Double()))
	assert.Equal(t, SameTagOnly, Compare(
		StructOf(NewField("a", Int())),
		StructOf(NewField("a", Int()), NewField("b", Int())),
	))
	assert.Equal(t, "same_tag", SameTagOnly.String())
}

func TestParseType_RoundTrip(t *testing.T) {
	exprs := []string{
		"Int",
		"Boolean",
		"Array[Double]",
		"Set[String]",
		"Array[Set[Long]]",
		"Struct{}",
		"Struct{AC: Array[Int], AN: Int}",
		"Struct{info: Struct{AC: Array[Int]}, filters: Set[String]}",
		"Struct{`1kg.AF`: Double, `10x`: Float}",
	}

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			typ, err := ParseType(expr)
			require.NoError(t, err)
			assert.Equal(t, expr, typ.String())
		})
	}
}

func TestParseType_Structure(t *testing.T) {
	got, err := ParseType(" Struct { a : Int , b : Array[ String ] } ")
	require.NoError(t, err)

	want := StructOf(NewField("a", Int()), NewField("b", ArrayOf(String())))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseType() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseType_Errors(t *testing.T) {
	bad := []string{
		"",
		"Integer",
		"Array[Int",
		"Array Int",
		"Struct{a Int}",
		"Struct{a: Int,}",
		"Struct{a: Int, a: Long}",
		"Int trailing",
		"Struct{`a: Int}",
	}

	for _, expr := range bad {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseType(expr)
			assert.ErrorIs(t, err, ErrInvalidType)
		})
	}
}

func TestQuoteFieldName(t *testing.T) {
	assert.Equal(t, "AC", QuoteFieldName("AC"))
	assert.Equal(t, "`1kg`", QuoteFieldName("1kg"))
	assert.Equal(t, "`AF.raw`", QuoteFieldName("AF.raw"))
	assert.Equal(t, "", QuoteFieldName(""))
}

func TestBuildStruct(t *testing.T) {
	s, err := BuildStruct([]Field{NewField("a", Int()), NewField("b", Int())})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Fields[0].Index)
	assert.Equal(t, 1, s.Fields[1].Index)

	_, err = BuildStruct([]Field{NewField("a", Int()), NewField("a", Long())})
	assert.ErrorIs(t, err, ErrInvalidType)

	assert.Panics(t, func() { NewStruct(NewField("a", Int()), NewField("a", Int())) })
}

func TestAttributes_CloneIsIndependent(t *testing.T) {
	f := NewField("AC", ArrayOf(Int())).WithAttributes(Attributes{"Number": "A"})
	g := f.WithAttributes(f.Attributes)
	g.Attributes["Number"] = "R"

	v, ok := f.Attr("Number")
	assert.True(t, ok)
	assert.Equal(t, "A", v)
}
