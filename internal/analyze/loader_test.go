package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annotation-schema/internal/schema"
)

const fixturePkg = "annotation-schema/fixtures/gnomad"

func TestLoad(t *testing.T) {
	c, err := Load(fixturePkg)
	require.NoError(t, err)

	assert.Equal(t, []string{fixturePkg}, c.Packages())
	assert.NotNil(t, c.Lookup(TypeID{PkgPath: fixturePkg, Name: "Variant"}))
	assert.NotNil(t, c.Lookup(TypeID{PkgPath: fixturePkg, Name: "Impact"}))
	assert.Nil(t, c.Lookup(TypeID{PkgPath: fixturePkg, Name: "Missing"}))

	assert.Equal(t, []TypeID{{PkgPath: fixturePkg, Name: "Info"}}, c.Find("Info"))
	assert.Empty(t, c.Find("info"))
}

func TestCatalog_Struct(t *testing.T) {
	c, err := Load(fixturePkg)
	require.NoError(t, err)

	info, err := c.Struct(TypeID{PkgPath: fixturePkg, Name: "Info"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AC", "AF", "AN", "AD", "PL", "AS_FilterStatus", "DB", "InbreedingCoeff", "GQ_HIST_ALL"}, info.Names())

	variant, err := c.Struct(TypeID{PkgPath: fixturePkg, Name: "Variant"})
	require.NoError(t, err)
	// Debug is tagged out, cache is unexported
	assert.Equal(t, []string{"rsid", "qual", "filters", "info", "vep"}, variant.Names())

	_, err = c.Struct(TypeID{PkgPath: fixturePkg, Name: "Impact"})
	require.ErrorIs(t, err, ErrNotStruct)

	_, err = c.Struct(TypeID{PkgPath: fixturePkg, Name: "Missing"})
	require.ErrorIs(t, err, ErrTypeNotFound)
}

func TestLoadStruct(t *testing.T) {
	s, err := LoadStruct(fixturePkg, "Variant")
	require.NoError(t, err)

	assert.Equal(t, "Struct{rsid: String, qual: Double, filters: Set[String], "+
		"info: Struct{AC: Array[Int], AF: Array[Double], AN: Int, AD: Array[Int], PL: Array[Int], "+
		"AS_FilterStatus: Array[Set[String]], DB: Boolean, InbreedingCoeff: Float, GQ_HIST_ALL: Array[Long]}, "+
		"vep: Struct{vep_version: String, transcript_consequences: Array[Struct{allele_num: Int, gene_symbol: String, impact: String}]}}",
		s.String())

	ac, err := schema.Lookup("va.info.AC", s, "va")
	require.NoError(t, err)
	assert.Equal(t, schema.Attributes{"Number": "A", "Description": "Allele count in genotypes"}, ac.Attributes)

	coeff, err := schema.Lookup("va.info.InbreedingCoeff", s, "va")
	require.NoError(t, err)
	assert.Empty(t, coeff.Attributes)
}

func TestLoadStruct_Errors(t *testing.T) {
	_, err := LoadStruct(fixturePkg, "Node")
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), "Node.Next")

	_, err = LoadStruct(fixturePkg, "Bad")
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), "Bad.Ch")

	_, err = LoadStruct(fixturePkg, "Nope")
	require.ErrorIs(t, err, ErrTypeNotFound)
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		value   string
		want    Tag
		wantErr bool
	}{
		{value: "-", want: Tag{Skip: true}},
		{value: "AC", want: Tag{Name: "AC", Attributes: schema.Attributes{}}},
		{value: ",Number=A", want: Tag{Attributes: schema.Attributes{"Number": "A"}}},
		{value: "AF,Number=A,Description=Allele frequency", want: Tag{Name: "AF", Attributes: schema.Attributes{"Number": "A", "Description": "Allele frequency"}}},
		{value: "AF,Number", wantErr: true},
		{value: "AF,=A", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseTag(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypePath(t *testing.T) {
	p := NewTypePath("Variant").Field("VEP").Field("TranscriptConsequences").Slice().Field("Impact")
	assert.Equal(t, "Variant.VEP.TranscriptConsequences[].Impact", p.String())
}
