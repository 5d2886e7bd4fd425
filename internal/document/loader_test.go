package document

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annotation-schema/internal/schema"
)

const exomes = `
datasets:
  - name: exomes
    schema:
      - name: rsid
        type: String
      - name: info
        fields:
          - name: AC
            type: Array[Int]
            attributes:
              Number: A
              Description: Allele count
          - name: AN
            type: Int
      - name: filters
        type: Set[String]
    records:
      - rsid: rs1
        info:
          AC: [1, 0]
          AN: 10
        filters: [RF]
  - name: scores
    type: Array[Double]
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(exomes))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Empty(t, f.Root)
	assert.Equal(t, DefaultRoot, f.RootOr(""))
	assert.Equal(t, "sa", f.RootOr("sa"))
	require.Len(t, f.Datasets, 2)

	s, err := f.Datasets[0].Struct()
	require.NoError(t, err)
	assert.Equal(t, "Struct{rsid: String, info: Struct{AC: Array[Int], AN: Int}, filters: Set[String]}", s.String())

	ac, err := schema.Lookup("va.info.AC", s, "va")
	require.NoError(t, err)
	assert.Equal(t, "A", ac.Attributes["Number"])

	root, err := f.Datasets[1].RootType()
	require.NoError(t, err)
	assert.Equal(t, "Array[Double]", root.String())

	_, err = f.Datasets[1].Struct()
	require.ErrorIs(t, err, schema.ErrNotStruct)
}

func TestParse_InvalidFields(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing type", "datasets:\n  - schema:\n      - name: a\n"},
		{"bad type", "datasets:\n  - schema:\n      - name: a\n        type: Array[Nope]\n"},
		{"type with fields", "datasets:\n  - schema:\n      - name: a\n        type: Int\n        fields:\n          - name: b\n            type: Int\n"},
		{"duplicate names", "datasets:\n  - schema:\n      - name: a\n        type: Int\n      - name: a\n        type: Int\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			_, err = f.Structs()
			assert.Error(t, err)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("datasets: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse document YAML")
}

func TestHosts(t *testing.T) {
	f, err := Parse([]byte(exomes))
	require.NoError(t, err)

	hosts, err := f.Hosts(f.RootOr(""))
	require.NoError(t, err)
	require.Len(t, hosts, 2)

	v, err := hosts[0].Get(hosts[0].Records[0], "va.info.AC")
	require.NoError(t, err)
	assert.Equal(t, []any{1, 0}, v)
	assert.Empty(t, hosts[1].Records)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	f, err := Parse([]byte(exomes))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(f, path))

	back, err := LoadFile(path)
	require.NoError(t, err)

	want, err := f.Structs()
	require.NoError(t, err)

	got, err := back.Datasets[0].Struct()
	require.NoError(t, err)
	assert.True(t, schema.StructType(want[0]).Equal(schema.StructType(got)))
	assert.Equal(t, f.Datasets[0].Records, back.Datasets[0].Records)
}

func TestFromType(t *testing.T) {
	s := schema.NewStruct(
		schema.NewField("info", schema.StructOf(
			schema.NewField("AC", schema.ArrayOf(schema.Int())).WithAttributes(schema.Attributes{"Number": "A"}),
		)),
		schema.NewField("empty", schema.StructOf()),
	)

	d := FromType("x", schema.StructType(s), nil)

	require.Len(t, d.Schema, 2)
	assert.Equal(t, "AC", d.Schema[0].Fields[0].Name)
	assert.Equal(t, "Array[Int]", d.Schema[0].Fields[0].Type)
	assert.Equal(t, "Struct{}", d.Schema[1].Type)

	back, err := d.Struct()
	require.NoError(t, err)
	assert.True(t, schema.StructType(s).Equal(schema.StructType(back)))

	assert.Equal(t, "Int", FromType("y", schema.Int(), nil).Type)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestJSONSchema(t *testing.T) {
	data, err := JSONSchema()
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "annotation-schema document", m["title"])
	assert.Contains(t, string(data), "datasets")
}
