package document

import (
	"fmt"
	"maps"

	"annotation-schema/internal/common"
	"annotation-schema/internal/memhost"
	"annotation-schema/internal/schema"
)

// structTag is the type expression allowed next to nested fields.
const structTag = "Struct"

// ToField converts a document field to a schema field.
func (f Field) ToField() (schema.Field, error) {
	var (
		t   schema.Type
		err error
	)

	switch {
	case !common.IsEmpty(f.Fields):
		if f.Type != "" && f.Type != structTag {
			return schema.Field{}, fmt.Errorf("field %s: type %q cannot have nested fields", f.Name, f.Type)
		}

		var s *schema.Struct

		s, err = ToStruct(f.Fields)
		t = schema.StructType(s)
	case f.Type == "":
		return schema.Field{}, fmt.Errorf("field %s: %w: missing type", f.Name, schema.ErrInvalidType)
	default:
		t, err = schema.ParseType(f.Type)
	}

	if err != nil {
		return schema.Field{}, fmt.Errorf("field %s: %w", f.Name, err)
	}

	return schema.NewField(f.Name, t).WithAttributes(f.Attributes), nil
}

// ToStruct converts document fields to a Struct.
func ToStruct(fields []Field) (*schema.Struct, error) {
	out := make([]schema.Field, 0, len(fields))

	for _, f := range fields {
		sf, err := f.ToField()
		if err != nil {
			return nil, err
		}

		out = append(out, sf)
	}

	return schema.BuildStruct(out)
}

// FromField converts a schema field to a document field. Struct fields are
// written as nested fields.
func FromField(f schema.Field) Field {
	out := Field{Name: f.Name}
	if len(f.Attributes) > 0 {
		out.Attributes = maps.Clone(f.Attributes)
	}

	if f.Type.IsStruct() {
		out.Fields = FromStruct(f.Type.Struct)
		if common.IsEmpty(out.Fields) {
			out.Type = structTag + "{}"
		}
	} else {
		out.Type = f.Type.String()
	}

	return out
}

// FromStruct converts the fields of a Struct to document fields.
func FromStruct(s *schema.Struct) []Field {
	out := make([]Field, 0, s.Len())
	for _, f := range s.Fields {
		out = append(out, FromField(f))
	}

	return out
}

// RootType returns the type of the dataset root.
func (d Dataset) RootType() (schema.Type, error) {
	if d.Type != "" {
		if !common.IsEmpty(d.Schema) {
			return schema.Type{}, fmt.Errorf("dataset %s: both schema and type are set", d.Name)
		}

		return schema.ParseType(d.Type)
	}

	s, err := ToStruct(d.Schema)
	if err != nil {
		return schema.Type{}, fmt.Errorf("dataset %s: %w", d.Name, err)
	}

	return schema.StructType(s), nil
}

// Struct returns the Struct root schema of the dataset.
func (d Dataset) Struct() (*schema.Struct, error) {
	t, err := d.RootType()
	if err != nil {
		return nil, err
	}

	if !t.IsStruct() {
		return nil, fmt.Errorf("dataset %s: %w", d.Name, schema.ErrNotStructAt("root", t))
	}

	return t.Struct, nil
}

// ToHost converts the dataset to an in-memory host dataset under root.
func (d Dataset) ToHost(root string) (*memhost.Dataset, error) {
	t, err := d.RootType()
	if err != nil {
		return nil, err
	}

	return memhost.New(root, t, d.Records...), nil
}

// FromType returns a dataset document with the given root type.
func FromType(name string, t schema.Type, records []any) Dataset {
	d := Dataset{Name: name, Records: records}
	if t.IsStruct() {
		d.Schema = FromStruct(t.Struct)
	} else {
		d.Type = t.String()
	}

	return d
}

// FromHost converts a host dataset back to a document dataset.
func FromHost(name string, d *memhost.Dataset) Dataset {
	return FromType(name, d.Type, d.Records)
}

// Structs returns the Struct schema of every dataset, in order.
func (f *File) Structs() ([]*schema.Struct, error) {
	out := make([]*schema.Struct, 0, len(f.Datasets))

	for _, d := range f.Datasets {
		s, err := d.Struct()
		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, nil
}

// Hosts returns every dataset as an in-memory host dataset under root.
func (f *File) Hosts(root string) ([]*memhost.Dataset, error) {
	out := make([]*memhost.Dataset, 0, len(f.Datasets))

	for _, d := range f.Datasets {
		h, err := d.ToHost(root)
		if err != nil {
			return nil, err
		}

		out = append(out, h)
	}

	return out, nil
}
