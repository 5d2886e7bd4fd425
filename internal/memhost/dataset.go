package memhost

import (
	"fmt"

	"annotation-schema/internal/program"
	"annotation-schema/internal/schema"
	"annotation-schema/internal/unify"
)

// Record is the root value of one record.
type Record = any

// Dataset is a list of records sharing the root schema Type.
type Dataset struct {
	Root    string
	Type    schema.Type
	Records []Record
}

var _ unify.Dataset = (*Dataset)(nil)

// New returns a dataset with the given root path, schema and records.
func New(root string, t schema.Type, records ...Record) *Dataset {
	return &Dataset{Root: root, Type: t, Records: records}
}

// Schema returns the root type.
func (d *Dataset) Schema() schema.Type {
	return d.Type
}

// Apply evaluates p on every record and returns a dataset of type newSchema.
func (d *Dataset) Apply(p program.Program, newSchema schema.Type) (unify.Dataset, error) {
	out, err := d.ApplyProgram(p, newSchema)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ApplyProgram is Apply returning the concrete type.
func (d *Dataset) ApplyProgram(p program.Program, newSchema schema.Type) (*Dataset, error) {
	if p.Root != d.Root {
		return nil, fmt.Errorf("program root %q does not match dataset root %q", p.Root, d.Root)
	}

	records := make([]Record, len(d.Records))

	for i, rec := range d.Records {
		var err error

		switch p.Mode {
		case program.ModeReplace:
			records[i], err = d.eval(rec, program.Assemble(p.Directives...))
		case program.ModeAnnotate:
			records[i], err = d.annotate(rec, p.Directives)
		default:
			err = fmt.Errorf("unsupported program mode %s", p.Mode)
		}

		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return &Dataset{Root: d.Root, Type: newSchema, Records: records}, nil
}

func (d *Dataset) annotate(rec Record, directives []program.Directive) (Record, error) {
	for _, dir := range directives {
		v, err := d.eval(rec, dir.Source)
		if err != nil {
			return nil, err
		}

		rel, err := schema.RelativePath(d.Root, dir.Field)
		if err != nil {
			return nil, err
		}

		if rec, err = Set(rec, rel, v); err != nil {
			return nil, fmt.Errorf("%s: %w", dir.Field, err)
		}
	}

	return rec, nil
}

func (d *Dataset) eval(rec Record, src program.Source) (any, error) {
	switch src.Kind {
	case program.SourceExisting:
		return d.Get(rec, src.Path)
	case program.SourceNull:
		return nil, nil
	case program.SourceStruct:
		out := make(map[string]any, len(src.Fields))

		for _, f := range src.Fields {
			rel, err := schema.RelativePath(d.Root, f.Field)
			if err != nil {
				return nil, err
			}

			v, err := d.eval(rec, f.Source)
			if err != nil {
				return nil, err
			}

			out[rel[len(rel)-1]] = v
		}

		return out, nil
	default:
		return nil, fmt.Errorf("unsupported source kind %s", src.Kind)
	}
}

// Get reads the value at the full path in rec. Missing fields and fields
// under a null struct read as nil.
func (d *Dataset) Get(rec Record, path string) (any, error) {
	rel, err := schema.RelativePath(d.Root, path)
	if err != nil {
		return nil, err
	}

	return Get(rec, rel), nil
}

// Get reads the value at the relative path rel in v.
func Get(v any, rel []string) any {
	for _, name := range rel {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}

		v = m[name]
	}

	return v
}

// Set returns a copy of v with the value at rel replaced. Maps along the
// path are copied; null intermediates become empty maps.
func Set(v any, rel []string, value any) (any, error) {
	if len(rel) == 0 {
		return value, nil
	}

	var m map[string]any

	switch x := v.(type) {
	case nil:
		m = make(map[string]any, 1)
	case map[string]any:
		m = make(map[string]any, len(x)+1)
		for k, e := range x {
			m[k] = e
		}
	default:
		return nil, fmt.Errorf("%w: cannot set %s in a %T", schema.ErrNotStruct, rel[0], v)
	}

	child, err := Set(m[rel[0]], rel[1:], value)
	if err != nil {
		return nil, err
	}

	m[rel[0]] = child

	return m, nil
}

// Delete returns a copy of v without the value at rel.
func Delete(v any, rel []string) any {
	m, ok := v.(map[string]any)
	if !ok || len(rel) == 0 {
		return v
	}

	if _, ok := m[rel[0]]; !ok {
		return v
	}

	out := make(map[string]any, len(m))
	for k, e := range m {
		out[k] = e
	}

	if len(rel) == 1 {
		delete(out, rel[0])
	} else {
		out[rel[0]] = Delete(m[rel[0]], rel[1:])
	}

	return out
}
