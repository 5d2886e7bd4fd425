package unify

import (
	"fmt"

	"annotation-schema/internal/diagnostic"
	"annotation-schema/internal/merge"
	"annotation-schema/internal/program"
	"annotation-schema/internal/schema"
)

// ReplaceSchema returns the replace program turning records of schema
// oldSchema under root into records of newSchema. For each field of
// newSchema:
//
//   - absent from oldSchema: a null of the new type
//   - present with another type variant: a null, with a warning
//   - a Struct: a struct assembled from its fields, recursively
//   - otherwise: the existing value
//
// Every field of newSchema gets its attributes attached, whatever its source.
func ReplaceSchema(oldSchema, newSchema *schema.Struct, root string) (program.Program, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	oldFields := schema.Flatten(oldSchema, root, false, true)

	p := program.Program{
		Root:       root,
		Mode:       program.ModeReplace,
		Directives: replaceFields(oldFields, newSchema, root, &diags),
	}

	for pair := schema.Flatten(newSchema, root, false, true).Oldest(); pair != nil; pair = pair.Next() {
		p.Attributes = append(p.Attributes, program.AttributeDirective{
			Path:       pair.Key,
			Attributes: pair.Value.Attributes.Clone(),
		})
	}

	return p, diags
}

func replaceFields(oldFields *schema.Flat, s *schema.Struct, root string, diags *diagnostic.Diagnostics) []program.Directive {
	directives := make([]program.Directive, 0, s.Len())

	for _, f := range s.Fields {
		path := schema.JoinPath(root, f.Name)
		directives = append(directives, program.Directive{
			Field:  path,
			Source: replaceSource(oldFields, f, path, diags),
		})
	}

	return directives
}

func replaceSource(oldFields *schema.Flat, f schema.Field, path string, diags *diagnostic.Diagnostics) program.Source {
	old, ok := oldFields.Get(path)
	if !ok {
		return program.Null(f.Type)
	}

	switch schema.Compare(old.Type, f.Type) {
	case schema.Incompatible:
		diags.AddWarning(diagnostic.CodeTypeIncompatibleOverride, path,
			"field found with type %s in old and %s in new schema, overriding with new schema: all values will be lost",
			old.Type, f.Type)

		return program.Null(f.Type)
	case schema.SameTagOnly:
		if !f.Type.IsStruct() {
			diags.AddWarning(diagnostic.CodeElementTypeMismatch, path,
				"field type %s differs from %s in its elements, reusing values", old.Type, f.Type)
		}
	}

	if f.Type.IsStruct() {
		return program.Assemble(replaceFields(oldFields, f.Type.Struct, path, diags)...)
	}

	return program.Existing(path)
}

// Plan is the result of PlanUnify: the merged schema and, per dataset in
// input order, the program moving it to that schema.
type Plan struct {
	Schema   *schema.Struct
	Programs []program.Program
}

// PlanUnify merges schemas and computes the replace program of each one.
func PlanUnify(schemas []*schema.Struct, root string) (Plan, diagnostic.Diagnostics, error) {
	merged, diags, err := merge.Structs(schemas...)
	if err != nil {
		return Plan{}, diags, fmt.Errorf("cannot unify schemas: %w", err)
	}

	plan := Plan{Schema: merged, Programs: make([]program.Program, len(schemas))}

	for i, s := range schemas {
		p, d := ReplaceSchema(s, merged, root)
		diags.Merge(d)

		plan.Programs[i] = p
	}

	return plan, diags, nil
}

// UnifySchemas gives every dataset the merged schema of all of them. Values
// are kept where name and type variant match and nulled elsewhere. The
// result is in input order; on error no dataset is returned.
func UnifySchemas(datasets []Dataset, root string) ([]Dataset, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	schemas := make([]*schema.Struct, len(datasets))

	for i, d := range datasets {
		s, err := rootStruct(d, root)
		if err != nil {
			return nil, diags, fmt.Errorf("dataset %d: %w", i, err)
		}

		schemas[i] = s
	}

	plan, diags, err := PlanUnify(schemas, root)
	if err != nil {
		return nil, diags, err
	}

	out := make([]Dataset, len(datasets))

	for i, d := range datasets {
		if out[i], err = d.Apply(plan.Programs[i], schema.StructType(plan.Schema)); err != nil {
			return nil, diags, fmt.Errorf("dataset %d: %w", i, err)
		}
	}

	return out, diags, nil
}
