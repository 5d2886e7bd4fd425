package unify

import (
	"fmt"
	"slices"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"annotation-schema/internal/common"
	"annotation-schema/internal/diagnostic"
	"annotation-schema/internal/program"
	"annotation-schema/internal/schema"
)

// ConsolidateLeaves gives every dataset the union of the leaf fields of all
// of them, filling missing leaves with typed nulls. Nested Structs are not
// merged as such: only leaf paths are compared.
//
// Attributes of a leaf are the union over datasets; when two datasets define
// the same key, the earlier one wins. Datasets whose root is not a Struct are
// returned unchanged, provided they all share the same root type variant.
func ConsolidateLeaves(datasets []Dataset, root string) ([]Dataset, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	if common.IsEmpty(datasets) {
		return nil, diags, schema.ErrDegenerateMerge
	}

	first := datasets[0].Schema()
	for _, d := range datasets[1:] {
		if t := d.Schema(); !schema.SameTag(first, t) {
			return nil, diags, &schema.TypeConflictError{Path: root, Left: first, Right: t}
		}
	}

	if !first.IsStruct() {
		diags.AddInfo(diagnostic.CodeRootNotStruct, root,
			"root is %s, not a struct: nothing to consolidate", first)

		return slices.Clone(datasets), diags, nil
	}

	leaves := make([]*schema.Flat, len(datasets))
	for i, d := range datasets {
		leaves[i] = schema.Flatten(d.Schema().Struct, root, true, true)
	}

	union, unionDiags, err := unionLeaves(leaves)
	diags.Merge(unionDiags)

	if err != nil {
		return nil, diags, err
	}

	out := make([]Dataset, len(datasets))

	for i, d := range datasets {
		p, s, fillDiags, err := fillLeaves(d.Schema().Struct, leaves[i], union, root)
		diags.Merge(fillDiags)

		if err != nil {
			return nil, diags, fmt.Errorf("dataset %d: %w", i, err)
		}

		if out[i], err = d.Apply(p, schema.StructType(s)); err != nil {
			return nil, diags, fmt.Errorf("dataset %d: %w", i, err)
		}
	}

	return out, diags, nil
}

// unionLeaves returns the leaf union in forward first-seen order. Types and
// attributes are reconciled walking the datasets backwards, so the earliest
// dataset defining a leaf gives its type.
func unionLeaves(leaves []*schema.Flat) (*schema.Flat, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	union := orderedmap.New[string, schema.Field]()

	for _, flat := range leaves {
		for pair := flat.Oldest(); pair != nil; pair = pair.Next() {
			if _, ok := union.Get(pair.Key); !ok {
				union.Set(pair.Key, schema.Field{})
			}
		}
	}

	seen := make(map[string]bool, union.Len())

	for i := len(leaves) - 1; i >= 0; i-- {
		for pair := leaves[i].Oldest(); pair != nil; pair = pair.Next() {
			path, f := pair.Key, pair.Value

			if !seen[path] {
				seen[path] = true
				f.Attributes = f.Attributes.Clone()
				union.Set(path, f)

				continue
			}

			prev, _ := union.Get(path)

			switch schema.Compare(f.Type, prev.Type) {
			case schema.Incompatible:
				return nil, diags, &schema.TypeConflictError{Path: path, Left: f.Type, Right: prev.Type}
			case schema.SameTagOnly:
				diags.AddWarning(diagnostic.CodeElementTypeMismatch, path,
					"field type %s differs from %s in its elements, keeping %s from the earlier dataset", f.Type, prev.Type, f.Type)
			}

			prev.Type = f.Type
			diags.Merge(overrideAttributes(path, prev.Attributes, f.Attributes))
			union.Set(path, prev)
		}
	}

	return union, diags, nil
}

// overrideAttributes copies other into attrs, other winning on shared keys.
func overrideAttributes(path string, attrs, other schema.Attributes) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	keys := make([]string, 0, len(other))
	for k := range other {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		if v, ok := attrs[k]; ok && v != other[k] {
			diags.AddWarning(diagnostic.CodeAttributeConflict, path,
				"attribute %s has values %q and %q, keeping %q from the earlier dataset", k, other[k], v, other[k])
		}

		attrs[k] = other[k]
	}

	return diags
}

// fillLeaves returns the annotate program and new schema giving s every leaf
// of union.
func fillLeaves(s *schema.Struct, own, union *schema.Flat, root string) (program.Program, *schema.Struct, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	p := program.Program{Root: root, Mode: program.ModeAnnotate}
	all := schema.Flatten(s, root, false, true)

	for pair := union.Oldest(); pair != nil; pair = pair.Next() {
		path, f := pair.Key, pair.Value

		rel, err := schema.RelativePath(root, path)
		if err != nil {
			return program.Program{}, nil, diags, err
		}

		if _, ok := own.Get(path); !ok {
			if existing, ok := all.Get(path); ok {
				return program.Program{}, nil, diags, &schema.TypeConflictError{Path: path, Left: existing.Type, Right: f.Type}
			}

			p.Directives = append(p.Directives, program.Directive{Field: path, Source: program.Null(f.Type)})
			diags.AddInfo(diagnostic.CodeMissingFieldFilled, path, "missing field filled with NA: %s", f.Type)
		}

		s, err = schema.Update(s, rel, func(old schema.Field, exists bool) schema.Field {
			if !exists {
				old.Type = f.Type
			}

			old.Attributes = f.Attributes.Clone()

			return old
		})
		if err != nil {
			return program.Program{}, nil, diags, err
		}

		p.Attributes = append(p.Attributes, program.AttributeDirective{Path: path, Attributes: f.Attributes.Clone()})
	}

	return p, s, diags, nil
}

// CopyAttributes returns dst where every leaf also present in src carries
// src's attributes, with the attribute-only program doing the same on a host.
func CopyAttributes(dst, src *schema.Struct, root string) (*schema.Struct, program.Program, error) {
	p := program.Program{Root: root, Mode: program.ModeAnnotate}
	srcLeaves := schema.Flatten(src, root, true, true)
	out := dst

	for pair := schema.Flatten(dst, root, true, true).Oldest(); pair != nil; pair = pair.Next() {
		from, ok := srcLeaves.Get(pair.Key)
		if !ok {
			continue
		}

		rel, err := schema.RelativePath(root, pair.Key)
		if err != nil {
			return nil, program.Program{}, err
		}

		out, err = schema.Update(out, rel, func(f schema.Field, _ bool) schema.Field {
			return f.WithAttributes(from.Attributes)
		})
		if err != nil {
			return nil, program.Program{}, err
		}

		p.Attributes = append(p.Attributes, program.AttributeDirective{Path: pair.Key, Attributes: from.Attributes.Clone()})
	}

	return out, p, nil
}
