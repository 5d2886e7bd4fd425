package merge

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"annotation-schema/internal/common"
	"annotation-schema/internal/diagnostic"
	"annotation-schema/internal/schema"
)

// Structs merges structs into a single Struct holding the union of their
// fields. The inputs are not modified.
func Structs(structs ...*schema.Struct) (*schema.Struct, diagnostic.Diagnostics, error) {
	return mergeAt("", structs)
}

func mergeAt(root string, structs []*schema.Struct) (*schema.Struct, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	if common.IsEmpty(structs) {
		return nil, diags, schema.ErrDegenerateMerge
	}

	if common.IsSingle(structs) {
		diags.AddWarning(diagnostic.CodeSingleStructMerge, root,
			"merge called on a single struct, returning it unchanged")

		return structs[0], diags, nil
	}

	fields := orderedmap.New[string, schema.Field]()

	for i, current := range structs {
		flat := schema.Flatten(current, "", false, false)

		for pair := flat.Oldest(); pair != nil; pair = pair.Next() {
			name, f := pair.Key, pair.Value
			if _, done := fields.Get(name); done {
				continue
			}

			merged, fieldDiags, err := mergeField(root, f, overlapping(name, structs[i+1:]))
			diags.Merge(fieldDiags)

			if err != nil {
				return nil, diags, err
			}

			fields.Set(name, merged)
		}
	}

	out := make([]schema.Field, 0, fields.Len())
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}

	s, err := schema.BuildStruct(out)

	return s, diags, err
}

// overlapping returns the fields named name in the remaining structs.
func overlapping(name string, rest []*schema.Struct) []schema.Field {
	var out []schema.Field

	for _, s := range rest {
		if g, ok := s.Field(name); ok {
			out = append(out, g)
		}
	}

	return out
}

// mergeField resolves field f against the same-named fields of later structs.
func mergeField(root string, f schema.Field, overlap []schema.Field) (schema.Field, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	path := schema.JoinPath(root, f.Name)
	attrs := f.Attributes.Clone()

	for _, g := range overlap {
		switch schema.Compare(f.Type, g.Type) {
		case schema.Incompatible:
			return schema.Field{}, diags, &schema.TypeConflictError{Path: path, Left: f.Type, Right: g.Type}
		case schema.SameTagOnly:
			if !f.Type.IsStruct() {
				diags.AddWarning(diagnostic.CodeElementTypeMismatch, path,
					"types %s and %s share a variant but differ in shape, keeping %s", f.Type, g.Type, f.Type)
			}
		}

		diags.Merge(unionAttributes(path, attrs, g.Attributes))
	}

	if f.Type.IsStruct() && len(overlap) > 0 {
		nested := make([]*schema.Struct, 0, len(overlap)+1)
		nested = append(nested, f.Type.Struct)

		for _, g := range overlap {
			nested = append(nested, g.Type.Struct)
		}

		s, nestedDiags, err := mergeAt(path, nested)
		diags.Merge(nestedDiags)

		if err != nil {
			return schema.Field{}, diags, err
		}

		f.Type = schema.StructType(s)
	}

	f.Attributes = attrs

	return f, diags, nil
}

// unionAttributes adds to attrs the keys of other it lacks. Keys present in
// both keep the value already in attrs.
func unionAttributes(path string, attrs, other schema.Attributes) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	keys := make([]string, 0, len(other))
	for k := range other {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		v := other[k]

		existing, ok := attrs[k]
		if !ok {
			attrs[k] = v
			continue
		}

		if existing != v {
			diags.AddWarning(diagnostic.CodeAttributeConflict, path,
				"found different values for attribute %s while merging structs: %s, %s (keeping %s)",
				k, existing, v, existing)
		}
	}

	return diags
}
