package schema

import (
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"annotation-schema/internal/match"
)

// maxSuggestions bounds the "did you mean" list of a FieldNotFoundError.
const maxSuggestions = 3

// Flat is an insertion-ordered path -> Field view of a Struct.
type Flat = orderedmap.OrderedMap[string, Field]

// Flatten creates a path -> Field view of s, depth-first in declaration order.
//
// With recursive=false every direct field is a leaf, including Struct fields.
// With recursive=true Struct fields are descended into; leafOnly=false emits
// the Struct field itself before its children.
//
// The Struct
//
//	Struct{rsid: String, info: Struct{AC: Array[Int], AN: Int}}
//
// at root "va" flattens (leafOnly, recursive) to va.rsid, va.info.AC, va.info.AN.
func Flatten(s *Struct, root string, leafOnly, recursive bool) *Flat {
	out := orderedmap.New[string, Field]()
	flattenInto(out, s, root, leafOnly, recursive)

	return out
}

func flattenInto(out *Flat, s *Struct, root string, leafOnly, recursive bool) {
	for _, f := range s.fieldsOrNil() {
		path := JoinPath(root, f.Name)

		if recursive && f.Type.IsStruct() {
			if !leafOnly {
				out.Set(path, f)
			}

			flattenInto(out, f.Type.Struct, path, leafOnly, recursive)

			continue
		}

		out.Set(path, f)
	}
}

// Paths returns the keys of a flat view in order.
func Paths(flat *Flat) []string {
	paths := make([]string, 0, flat.Len())
	for pair := flat.Oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}

	return paths
}

// Exists reports whether path names a field (leaf or struct) of s under root.
func Exists(path string, s *Struct, root string) bool {
	_, ok := Flatten(s, root, false, true).Get(path)
	return ok
}

// Lookup returns the field at path. A missing path is a FieldNotFoundError
// carrying the closest existing paths.
func Lookup(path string, s *Struct, root string) (Field, error) {
	flat := Flatten(s, root, false, true)

	f, ok := flat.Get(path)
	if !ok {
		return Field{}, &FieldNotFoundError{
			Path:        path,
			Suggestions: match.Closest(path, Paths(flat), maxSuggestions),
		}
	}

	return f, nil
}

// TypeOf returns the type of the field at path.
func TypeOf(path string, s *Struct, root string) (Type, error) {
	f, err := Lookup(path, s, root)
	if err != nil {
		return Type{}, err
	}

	return f.Type, nil
}

// StructAt returns the Struct found at path, or s itself when path is root.
func StructAt(path string, s *Struct, root string) (*Struct, error) {
	if path == root {
		return s, nil
	}

	t, err := TypeOf(path, s, root)
	if err != nil {
		return nil, err
	}

	if !t.IsStruct() {
		return nil, ErrNotStructAt(path, t)
	}

	return t.Struct, nil
}

// Update returns a copy of s where the field at the relative path rel is
// replaced by fn(field). Missing intermediate Structs are created; a missing
// final field is passed to fn as a zero Field carrying only its name and is
// appended.
func Update(s *Struct, rel []string, fn func(Field, bool) Field) (*Struct, error) {
	if len(rel) == 0 {
		return s, nil
	}

	fields := slices.Clone(s.fieldsOrNil())
	head := rel[0]

	idx := slices.IndexFunc(fields, func(f Field) bool { return f.Name == head })

	if len(rel) == 1 {
		if idx < 0 {
			fields = append(fields, fn(Field{Name: head, Attributes: Attributes{}}, false))
		} else {
			fields[idx] = fn(fields[idx], true)
		}

		return BuildStruct(fields)
	}

	var child *Struct

	switch {
	case idx < 0:
		child = NewStruct()
	case !fields[idx].Type.IsStruct():
		return nil, ErrNotStructAt(head, fields[idx].Type)
	default:
		child = fields[idx].Type.Struct
	}

	child, err := Update(child, rel[1:], fn)
	if err != nil {
		return nil, err
	}

	if idx < 0 {
		fields = append(fields, NewField(head, StructType(child)))
	} else {
		fields[idx].Type = StructType(child)
	}

	return BuildStruct(fields)
}

// Insert returns a copy of s with f placed at the parent path rel, replacing
// any field of the same name.
func Insert(s *Struct, rel []string, f Field) (*Struct, error) {
	return Update(s, append(slices.Clone(rel), f.Name), func(Field, bool) Field {
		return f
	})
}

// Drop returns a copy of s without the field at the relative path rel.
// Dropping a missing field is a no-op.
func Drop(s *Struct, rel []string) (*Struct, error) {
	if len(rel) == 0 {
		return s, nil
	}

	fields := slices.Clone(s.fieldsOrNil())

	idx := slices.IndexFunc(fields, func(f Field) bool { return f.Name == rel[0] })
	if idx < 0 {
		return s, nil
	}

	if len(rel) == 1 {
		return BuildStruct(slices.Delete(fields, idx, idx+1))
	}

	if !fields[idx].Type.IsStruct() {
		return nil, ErrNotStructAt(rel[0], fields[idx].Type)
	}

	child, err := Drop(fields[idx].Type.Struct, rel[1:])
	if err != nil {
		return nil, err
	}

	fields[idx].Type = StructType(child)

	return BuildStruct(fields)
}
