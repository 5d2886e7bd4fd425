package schema

import "annotation-schema/primitive"

// IsNumeric reports whether t is one of the numeric primitive kinds.
func IsNumeric(t Type) bool {
	return t.Kind == TypeKindPrimitive && t.Primitive.IsNumber()
}

// IsNativelyExportable reports whether t can be written to a VCF INFO field
// without being converted to a string first.
func IsNativelyExportable(t Type) bool {
	switch t.Kind {
	case TypeKindArray, TypeKindSet:
		return true
	case TypeKindPrimitive:
		return t.Primitive.IsNumber() ||
			t.Primitive == primitive.KindString ||
			t.Primitive == primitive.KindBoolean
	default:
		return false
	}
}

// SameTag reports variant-tag equality: both types have the same outer
// variant and, for primitives, the same kind. Container element types and
// struct members are not compared.
func SameTag(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}

	if a.Kind == TypeKindPrimitive {
		return a.Primitive == b.Primitive
	}

	return true
}

// Compatibility represents how closely two types agree.
type Compatibility int

const (
	// Incompatible means the outer variants differ.
	Incompatible Compatibility = iota
	// SameTagOnly means the outer variants agree but nested shapes differ.
	SameTagOnly
	// Identical means the types are structurally equal (attributes ignored).
	Identical
)

// String returns a human-readable name for the compatibility level.
func (c Compatibility) String() string {
	switch c {
	case Identical:
		return "identical"
	case SameTagOnly:
		return "same_tag"
	default:
		return "incompatible"
	}
}

// Compare scores the agreement between two types.
func Compare(a, b Type) Compatibility {
	if !SameTag(a, b) {
		return Incompatible
	}

	if a.Equal(b) {
		return Identical
	}

	return SameTagOnly
}

// Equal reports deep structural equality. Field attributes and ordinals
// are ignored; field order is not.
func (t Type) Equal(o Type) bool {
	if !SameTag(t, o) {
		return false
	}

	switch t.Kind {
	case TypeKindArray, TypeKindSet:
		if t.Elem == nil || o.Elem == nil {
			return t.Elem == o.Elem
		}

		return t.Elem.Equal(*o.Elem)
	case TypeKindStruct:
		if t.Struct.Len() != o.Struct.Len() {
			return false
		}

		for i, f := range t.Struct.fieldsOrNil() {
			g := o.Struct.Fields[i]
			if f.Name != g.Name || !f.Type.Equal(g.Type) {
				return false
			}
		}

		return true
	default:
		return true
	}
}
