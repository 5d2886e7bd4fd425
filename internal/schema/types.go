package schema

import (
	"fmt"
	"maps"

	"annotation-schema/internal/common"
	"annotation-schema/primitive"
)

// TypeKind is the outer variant of a Type.
type TypeKind int

const (
	TypeKindInvalid   TypeKind = iota
	TypeKindPrimitive          // Int, Long, Float, Double, String, Boolean
	TypeKindArray              // Array[elem]
	TypeKindSet                // Set[elem]
	TypeKindStruct             // Struct{fields}
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindPrimitive:
		return "primitive"
	case TypeKindArray:
		return "array"
	case TypeKindSet:
		return "set"
	case TypeKindStruct:
		return "struct"
	default:
		return common.UnknownStr
	}
}

// Type is a closed tagged union over primitive, container and struct types.
type Type struct {
	Kind      TypeKind
	Primitive primitive.KindEnum // set when Kind is TypeKindPrimitive
	Elem      *Type              // set when Kind is TypeKindArray or TypeKindSet
	Struct    *Struct            // set when Kind is TypeKindStruct
}

// Attributes are the string key/value annotations of a field.
type Attributes map[string]string

// Clone returns a copy of the attributes. A nil map clones to an empty one.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return Attributes{}
	}

	return maps.Clone(a)
}

// Equal reports whether both maps hold the same pairs.
func (a Attributes) Equal(b Attributes) bool {
	return maps.Equal(a, b)
}

// Field is one named, typed, attributed member of a Struct.
type Field struct {
	Name       string
	Type       Type
	Attributes Attributes
	// Index is the position of the field within its Struct.
	Index int
}

// Struct is an ordered collection of uniquely named fields.
type Struct struct {
	Fields []Field
}

func newPrimitive(k primitive.KindEnum) Type {
	return Type{Kind: TypeKindPrimitive, Primitive: k}
}

func Int() Type     { return newPrimitive(primitive.KindInt) }
func Long() Type    { return newPrimitive(primitive.KindLong) }
func Float() Type   { return newPrimitive(primitive.KindFloat) }
func Double() Type  { return newPrimitive(primitive.KindDouble) }
func String() Type  { return newPrimitive(primitive.KindString) }
func Boolean() Type { return newPrimitive(primitive.KindBoolean) }

// PrimitiveOf returns the primitive type of the given kind.
func PrimitiveOf(k primitive.KindEnum) Type {
	return newPrimitive(k)
}

// ArrayOf creates an Array type with the given element type.
func ArrayOf(elem Type) Type {
	return Type{Kind: TypeKindArray, Elem: &elem}
}

// SetOf creates a Set type with the given element type.
func SetOf(elem Type) Type {
	return Type{Kind: TypeKindSet, Elem: &elem}
}

// StructOf creates a Struct type from fields. See NewStruct.
func StructOf(fields ...Field) Type {
	return Type{Kind: TypeKindStruct, Struct: NewStruct(fields...)}
}

// StructType wraps an existing Struct into a Type.
func StructType(s *Struct) Type {
	return Type{Kind: TypeKindStruct, Struct: s}
}

// NewField creates a field without attributes.
func NewField(name string, t Type) Field {
	return Field{Name: name, Type: t, Attributes: Attributes{}}
}

// WithAttributes returns a copy of the field carrying a copy of attrs.
func (f Field) WithAttributes(attrs Attributes) Field {
	f.Attributes = attrs.Clone()
	return f
}

// Attr returns the attribute value for key.
func (f Field) Attr(key string) (string, bool) {
	v, ok := f.Attributes[key]
	return v, ok
}

// NewStruct builds a Struct from fields, numbering them in order.
// It panics on duplicate names; use BuildStruct for untrusted input.
func NewStruct(fields ...Field) *Struct {
	s, err := BuildStruct(fields)
	if err != nil {
		panic(err)
	}

	return s
}

// BuildStruct builds a Struct from fields, numbering them in order.
func BuildStruct(fields []Field) (*Struct, error) {
	seen := make(map[string]struct{}, len(fields))
	out := make([]Field, len(fields))

	for i, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field name %q", ErrInvalidType, f.Name)
		}

		seen[f.Name] = struct{}{}
		f.Index = i

		if f.Attributes == nil {
			f.Attributes = Attributes{}
		}

		out[i] = f
	}

	return &Struct{Fields: out}, nil
}

// Len returns the number of direct fields.
func (s *Struct) Len() int {
	if s == nil {
		return 0
	}

	return len(s.Fields)
}

// Field returns the direct field with the given name.
func (s *Struct) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}

	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Names returns the direct field names in declaration order.
func (s *Struct) Names() []string {
	names := make([]string, 0, s.Len())
	for _, f := range s.fieldsOrNil() {
		names = append(names, f.Name)
	}

	return names
}

func (s *Struct) fieldsOrNil() []Field {
	if s == nil {
		return nil
	}

	return s.Fields
}

// IsStruct reports whether the type is a Struct.
func (t Type) IsStruct() bool {
	return t.Kind == TypeKindStruct
}

// IsArray reports whether the type is an Array.
func (t Type) IsArray() bool {
	return t.Kind == TypeKindArray
}

// IsSet reports whether the type is a Set.
func (t Type) IsSet() bool {
	return t.Kind == TypeKindSet
}

// IsPrimitive reports whether the type is one of the primitive kinds.
func (t Type) IsPrimitive() bool {
	return t.Kind == TypeKindPrimitive
}
