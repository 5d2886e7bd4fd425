package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"strings"

	"annotation-schema/internal/schema"
	"annotation-schema/primitive"
)

var (
	ErrUnsupportedType = errors.New("unsupported Go type")
	ErrTypeNotFound    = errors.New("type not found")
	ErrNotStruct       = errors.New("type is not a struct")
)

// TypePath is a readable location inside a Go type, used in errors:
// "Variant", "Variant.Info.AC" or "Variant.VEP.TranscriptConsequences[]".
type TypePath struct {
	parts []string
}

// NewTypePath starts a path at the named root type.
func NewTypePath(root string) TypePath {
	return TypePath{parts: []string{root}}
}

// Field appends a field name.
func (p TypePath) Field(name string) TypePath {
	return TypePath{parts: append(append([]string{}, p.parts...), name)}
}

// Slice marks the last segment as an element of a collection.
func (p TypePath) Slice() TypePath {
	parts := append([]string{}, p.parts...)
	parts[len(parts)-1] += "[]"

	return TypePath{parts: parts}
}

func (p TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// LoadStruct loads the packages matching pattern and converts the struct type
// called typeName. The name must be unique among the loaded packages.
func LoadStruct(pattern, typeName string) (*schema.Struct, error) {
	c, err := Load(pattern)
	if err != nil {
		return nil, err
	}

	ids := c.Find(typeName)

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("%w: %s in %s", ErrTypeNotFound, typeName, pattern)
	case 1:
		return c.Struct(ids[0])
	default:
		return nil, fmt.Errorf("type %s is ambiguous in %s: %v", typeName, pattern, ids)
	}
}

// Struct converts a declared struct type to a schema.
func (c *Catalog) Struct(id TypeID) (*schema.Struct, error) {
	t := c.Lookup(id)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, id)
	}

	named, ok := t.(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%w: %s is an alias", ErrNotStruct, id)
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotStruct, id, named.Underlying())
	}

	conv := converter{catalog: c, visiting: map[*types.Named]bool{named: true}}

	return conv.structOf(st, NewTypePath(id.Name))
}

type converter struct {
	catalog *Catalog
	// visiting holds the named structs on the current conversion path.
	visiting map[*types.Named]bool
}

func (c *converter) structOf(st *types.Struct, path TypePath) (*schema.Struct, error) {
	fields, err := c.fieldsOf(st, path)
	if err != nil {
		return nil, err
	}

	s, err := schema.BuildStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

func (c *converter) fieldsOf(st *types.Struct, path TypePath) ([]schema.Field, error) {
	var out []schema.Field

	for i := range st.NumFields() {
		v := st.Field(i)
		if !v.Exported() && !v.Embedded() {
			continue
		}

		fieldPath := path.Field(v.Name())

		tag, tagged, err := lookupTag(st.Tag(i))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fieldPath, err)
		}

		if tag.Skip {
			continue
		}

		if v.Embedded() && !tagged {
			if inner, ok := derefType(v.Type()).Underlying().(*types.Struct); ok {
				embedded, err := c.embeddedOf(derefType(v.Type()), inner, fieldPath)
				if err != nil {
					return nil, err
				}

				out = append(out, embedded...)

				continue
			}
		}

		if !v.Exported() {
			continue
		}

		t, err := c.typeOf(v.Type(), fieldPath)
		if err != nil {
			return nil, err
		}

		name := tag.Name
		if name == "" {
			name = v.Name()
		}

		out = append(out, schema.NewField(name, t).WithAttributes(tag.Attributes))
	}

	return out, nil
}

func (c *converter) typeOf(t types.Type, path TypePath) (schema.Type, error) {
	switch tt := t.(type) {
	case *types.Basic:
		if k := primitive.FromBasicKind(tt.Kind()); k.IsValid() {
			return schema.PrimitiveOf(k), nil
		}

	case *types.Named:
		return c.namedOf(tt, path)

	case *types.Alias:
		return c.typeOf(types.Unalias(tt), path)

	case *types.Pointer:
		return c.typeOf(tt.Elem(), path)

	case *types.Slice:
		return c.arrayOf(tt.Elem(), path)

	case *types.Array:
		return c.arrayOf(tt.Elem(), path)

	case *types.Map:
		if isEmptyStruct(tt.Elem()) {
			elem, err := c.typeOf(tt.Key(), path.Slice())
			if err != nil {
				return schema.Type{}, err
			}

			return schema.SetOf(elem), nil
		}

	case *types.Struct:
		s, err := c.structOf(tt, path)
		if err != nil {
			return schema.Type{}, err
		}

		return schema.StructType(s), nil
	}

	return schema.Type{}, fmt.Errorf("%s: %w %s", path, ErrUnsupportedType, t)
}

func (c *converter) namedOf(named *types.Named, path TypePath) (schema.Type, error) {
	obj := named.Obj()

	// error and types of packages outside the catalog have no schema form
	if obj.Pkg() == nil || !c.catalog.loaded(obj.Pkg().Path()) {
		if _, ok := named.Underlying().(*types.Basic); !ok {
			return schema.Type{}, fmt.Errorf("%s: %w %s", path, ErrUnsupportedType, named)
		}
	}

	if _, ok := named.Underlying().(*types.Struct); ok {
		if c.visiting[named] {
			return schema.Type{}, fmt.Errorf("%s: %w: recursive type %s", path, ErrUnsupportedType, obj.Name())
		}

		c.visiting[named] = true
		defer delete(c.visiting, named)
	}

	return c.typeOf(named.Underlying(), path)
}

// embeddedOf returns the fields an embedded struct contributes.
func (c *converter) embeddedOf(t types.Type, st *types.Struct, path TypePath) ([]schema.Field, error) {
	if named, ok := t.(*types.Named); ok {
		if c.visiting[named] {
			return nil, fmt.Errorf("%s: %w: recursive type %s", path, ErrUnsupportedType, named.Obj().Name())
		}

		c.visiting[named] = true
		defer delete(c.visiting, named)
	}

	return c.fieldsOf(st, path)
}

func (c *converter) arrayOf(elem types.Type, path TypePath) (schema.Type, error) {
	t, err := c.typeOf(elem, path.Slice())
	if err != nil {
		return schema.Type{}, err
	}

	return schema.ArrayOf(t), nil
}

func isEmptyStruct(t types.Type) bool {
	st, ok := t.Underlying().(*types.Struct)
	return ok && st.NumFields() == 0
}

func derefType(t types.Type) types.Type {
	for {
		p, ok := t.Underlying().(*types.Pointer)
		if !ok {
			return t
		}

		t = p.Elem()
	}
}
