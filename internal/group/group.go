package group

import (
	"fmt"
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"annotation-schema/internal/diagnostic"
	"annotation-schema/internal/schema"
	"annotation-schema/primitive"
)

// NumberKey is the attribute declaring the arity of an annotation.
const NumberKey = "Number"

// Arity values of the Number attribute.
const (
	NumberA         = "A" // one value per alternate allele
	NumberR         = "R" // one value per allele, reference included
	NumberG         = "G" // one value per unordered genotype
	NumberUnbounded = "."
	NumberFlag      = "0"
	NumberScalar    = "1"
)

// Key is a bucket key. The zero Key is the "no value" bucket.
type Key struct {
	Value   string
	Present bool
}

// None is the bucket of fields without a classification.
var None = Key{}

// KeyOf returns the bucket key for an attribute value.
func KeyOf(v string) Key {
	return Key{Value: v, Present: true}
}

// String returns the key value, or "None".
func (k Key) String() string {
	if !k.Present {
		return "None"
	}

	return k.Value
}

// PathAndField is a classified field with its full path.
type PathAndField struct {
	Path  string
	Field schema.Field
}

// DefaultFunc classifies a field whose grouping attribute is missing.
type DefaultFunc func(schema.Field) Key

// Groups are buckets of fields keyed by attribute value, in first-encountered
// order of keys and of fields within a key.
type Groups struct {
	buckets *orderedmap.OrderedMap[Key, []PathAndField]
}

func newGroups() *Groups {
	return &Groups{buckets: orderedmap.New[Key, []PathAndField]()}
}

func (g *Groups) add(k Key, pf PathAndField) {
	list, _ := g.buckets.Get(k)
	g.buckets.Set(k, append(list, pf))
}

// Keys returns the bucket keys in first-encountered order.
func (g *Groups) Keys() []Key {
	keys := make([]Key, 0, g.buckets.Len())
	for pair := g.buckets.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// Get returns the fields of a bucket.
func (g *Groups) Get(k Key) []PathAndField {
	list, _ := g.buckets.Get(k)
	return list
}

// Paths returns the paths of a bucket.
func (g *Groups) Paths(k Key) []string {
	list := g.Get(k)

	paths := make([]string, len(list))
	for i, pf := range list {
		paths[i] = pf.Path
	}

	return paths
}

// Len returns the number of buckets.
func (g *Groups) Len() int {
	return g.buckets.Len()
}

// ByAttribute groups the fields of the Struct at root by the value of their
// attrKey attribute.
//
// Only Array fields are classified by the attribute itself. Struct fields
// are descended into when recursive is set. Every other field is classified
// by defaultFn, or put under None when defaultFn is nil.
//
// When root is a nested path such as "va.info", its first segment is taken as
// the root of s and grouping starts at the Struct found at root.
func ByAttribute(s *schema.Struct, attrKey, root string, recursive bool, defaultFn DefaultFunc) (*Groups, error) {
	start := s

	if base, _, nested := strings.Cut(root, "."); nested {
		var err error

		start, err = schema.StructAt(root, s, base)
		if err != nil {
			return nil, fmt.Errorf("cannot group annotations under %s: %w", root, err)
		}
	}

	g := newGroups()
	groupInto(g, start, attrKey, root, recursive, defaultFn)

	return g, nil
}

func groupInto(g *Groups, s *schema.Struct, attrKey, root string, recursive bool, defaultFn DefaultFunc) {
	for _, f := range s.Fields {
		path := schema.JoinPath(root, f.Name)

		v, declared := f.Attr(attrKey)

		switch {
		case f.Type.IsArray() && declared:
			g.add(KeyOf(v), PathAndField{Path: path, Field: f})
		case recursive && f.Type.IsStruct():
			groupInto(g, f.Type.Struct, attrKey, path, recursive, defaultFn)
		case defaultFn != nil:
			g.add(defaultFn(f), PathAndField{Path: path, Field: f})
		default:
			g.add(None, PathAndField{Path: path, Field: f})
		}
	}
}

// DefaultNumber is the VCF default arity of a field declaring no Number:
// "." for arrays and sets, "0" for flags, "1" for other exportable types.
func DefaultNumber(f schema.Field) Key {
	switch {
	case f.Type.IsArray() || f.Type.IsSet():
		return KeyOf(NumberUnbounded)
	case f.Type.IsPrimitive() && f.Type.Primitive == primitive.KindBoolean:
		return KeyOf(NumberFlag)
	case schema.IsNativelyExportable(f.Type):
		return KeyOf(NumberScalar)
	default:
		return None
	}
}

// Numbered groups the fields under root by their Number attribute. With
// defaultWhenMissing, fields without one are classified by DefaultNumber;
// otherwise they go under None. One info diagnostic per bucket summarizes
// the classification.
func Numbered(s *schema.Struct, root string, recursive, defaultWhenMissing bool) (*Groups, diagnostic.Diagnostics, error) {
	return NumberedBy(s, NumberKey, root, recursive, defaultWhenMissing)
}

// NumberedBy is Numbered with another arity attribute than Number.
func NumberedBy(s *schema.Struct, attrKey, root string, recursive, defaultWhenMissing bool) (*Groups, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	var defaultFn DefaultFunc
	if defaultWhenMissing {
		defaultFn = DefaultNumber
	}

	g, err := ByAttribute(s, attrKey, root, recursive, defaultFn)
	if err != nil {
		return nil, diags, err
	}

	for _, k := range g.Keys() {
		paths := strings.Join(g.Paths(k), ",")
		if k.Present {
			diags.AddInfo(diagnostic.CodeAritySummary, root, "%s-based annotations: %s", k.Value, paths)
		} else {
			diags.AddInfo(diagnostic.CodeAritySummary, root, "Annotations with no number: %s", paths)
		}
	}

	return g, diags, nil
}

// FilterByRegex drops the fields whose name fully matches one of the
// patterns.
func FilterByRegex(fields []PathAndField, ignore []string) ([]PathAndField, error) {
	patterns := make([]*regexp.Regexp, 0, len(ignore))

	for _, p := range ignore {
		re, err := regexp.Compile("^(?:" + p + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}

		patterns = append(patterns, re)
	}

	var out []PathAndField

outer:
	for _, pf := range fields {
		for _, re := range patterns {
			if re.MatchString(pf.Field.Name) {
				continue outer
			}
		}

		out = append(out, pf)
	}

	return out, nil
}
