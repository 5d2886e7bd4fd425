package analyze

import (
	"fmt"
	"reflect"
	"strings"

	"annotation-schema/internal/schema"
)

// TagKey is the struct tag read by the converter.
const TagKey = "va"

// Tag is a parsed va struct tag.
type Tag struct {
	// Name overrides the field name when set.
	Name       string
	Attributes schema.Attributes
	// Skip is set by va:"-".
	Skip bool
}

// ParseTag parses a va tag value such as "AC,Number=A,Description=Allele count".
func ParseTag(value string) (Tag, error) {
	if value == "-" {
		return Tag{Skip: true}, nil
	}

	name, rest, _ := strings.Cut(value, ",")
	tag := Tag{Name: strings.TrimSpace(name), Attributes: schema.Attributes{}}

	if rest == "" {
		return tag, nil
	}

	for _, part := range strings.Split(rest, ",") {
		k, v, ok := strings.Cut(part, "=")
		k = strings.TrimSpace(k)

		if !ok || k == "" {
			return Tag{}, fmt.Errorf("invalid %s tag %q: expected Key=Value, got %q", TagKey, value, part)
		}

		tag.Attributes[k] = v
	}

	return tag, nil
}

// lookupTag parses the va key of a raw struct tag. ok is false when the
// field has none.
func lookupTag(raw string) (tag Tag, ok bool, err error) {
	value, ok := reflect.StructTag(raw).Lookup(TagKey)
	if !ok {
		return Tag{Attributes: schema.Attributes{}}, false, nil
	}

	tag, err = ParseTag(value)

	return tag, true, err
}
