package program

import (
	"annotation-schema/internal/common"
	"annotation-schema/internal/schema"
)

// SourceKind says where a directive takes its value from.
type SourceKind int

const (
	SourceInvalid  SourceKind = iota
	SourceExisting            // reuse the value at Path unchanged
	SourceNull                // a null of Type
	SourceStruct              // a struct assembled from nested directives
)

// String returns a human-readable representation of the SourceKind.
func (k SourceKind) String() string {
	switch k {
	case SourceExisting:
		return "existing"
	case SourceNull:
		return "null"
	case SourceStruct:
		return "struct"
	default:
		return common.UnknownStr
	}
}

// Source is the value origin of one directive.
type Source struct {
	Kind SourceKind
	// Path of the reused value, for SourceExisting.
	Path string
	// Type of the null, for SourceNull.
	Type schema.Type
	// Fields of the assembled struct, for SourceStruct.
	Fields []Directive
}

// Directive sets the output field at path Field from Source.
type Directive struct {
	Field  string
	Source Source
}

// Mode is how a program is applied.
type Mode int

const (
	// ModeReplace rebuilds the whole root from the directives.
	ModeReplace Mode = iota
	// ModeAnnotate sets the directive paths and keeps every other field.
	ModeAnnotate
)

// String returns a human-readable representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeReplace:
		return "replace"
	case ModeAnnotate:
		return "annotate"
	default:
		return common.UnknownStr
	}
}

// AttributeDirective attaches attributes to the field at Path of the new
// schema, whether its value was reused or nulled.
type AttributeDirective struct {
	Path       string
	Attributes schema.Attributes
}

// Program is an ordered list of directives over a root path.
type Program struct {
	Root       string
	Mode       Mode
	Directives []Directive
	Attributes []AttributeDirective
}

// Existing returns a source reusing the value at path.
func Existing(path string) Source {
	return Source{Kind: SourceExisting, Path: path}
}

// Null returns a source producing a null of type t.
func Null(t schema.Type) Source {
	return Source{Kind: SourceNull, Type: t}
}

// Assemble returns a source building a struct from fields.
func Assemble(fields ...Directive) Source {
	return Source{Kind: SourceStruct, Fields: fields}
}

// Find returns the directive for the output path, searching nested structs.
func (p Program) Find(path string) (Directive, bool) {
	return find(p.Directives, path)
}

func find(ds []Directive, path string) (Directive, bool) {
	for _, d := range ds {
		if d.Field == path {
			return d, true
		}

		if d.Source.Kind == SourceStruct {
			if nested, ok := find(d.Source.Fields, path); ok {
				return nested, true
			}
		}
	}

	return Directive{}, false
}

// Walk calls fn for each directive, depth-first in order.
func (p Program) Walk(fn func(Directive)) {
	walk(p.Directives, fn)
}

func walk(ds []Directive, fn func(Directive)) {
	for _, d := range ds {
		fn(d)

		if d.Source.Kind == SourceStruct {
			walk(d.Source.Fields, fn)
		}
	}
}

// IsEmpty reports whether the program neither sets values nor attributes.
func (p Program) IsEmpty() bool {
	return len(p.Directives) == 0 && len(p.Attributes) == 0
}
