package program

import (
	"strings"

	"annotation-schema/internal/schema"
)

// Render returns the host expression of the program's value directives.
//
// A replace program renders as a single struct literal assigned to the root:
//
//	va = {rsid: va.rsid, info: {AC: va.info.AC, DP: NA: Int}}
//
// an annotate program as one assignment per directive, joined by ",\n".
func (p Program) Render() string {
	if p.Mode == ModeReplace {
		return p.Root + " = " + renderStruct(p.Directives)
	}

	lines := make([]string, len(p.Directives))
	for i, d := range p.Directives {
		lines[i] = d.Field + " = " + d.Source.Render()
	}

	return strings.Join(lines, ",\n")
}

// Render returns the host expression of a single source.
func (s Source) Render() string {
	switch s.Kind {
	case SourceExisting:
		return s.Path
	case SourceNull:
		return "NA: " + s.Type.String()
	case SourceStruct:
		return renderStruct(s.Fields)
	default:
		return "NA"
	}
}

func renderStruct(ds []Directive) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = schema.QuoteFieldName(schema.BaseName(d.Field)) + ": " + d.Source.Render()
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
