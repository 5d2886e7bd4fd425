package diagnostic

import (
	"fmt"
	"slices"
	"strings"

	"annotation-schema/internal/common"
)

// Diagnostic codes.
const (
	CodeAttributeConflict        = "ATTRIBUTE_CONFLICT"
	CodeTypeIncompatibleOverride = "TYPE_INCOMPATIBLE_OVERRIDE"
	CodeElementTypeMismatch      = "ELEMENT_TYPE_MISMATCH"
	CodeSingleStructMerge        = "SINGLE_STRUCT_MERGE"
	CodeAritySummary             = "ARITY_SUMMARY"
	CodeMissingFieldFilled       = "MISSING_FIELD_FILLED"
	CodeRootNotStruct            = "ROOT_NOT_STRUCT"
)

// Diagnostics holds all diagnostic information produced by an operation.
// All returns it in the order it was produced.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic

	// next is the Seq of the next diagnostic added.
	next int
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// FieldPath identifies which field this relates to (if any).
	FieldPath string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
	// Seq is the position of the diagnostic in encounter order, across
	// warnings and infos.
	Seq int
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return common.UnknownStr
	}
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, fieldPath, format string, args ...any) {
	d.add(Diagnostic{
		Severity:  SeverityWarning,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		FieldPath: fieldPath,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, fieldPath, format string, args ...any) {
	d.add(Diagnostic{
		Severity:  SeverityInfo,
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		FieldPath: fieldPath,
	})
}

func (d *Diagnostics) add(diag Diagnostic) {
	diag.Seq = d.next
	d.next++

	if diag.Severity == SeverityWarning {
		d.Warnings = append(d.Warnings, diag)
	} else {
		d.Infos = append(d.Infos, diag)
	}
}

// Merge appends the diagnostics of other after those of d, keeping their
// encounter order.
func (d *Diagnostics) Merge(other Diagnostics) {
	for _, diag := range other.All() {
		d.add(diag)
	}
}

// All returns warnings and infos together in encounter order.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Warnings)+len(d.Infos))
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	slices.SortStableFunc(all, func(a, b Diagnostic) int { return a.Seq - b.Seq })

	return all
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// WithCode returns the warnings and infos carrying the given code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, list := range [][]Diagnostic{d.Warnings, d.Infos} {
		for _, diag := range list {
			if diag.Code == code {
				out = append(out, diag)
			}
		}
	}

	return out
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.FieldPath != "" {
		msg = d.FieldPath + ": " + msg
	}

	if len(d.Suggestions) > 0 {
		msg += " (" + strings.Join(d.Suggestions, ", ") + ")"
	}

	return msg
}
