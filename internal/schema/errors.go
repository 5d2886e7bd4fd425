package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTypeConflict    = errors.New("schema type conflict")
	ErrFieldNotFound   = errors.New("schema field not found")
	ErrDegenerateMerge = errors.New("merge called on an empty list")
	ErrNotStruct       = errors.New("expected struct type")
	ErrInvalidType     = errors.New("invalid type")
)

// TypeConflictError reports two incompatible types found for the same path.
type TypeConflictError struct {
	Path  string
	Left  Type
	Right Type
}

func (e *TypeConflictError) Error() string {
	return fmt.Sprintf("%s: field %s has type %s, which conflicts with %s",
		ErrTypeConflict, e.Path, e.Left, e.Right)
}

// Is makes errors.Is(err, ErrTypeConflict) hold.
func (e *TypeConflictError) Is(target error) bool {
	return target == ErrTypeConflict
}

// FieldNotFoundError reports a path absent from a schema.
type FieldNotFoundError struct {
	Path string
	// Suggestions are the closest existing paths, best first.
	Suggestions []string
}

func (e *FieldNotFoundError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrFieldNotFound, e.Path)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}

	return msg
}

// Is makes errors.Is(err, ErrFieldNotFound) hold.
func (e *FieldNotFoundError) Is(target error) bool {
	return target == ErrFieldNotFound
}

// ErrNotStructAt returns an error for a non-struct type found where a struct
// was required.
func ErrNotStructAt(path string, t Type) error {
	return fmt.Errorf("%w: %s is %s", ErrNotStruct, path, t)
}
