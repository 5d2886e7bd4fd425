package primitive

import (
	"go/types"
	"strings"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum is a terminal annotation type.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindBoolean

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt, KindLong, KindFloat, KindDouble:
		return true
	}
}

// Name is the kind as written in type expressions, e.g. "Int" or "Boolean".
func (k KindEnum) Name() string {
	return strings.TrimPrefix(k.String(), "Kind")
}

// ParseKind returns the kind for a type-expression name. It returns the zero
// kind when the name is unknown.
func ParseKind(name string) KindEnum {
	for k := KindEnum(1); int(k) < KindTotal; k++ {
		if k.Name() == name {
			return k
		}
	}

	return 0
}

// FromBasicKind maps a go/types basic kind onto an annotation kind.
func FromBasicKind(kind types.BasicKind) KindEnum {
	switch kind {
	default:
		return 0
	case types.Int, types.Int8, types.Int16, types.Int32,
		types.Uint8, types.Uint16:
		return KindInt
	case types.Int64, types.Uint32:
		return KindLong
	case types.Float32:
		return KindFloat
	case types.Float64:
		return KindDouble
	case types.String:
		return KindString
	case types.Bool:
		return KindBoolean
	}
}
