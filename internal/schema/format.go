package schema

import (
	"fmt"
	"strings"
	"unicode"

	"annotation-schema/primitive"
)

// String renders the type in the type-expression grammar accepted by ParseType.
func (t Type) String() string {
	var b strings.Builder
	t.write(&b)

	return b.String()
}

func (t Type) write(b *strings.Builder) {
	switch t.Kind {
	case TypeKindPrimitive:
		b.WriteString(t.Primitive.Name())
	case TypeKindArray, TypeKindSet:
		if t.Kind == TypeKindArray {
			b.WriteString("Array[")
		} else {
			b.WriteString("Set[")
		}

		if t.Elem != nil {
			t.Elem.write(b)
		}

		b.WriteByte(']')
	case TypeKindStruct:
		t.Struct.write(b)
	default:
		b.WriteString("Invalid")
	}
}

// String renders the struct as "Struct{name: Type, ...}".
func (s *Struct) String() string {
	var b strings.Builder
	s.write(&b)

	return b.String()
}

func (s *Struct) write(b *strings.Builder) {
	b.WriteString("Struct{")

	for i, f := range s.fieldsOrNil() {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(QuoteFieldName(f.Name))
		b.WriteString(": ")
		f.Type.write(b)
	}

	b.WriteByte('}')
}

// QuoteFieldName backtick-quotes a field name that would otherwise be read as
// a path or a number: names containing a dot or starting with a digit.
func QuoteFieldName(name string) string {
	if strings.Contains(name, ".") || (name != "" && unicode.IsDigit(rune(name[0]))) {
		return "`" + name + "`"
	}

	return name
}

// ParseType parses a type expression such as "Array[Int]" or
// "Struct{AC: Array[Int], `1kg.AF`: Double}".
func ParseType(s string) (Type, error) {
	p := &typeParser{src: s}

	t, err := p.parseType()
	if err != nil {
		return Type{}, err
	}

	p.skipSpace()

	if p.pos != len(p.src) {
		return Type{}, p.errorf("unexpected trailing input %q", p.src[p.pos:])
	}

	return t, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %q at offset %d: %s", ErrInvalidType, p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) consume(tok string) bool {
	p.skipSpace()

	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}

	return false
}

func (p *typeParser) ident() string {
	p.skipSpace()

	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}

		p.pos++
	}

	return p.src[start:p.pos]
}

func (p *typeParser) fieldName() (string, error) {
	p.skipSpace()

	if p.consume("`") {
		end := strings.IndexByte(p.src[p.pos:], '`')
		if end < 0 {
			return "", p.errorf("unterminated quoted name")
		}

		name := p.src[p.pos : p.pos+end]
		p.pos += end + 1

		return name, nil
	}

	name := p.ident()
	if name == "" {
		return "", p.errorf("expected field name")
	}

	return name, nil
}

func (p *typeParser) parseType() (Type, error) {
	name := p.ident()

	switch name {
	case "":
		return Type{}, p.errorf("expected type name")
	case "Array", "Set":
		if !p.consume("[") {
			return Type{}, p.errorf("expected '[' after %s", name)
		}

		elem, err := p.parseType()
		if err != nil {
			return Type{}, err
		}

		if !p.consume("]") {
			return Type{}, p.errorf("expected ']'")
		}

		if name == "Array" {
			return ArrayOf(elem), nil
		}

		return SetOf(elem), nil
	case "Struct":
		return p.parseStruct()
	}

	k := primitive.ParseKind(name)
	if !k.IsValid() {
		return Type{}, p.errorf("unknown type %q", name)
	}

	return PrimitiveOf(k), nil
}

func (p *typeParser) parseStruct() (Type, error) {
	if !p.consume("{") {
		return Type{}, p.errorf("expected '{' after Struct")
	}

	var fields []Field

	if p.consume("}") {
		return StructType(NewStruct()), nil
	}

	for {
		name, err := p.fieldName()
		if err != nil {
			return Type{}, err
		}

		if !p.consume(":") {
			return Type{}, p.errorf("expected ':' after field %s", name)
		}

		t, err := p.parseType()
		if err != nil {
			return Type{}, err
		}

		fields = append(fields, NewField(name, t))

		if p.consume("}") {
			break
		}

		if !p.consume(",") {
			return Type{}, p.errorf("expected ',' or '}'")
		}
	}

	s, err := BuildStruct(fields)
	if err != nil {
		return Type{}, err
	}

	return StructType(s), nil
}
