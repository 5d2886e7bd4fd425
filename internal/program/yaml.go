package program

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"annotation-schema/internal/schema"
)

type programYAML struct {
	Root       string          `yaml:"root"`
	Mode       string          `yaml:"mode"`
	Directives []directiveYAML `yaml:"directives,omitempty"`
	Attributes []attributeYAML `yaml:"attributes,omitempty"`
}

type directiveYAML struct {
	Field  string          `yaml:"field"`
	From   string          `yaml:"from,omitempty"`
	Null   string          `yaml:"null,omitempty"`
	Struct []directiveYAML `yaml:"struct,omitempty"`
}

type attributeYAML struct {
	Path       string            `yaml:"path"`
	Attributes map[string]string `yaml:"attributes"`
}

// MarshalYAML implements yaml.Marshaler.
func (p Program) MarshalYAML() (any, error) {
	out := programYAML{
		Root: p.Root,
		Mode: p.Mode.String(),
	}

	for _, d := range p.Directives {
		dy, err := toYAML(d)
		if err != nil {
			return nil, err
		}

		out.Directives = append(out.Directives, dy)
	}

	for _, a := range p.Attributes {
		out.Attributes = append(out.Attributes, attributeYAML{Path: a.Path, Attributes: a.Attributes})
	}

	return out, nil
}

func toYAML(d Directive) (directiveYAML, error) {
	dy := directiveYAML{Field: d.Field}

	switch d.Source.Kind {
	case SourceExisting:
		dy.From = d.Source.Path
	case SourceNull:
		dy.Null = d.Source.Type.String()
	case SourceStruct:
		for _, nested := range d.Source.Fields {
			ny, err := toYAML(nested)
			if err != nil {
				return dy, err
			}

			dy.Struct = append(dy.Struct, ny)
		}
	default:
		return dy, fmt.Errorf("directive %s: invalid source", d.Field)
	}

	return dy, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Program) UnmarshalYAML(node *yaml.Node) error {
	var in programYAML

	err := node.Decode(&in)
	if err != nil {
		return err
	}

	switch in.Mode {
	case "", "replace":
		p.Mode = ModeReplace
	case "annotate":
		p.Mode = ModeAnnotate
	default:
		return fmt.Errorf("unknown program mode %q", in.Mode)
	}

	p.Root = in.Root
	p.Directives = nil
	p.Attributes = nil

	for _, dy := range in.Directives {
		d, err := fromYAML(dy)
		if err != nil {
			return err
		}

		p.Directives = append(p.Directives, d)
	}

	for _, a := range in.Attributes {
		p.Attributes = append(p.Attributes, AttributeDirective{
			Path:       a.Path,
			Attributes: schema.Attributes(a.Attributes).Clone(),
		})
	}

	return nil
}

func fromYAML(dy directiveYAML) (Directive, error) {
	d := Directive{Field: dy.Field}

	switch {
	case dy.From != "":
		d.Source = Existing(dy.From)
	case dy.Null != "":
		t, err := schema.ParseType(dy.Null)
		if err != nil {
			return d, fmt.Errorf("directive %s: %w", dy.Field, err)
		}

		d.Source = Null(t)
	case dy.Struct != nil:
		fields := make([]Directive, 0, len(dy.Struct))

		for _, ny := range dy.Struct {
			nested, err := fromYAML(ny)
			if err != nil {
				return d, err
			}

			fields = append(fields, nested)
		}

		d.Source = Assemble(fields...)
	default:
		return d, fmt.Errorf("directive %s: one of from, null or struct is required", dy.Field)
	}

	return d, nil
}

// Marshal serializes a Program to YAML.
func Marshal(p Program) ([]byte, error) {
	return yaml.Marshal(p)
}

// Parse parses YAML data into a Program.
func Parse(data []byte) (Program, error) {
	var p Program

	err := yaml.Unmarshal(data, &p)
	if err != nil {
		return Program{}, fmt.Errorf("failed to parse program YAML: %w", err)
	}

	return p, nil
}
