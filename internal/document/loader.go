package document

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// DefaultRoot is the root path of documents that do not set one.
const DefaultRoot = "va"

// LoadFile loads and parses a YAML document from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}
}

// RootOr returns the document root, or def when the document sets none.
// An empty def falls back to DefaultRoot.
func (f *File) RootOr(def string) string {
	switch {
	case f.Root != "":
		return f.Root
	case def != "":
		return def
	default:
		return DefaultRoot
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}

	return nil
}

// JSONSchema returns the JSON Schema of the document format, indented.
func JSONSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}

	s := r.Reflect(&File{})
	s.Title = "annotation-schema document"

	return json.MarshalIndent(s, "", "  ")
}
