package document

// File is a document of datasets sharing a root path.
type File struct {
	Version  string    `yaml:"version" json:"version"`
	Root     string    `yaml:"root,omitempty" json:"root,omitempty" jsonschema:"description=Root path of the records (va by default)"`
	Datasets []Dataset `yaml:"datasets" json:"datasets"`
}

// Dataset is one named dataset of a document.
type Dataset struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	// Schema lists the fields of a Struct root.
	Schema []Field `yaml:"schema,omitempty" json:"schema,omitempty" jsonschema:"description=Fields of a struct root"`
	// Type is the type expression of a non-Struct root.
	Type    string `yaml:"type,omitempty" json:"type,omitempty" jsonschema:"description=Type expression of a non-struct root"`
	Records []any  `yaml:"records,omitempty" json:"records,omitempty" jsonschema:"description=Root value of each record"`
}

// Field is a schema field. Either Type or Fields is set.
type Field struct {
	Name       string            `yaml:"name" json:"name"`
	Type       string            `yaml:"type,omitempty" json:"type,omitempty" jsonschema:"description=Type expression such as Array[Int] or Set[String]"`
	Fields     []Field           `yaml:"fields,omitempty" json:"fields,omitempty" jsonschema:"description=Nested fields of a struct field"`
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}
