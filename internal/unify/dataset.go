package unify

import (
	"annotation-schema/internal/program"
	"annotation-schema/internal/schema"
)

// Dataset is a host collection of records sharing a root schema.
type Dataset interface {
	// Schema returns the type of the root annotation.
	Schema() schema.Type
	// Apply materializes p and returns the dataset whose root has type
	// newSchema. The receiver is left unchanged.
	Apply(p program.Program, newSchema schema.Type) (Dataset, error)
}

func rootStruct(d Dataset, root string) (*schema.Struct, error) {
	t := d.Schema()
	if !t.IsStruct() {
		return nil, schema.ErrNotStructAt(root, t)
	}

	return t.Struct, nil
}
