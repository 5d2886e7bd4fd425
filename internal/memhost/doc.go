// Package memhost is an in-memory host for schemas, programs and allele
// rules.
//
// A Dataset holds a root schema and the root value of each record. Struct
// values are map[string]any, arrays and sets []any, primitives their Go
// counterparts and nulls nil, which is the shape YAML and JSON decoders
// produce. Values are treated as immutable: every operation returns a new
// Dataset and copies the maps it changes.
package memhost
