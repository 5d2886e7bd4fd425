// Package schema provides the type vocabulary of annotation records and the
// tree algorithms over it.
//
// A schema is a Struct: an ordered, named collection of typed fields, each
// carrying a string attribute map (VCF-style "Number", "Description", ...).
// Structs nest, so a schema is a tree rooted at a path prefix such as "va".
//
// Key capabilities:
//   - Type constructors and predicates (IsNumeric, IsNativelyExportable)
//   - Variant-tag comparison used by every merge/replace rule (SameTag)
//   - Depth-first flattening to dotted paths (Flatten, Lookup, Exists)
//   - A textual type grammar, e.g. "Struct{AC: Array[Int], AN: Int}"
//
// Values of this package are never mutated by the algorithms built on it:
// every operation returns a new Struct.
package schema
