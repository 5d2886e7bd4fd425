// Package analyze derives annotation schemas from Go struct types.
//
// A Catalog is loaded with golang.org/x/tools/go/packages and indexes the
// exported named types of the loaded packages. Catalog.Struct walks the
// go/types description of one of them into a schema.Struct:
//
//   - int, int8, int16, int32, uint8, uint16 become Int
//   - int64 and uint32 become Long
//   - float32 and float64 become Float and Double
//   - string and bool become String and Boolean
//   - slices and arrays become Array, map[T]struct{} becomes Set[T]
//   - structs become Struct, pointers are dereferenced
//
// The va struct tag renames a field and sets its attributes:
//
//	AC []int32 `va:"AC,Number=A,Description=Allele count"`
//
// A field tagged va:"-" and unexported fields are skipped. Embedded structs
// without a va tag contribute their fields to the embedding struct. Struct
// types of packages outside the catalog, such as time.Time, are rejected.
package analyze
