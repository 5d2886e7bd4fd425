// Package merge unions several schemas into one.
//
// Merging is ordered: the fields of the first Struct come first in their own
// order, and fields introduced by later Structs are appended in the order the
// Structs are given. A name found with two different type variants aborts the
// merge with a schema.TypeConflictError. Attributes are unioned, the first
// value seen for a key winning; disagreeing values are reported as
// ATTRIBUTE_CONFLICT warnings. Fields that are Structs in several inputs are
// merged recursively.
package merge
