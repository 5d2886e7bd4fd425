// Package program defines the field-selection program: the symbolic contract
// between the schema algebra and the host that stores the records.
//
// A Program lists, for every output field, where its value comes from: an
// existing path of the old record, a typed null, or a struct built from
// nested directives. The host materializes the new values; this package never
// touches records itself.
//
// Programs come in two modes. A replace program rebuilds the whole root
// ("va = {a: va.a, b: NA: String}"); an annotate program only sets the listed
// paths and leaves every other field alone ("va.info.DP = NA: Int").
//
// Programs round-trip through YAML:
//
//	root: va
//	mode: replace
//	directives:
//	  - field: va.a
//	    from: va.a
//	  - field: va.b
//	    null: String
//	attributes:
//	  - path: va.a
//	    attributes: {Number: "1"}
package program
