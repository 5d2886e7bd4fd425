// Package document reads and writes the YAML documents the command line
// works on.
//
// A document holds one or more datasets, each with a root schema and
// optionally its records:
//
//	version: "1"
//	root: va
//	datasets:
//	  - name: exomes
//	    schema:
//	      - name: rsid
//	        type: String
//	      - name: info
//	        fields:
//	          - name: AC
//	            type: Array[Int]
//	            attributes:
//	              Number: A
//	    records:
//	      - rsid: rs1
//	        info:
//	          AC: [1, 0]
//
// Field types use the type-expression grammar of schema.ParseType. A field
// with nested fields is a Struct. A dataset whose root is not a Struct sets
// type instead of schema.
//
// JSONSchema describes the document format for editors and validators.
package document
