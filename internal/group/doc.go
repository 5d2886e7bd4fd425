// Package group classifies the fields of a schema by one of their attributes.
//
// The main use is VCF-style arity classification: array annotations declare a
// "Number" attribute ("A" per alternate allele, "R" per allele including the
// reference, "G" per genotype, "." unbounded, or a fixed count), and the
// allele remapper needs to know which annotation falls in which class.
package group
