// Package allele rewrites allele-indexed array annotations when the allele
// set of a variant changes.
//
// Array annotations come in three arity classes (see package group):
//
//   - A-based: one value per alternate allele
//   - R-based: one value per allele, reference (index 0) included
//   - G-based: one value per unordered genotype (j, k), j <= k, stored at the
//     triangular index k*(k+1)/2 + j
//
// Two remappings exist. Splitting a multi-allelic record emits one biallelic
// record per alternate allele, keeping the values of that allele only.
// Subsetting keeps an arbitrary set of alleles (the reference always first).
//
// The package produces Rules: symbolic rewrites the host applies per record.
// Each Rule renders to a host expression and carries its reference semantics
// on concrete arrays (Rule.Apply).
//
// Genotype arrays are filtered, not renumbered: after subsetting, the kept
// entries are still the ones of the original triangular layout, in order.
// Callers that need a compact genotype array for the reduced allele set must
// renumber in a second pass.
package allele
