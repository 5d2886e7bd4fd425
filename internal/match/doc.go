// Package match ranks annotation paths by edit distance so that lookups of
// a missing path can suggest the closest existing ones.
//
// Key functions:
//   - Distance and Similarity: rune-based edit distance
//   - Closest: returns the best-scoring candidates for a misspelt path
package match
