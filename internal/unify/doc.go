// Package unify reconciles datasets against a common schema.
//
// ReplaceSchema computes the field-selection program that moves a dataset
// from its schema to a new one: values are reused where the path exists with
// the same type variant and nulled elsewhere. UnifySchemas merges the
// schemas of several datasets (package merge) and replaces each dataset's
// schema with the merged one.
//
// ConsolidateLeaves is a lighter sibling working on leaf paths only. It
// fills missing leaves with typed nulls and reconciles attributes with the
// earlier dataset winning, which is the opposite of the merge convention:
// datasets are visited in reverse and each one overrides what later ones
// declared.
//
// Nothing here reads or writes values. Programs are applied by a host
// through the Dataset interface.
package unify
