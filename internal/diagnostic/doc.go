// Package diagnostic provides the structured info and warning messages that
// schema operations return alongside their results.
//
// Operations never log: recoverable conditions (attribute conflicts, fields
// nulled on a type change, arity summaries) are collected into Diagnostics and
// handed back to the caller, which may forward them to a logger with Log.
// Fatal conditions are returned as errors instead.
package diagnostic
