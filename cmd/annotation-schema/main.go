// Package main provides the CLI entrypoint for annotation-schema.
//
// annotation-schema works on YAML documents of variant datasets:
//   - flatten and group schemas by arity
//   - merge, unify and consolidate the schemas of several datasets
//   - split multi-allelic records or subset their alleles
//   - derive a schema from an annotated Go struct
//
// Settings come from ANNOTATION_SCHEMA_* variables (and .env files),
// overridden by flags.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
