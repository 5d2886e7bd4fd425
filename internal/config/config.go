// Package config holds the settings of the command line, read from
// ANNOTATION_SCHEMA_* environment variables. The command loads .env files
// through godotenv before reading them; flags override the result.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"annotation-schema/internal/allele"
	"annotation-schema/internal/group"
)

// EnvPrefix prefixes every variable read by FromEnv.
const EnvPrefix = "ANNOTATION_SCHEMA_"

// Config holds the settings shared by all subcommands.
type Config struct {
	// Root is the path of the record root, e.g. "va".
	Root string
	// NumberKey is the arity attribute.
	NumberKey string
	// ASFilters is the catalogue of allele-specific filter names.
	ASFilters []string
	// DefaultWhenMissing classifies fields without an arity attribute.
	DefaultWhenMissing bool
	// DropReference turns R-based annotations into A-based ones on split.
	DropReference bool
	LogLevel      zerolog.Level
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Root:               "va",
		NumberKey:          group.NumberKey,
		ASFilters:          append([]string(nil), allele.DefaultCatalogue...),
		DefaultWhenMissing: true,
		DropReference:      false,
		LogLevel:           zerolog.InfoLevel,
	}
}

// FromEnv returns the default configuration overridden by the environment.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("ROOT"); ok {
		cfg.Root = v
	}

	if v, ok := get("NUMBER_KEY"); ok {
		cfg.NumberKey = v
	}

	if v, ok := get("AS_FILTERS"); ok {
		cfg.ASFilters = SplitList(v)
	}

	for name, dst := range map[string]*bool{
		"DEFAULT_WHEN_MISSING": &cfg.DefaultWhenMissing,
		"DROP_REFERENCE":       &cfg.DropReference,
	} {
		v, ok := get(name)
		if !ok {
			continue
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}

		*dst = b
	}

	if v, ok := get("LOG_LEVEL"); ok {
		level, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %sLOG_LEVEL: %w", EnvPrefix, err)
		}

		cfg.LogLevel = level
	}

	return cfg, nil
}

// SplitList splits a comma-separated list, dropping empty items.
func SplitList(v string) []string {
	var out []string

	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
