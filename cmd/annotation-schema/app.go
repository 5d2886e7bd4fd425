package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"annotation-schema/internal/config"
	"annotation-schema/internal/diagnostic"
	"annotation-schema/internal/document"
)

var errUsage = errors.New("usage")

// env is what every subcommand runs with.
type env struct {
	cfg    config.Config
	log    zerolog.Logger
	stdout io.Writer
	stderr io.Writer
	dump   bool
	// rootFlag is set when -root was given explicitly.
	rootFlag bool
}

type command struct {
	usage string
	run   func(e *env, fs *flag.FlagSet, args []string) error
}

var commands = map[string]command{
	"flatten":     {"flatten [-leaf] [-recursive] [-dataset n] file", runFlatten},
	"group":       {"group [-at path] [-recursive] [-ignore re,...] [-dataset n] file", runGroup},
	"merge":       {"merge file...", runMerge},
	"unify":       {"unify [-programs] file...", runUnify},
	"consolidate": {"consolidate file...", runConsolidate},
	"split":       {"split [-alts path] [-rules] [-drop-reference] file", runSplit},
	"subset":      {"subset -keep 0,1,... [-alts path] [-rules] file", runSubset},
	"from-go":     {"from-go -type Name [-name dataset] package", runFromGo},
	"jsonschema":  {"jsonschema", runJSONSchema},
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		printUsage(stderr)

		return 2
	}

	e := &env{cfg: cfg, log: newLogger(stderr, cfg.LogLevel), stdout: stdout, stderr: stderr}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: annotation-schema %s\n", cmd.usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&e.cfg.Root, "root", cfg.Root, "record root path")
	fs.BoolVar(&e.dump, "dump", false, "dump intermediate values to stderr")
	fs.Func("log-level", "log level (default "+cfg.LogLevel.String()+")", func(s string) error {
		level, err := zerolog.ParseLevel(strings.ToLower(s))
		if err != nil {
			return err
		}

		e.log = e.log.Level(level)

		return nil
	})

	err = cmd.run(e, fs, args[1:])

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fs.Usage()
		return 2
	default:
		e.log.Error().Err(err).Str("command", args[0]).Msg("command failed")
		return 1
	}
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}

	sort.Strings(names)

	fmt.Fprintln(w, "usage: annotation-schema <command> [flags]")
	fmt.Fprintln(w, "commands:")

	for _, name := range names {
		fmt.Fprintln(w, "  "+commands[name].usage)
	}
}

// report logs diagnostics and dumps v when -dump is set.
func (e *env) report(d diagnostic.Diagnostics, v any) {
	diagnostic.Log(e.log, d)

	if e.dump && v != nil {
		fmt.Fprint(e.stderr, spew.Sdump(v))
	}
}

func (e *env) writeYAML(v any) error {
	enc := yaml.NewEncoder(e.stdout)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return enc.Close()
}

func (e *env) writeText(s string) error {
	_, err := io.WriteString(e.stdout, strings.TrimRight(s, "\n")+"\n")
	return err
}

// parse parses the subcommand flags.
func (e *env) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "root" {
			e.rootFlag = true
		}
	})

	return nil
}

// root returns the root for doc: -root, then the document's, then the
// configured one.
func (e *env) root(doc *document.File) string {
	if e.rootFlag {
		return e.cfg.Root
	}

	return doc.RootOr(e.cfg.Root)
}

// onlyArg returns the single positional argument.
func onlyArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", errUsage
	}

	return fs.Arg(0), nil
}
