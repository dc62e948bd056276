package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/oasreduce/internal/cliutil"
	"github.com/erraggy/oasreduce/internal/config"
	"github.com/erraggy/oasreduce/oaserrors"
	"github.com/erraggy/oasreduce/parser"
	"github.com/erraggy/oasreduce/reducer"
)

// ReduceFlags contains flags for the reduce command
type ReduceFlags struct {
	File               string
	Endpoints          endpointList
	Output             string
	Format             string
	Quiet              bool
	Config             string
	PreserveExtensions bool
	Verbose            bool
}

// SetupReduceFlags creates and configures a FlagSet for the reduce command.
// Returns the FlagSet and a ReduceFlags struct with bound flag variables.
func SetupReduceFlags() (*flag.FlagSet, *ReduceFlags) {
	fs := flag.NewFlagSet("reduce", flag.ContinueOnError)
	flags := &ReduceFlags{}

	fs.StringVar(&flags.File, "file", "", "path or URL of the OpenAPI document, or '-' for stdin")
	fs.StringVar(&flags.File, "f", "", "path or URL of the OpenAPI document, or '-' for stdin")
	fs.Var(&flags.Endpoints, "endpoint", "endpoint selector like GET:/v1/users or /v1/users (repeatable, comma-separated lists allowed)")
	fs.Var(&flags.Endpoints, "e", "endpoint selector like GET:/v1/users or /v1/users (repeatable, comma-separated lists allowed)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: json)")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no stats or warnings")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no stats or warnings")
	fs.StringVar(&flags.Config, "config", "", "profile file with default settings (default: ./"+config.DefaultFile+" if present)")
	fs.StringVar(&flags.Config, "c", "", "profile file with default settings (default: ./"+config.DefaultFile+" if present)")
	fs.BoolVar(&flags.PreserveExtensions, "preserve-extensions", false, "keep root-level x- vendor extensions")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log debug details to stderr")
	fs.BoolVar(&flags.Verbose, "v", false, "log debug details to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasreduce [reduce] [flags] [file|url|-]\n\n")
		cliutil.Writef(fs.Output(), "Reduce an OpenAPI document to the selected endpoints and the components they reference.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nSelectors:\n")
		cliutil.Writef(fs.Output(), "  GET:/v1/users   the GET operation of /v1/users\n")
		cliutil.Writef(fs.Output(), "  /v1/users       every operation of /v1/users\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasreduce --file openapi.json --endpoint GET:/blueprints\n")
		cliutil.Writef(fs.Output(), "  oasreduce -f openapi.json -e GET:/blueprints -e POST:/compose -o reduced.json\n")
		cliutil.Writef(fs.Output(), "  oasreduce reduce -e 'GET:/pets,/pets/{id}' --format yaml https://example.com/openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  cat openapi.json | oasreduce -q -f - -e /pets > reduced.json\n")
		cliutil.Writef(fs.Output(), "\nProfile:\n")
		cliutil.Writef(fs.Output(), "  A YAML profile may set file, endpoints, output, format, quiet and\n")
		cliutil.Writef(fs.Output(), "  preserve-extensions. Flags given on the command line take precedence.\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Document reduced successfully\n")
		cliutil.Writef(fs.Output(), "  1    Failed to read, parse or reduce the document\n")
		cliutil.Writef(fs.Output(), "  2    Invalid usage (for example, no endpoints provided)\n")
	}

	return fs, flags
}

// overrides returns the profile keys set explicitly on the command line.
func (f *ReduceFlags) overrides(fs *flag.FlagSet) map[string]any {
	out := make(map[string]any)
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "file", "f":
			out[config.KeyFile] = f.File
		case "endpoint", "e":
			out[config.KeyEndpoints] = []string(f.Endpoints)
		case "output", "o":
			out[config.KeyOutput] = f.Output
		case "format":
			out[config.KeyFormat] = f.Format
		case "quiet", "q":
			out[config.KeyQuiet] = f.Quiet
		case "preserve-extensions":
			out[config.KeyPreserveExtensions] = f.PreserveExtensions
		}
	})
	return out
}

// newLogger returns a debug-level logger on w when verbose is set, and nil otherwise.
func newLogger(w io.Writer, verbose bool) parser.Logger {
	if !verbose {
		return nil
	}
	return parser.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// HandleReduce executes the reduce command
func HandleReduce(args []string) error {
	return runReduce(args, os.Stdout, os.Stderr)
}

func runReduce(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupReduceFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &oaserrors.ConfigError{Option: "flags", Cause: err}
	}

	overrides := flags.overrides(fs)
	switch fs.NArg() {
	case 0:
	case 1:
		if _, set := overrides[config.KeyFile]; set {
			return &oaserrors.ConfigError{Option: config.KeyFile, Message: "document given both with --file and as an argument"}
		}
		overrides[config.KeyFile] = fs.Arg(0)
	default:
		fs.Usage()
		return &oaserrors.ConfigError{Option: config.KeyFile, Message: "reduce accepts at most one document argument"}
	}

	cfg, err := config.Load(flags.Config, overrides)
	if err != nil {
		return err
	}
	if err := cfg.RequireEndpoints(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Output != "" {
		if err := ValidateOutputPath(cfg.Output, cfg.File); err != nil {
			return err
		}
	}

	logger := newLogger(stderr, flags.Verbose)
	parseOpts := []parser.Option{parser.WithFilePath(cfg.File)}
	reduceOpts := []reducer.Option{reducer.WithPreserveExtensions(cfg.PreserveExtensions)}
	if logger != nil {
		parseOpts = append(parseOpts, parser.WithLogger(logger))
		reduceOpts = append(reduceOpts, reducer.WithLogger(logger))
	}

	doc, err := parser.ParseWithOptions(parseOpts...)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	reduceOpts = append(reduceOpts, reducer.WithParsed(*doc), reducer.WithEndpoints(cfg.Endpoints...))
	result, err := reducer.ReduceWithOptions(reduceOpts...)
	if err != nil {
		return fmt.Errorf("reducing document: %w", err)
	}

	format := parser.SourceFormatJSON
	if cfg.Format != "" {
		format = parser.ParseFormat(cfg.Format)
	}
	data, err := result.Document.Marshal(format)
	if err != nil {
		return fmt.Errorf("marshaling reduced document: %w", err)
	}

	if err := writeOutput(stdout, cfg.Output, data); err != nil {
		return err
	}

	if cfg.Quiet {
		return nil
	}

	for _, ep := range result.Unmatched {
		cliutil.Writef(stderr, "Warning: endpoint %s matched no operation\n", ep)
	}
	if cfg.Output != "" {
		cliutil.Writef(stderr, "Output written to: %s\n", cfg.Output)
	}

	before, err := prettyLength(doc)
	if err != nil {
		return fmt.Errorf("measuring source document: %w", err)
	}
	after, err := prettyLength(result.Document)
	if err != nil {
		return fmt.Errorf("measuring reduced document: %w", err)
	}
	// The reduced rendering is measured with its trailing newline.
	cliutil.WriteSizeStats(stderr, before, after+1)
	return nil
}
