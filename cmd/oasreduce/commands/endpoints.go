package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasreduce/internal/cliutil"
	"github.com/erraggy/oasreduce/oaserrors"
	"github.com/erraggy/oasreduce/parser"
	"github.com/erraggy/oasreduce/reducer"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return &oaserrors.ConfigError{
			Option:  "format",
			Value:   format,
			Message: fmt.Sprintf("valid formats: %s, %s, %s", FormatText, FormatJSON, FormatYAML),
		}
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
		out = append(out, '\n')
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	_, err = w.Write(out)
	return err
}

// EndpointsFlags contains flags for the endpoints command
type EndpointsFlags struct {
	Method string
	Format string
	Quiet  bool
}

// SetupEndpointsFlags creates and configures a FlagSet for the endpoints command.
// Returns the FlagSet and an EndpointsFlags struct with bound flag variables.
func SetupEndpointsFlags() (*flag.FlagSet, *EndpointsFlags) {
	fs := flag.NewFlagSet("endpoints", flag.ContinueOnError)
	flags := &EndpointsFlags{}

	fs.StringVar(&flags.Method, "method", "", "only list operations with this HTTP method")
	fs.StringVar(&flags.Method, "m", "", "only list operations with this HTTP method")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the selectors, no header")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the selectors, no header")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasreduce endpoints [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "List every operation of an OpenAPI document as a selector accepted by reduce.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasreduce endpoints openapi.json\n")
		cliutil.Writef(fs.Output(), "  oasreduce endpoints -m get --format json openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasreduce endpoints -q openapi.json | grep compose\n")
	}

	return fs, flags
}

// HandleEndpoints executes the endpoints command
func HandleEndpoints(args []string) error {
	return runEndpoints(args, os.Stdout, os.Stderr)
}

func runEndpoints(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupEndpointsFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &oaserrors.ConfigError{Option: "flags", Cause: err}
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return &oaserrors.ConfigError{Option: "file", Message: "endpoints command requires exactly one file path, URL, or '-' for stdin"}
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	specPath := fs.Arg(0)
	doc, err := parser.ParseWithOptions(parser.WithFilePath(specPath))
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	endpoints, err := reducer.ListEndpoints(doc.Root)
	if err != nil {
		return fmt.Errorf("listing endpoints: %w", err)
	}

	selectors := make([]string, 0, len(endpoints))
	for _, ep := range endpoints {
		if flags.Method != "" && !strings.EqualFold(ep.Method, flags.Method) {
			continue
		}
		selectors = append(selectors, ep.String())
	}

	if !flags.Quiet {
		OutputSpecHeader(stderr, specPath, doc.Version)
		OutputSpecStats(stderr, doc.SourceSize, doc.Stats)
		cliutil.Writef(stderr, "\n")
	}

	if flags.Format != FormatText {
		return OutputStructured(stdout, selectors, flags.Format)
	}
	for _, s := range selectors {
		cliutil.Writef(stdout, "%s\n", s)
	}
	return nil
}
