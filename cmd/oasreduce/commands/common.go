// Package commands provides CLI command handlers for oasreduce.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/erraggy/oasreduce"
	"github.com/erraggy/oasreduce/internal/cliutil"
	"github.com/erraggy/oasreduce/internal/fileutil"
	"github.com/erraggy/oasreduce/parser"
	"github.com/erraggy/oasreduce/reducer"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// endpointList is a repeatable flag collecting endpoint selectors. Each
// value may hold a comma-separated list.
type endpointList []string

func (e *endpointList) String() string {
	if e == nil {
		return ""
	}
	return strings.Join(*e, ",")
}

func (e *endpointList) Set(value string) error {
	specs := reducer.SplitEndpointList(value)
	if len(specs) == 0 {
		return fmt.Errorf("empty endpoint selector")
	}
	*e = append(*e, specs...)
	return nil
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// OutputSpecHeader writes the common document header to w.
func OutputSpecHeader(w io.Writer, specPath, version string) {
	cliutil.Writef(w, "oasreduce version: %s\n", oasreduce.Version())
	cliutil.Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	cliutil.Writef(w, "OAS Version: %s\n", version)
}

// OutputSpecStats writes the common document statistics to w.
func OutputSpecStats(w io.Writer, sourceSize int64, stats parser.DocumentStats) {
	cliutil.Writef(w, "Source Size: %s\n", parser.FormatBytes(sourceSize))
	cliutil.Writef(w, "Paths: %s\n", cliutil.FormatCount(stats.PathCount))
	cliutil.Writef(w, "Operations: %s\n", cliutil.FormatCount(stats.OperationCount))
	cliutil.Writef(w, "Schemas: %s\n", cliutil.FormatCount(stats.SchemaCount))
}

// ValidateOutputPath checks that writing to outputPath will not clobber the
// input document or follow a symlink.
func ValidateOutputPath(outputPath, inputPath string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("commands: invalid output path: %w", err)
	}

	if inputPath != "" && inputPath != StdinFilePath && !strings.Contains(inputPath, "://") {
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("commands: invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("commands: output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	return RejectSymlinkOutput(filepath.Clean(outputPath))
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// writeOutput writes data to outputPath, or to stdout when outputPath is empty.
func writeOutput(stdout io.Writer, outputPath string, data []byte) error {
	if outputPath == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("commands: writing document to stdout: %w", err)
		}
		return nil
	}
	return fileutil.WriteDocument(outputPath, data)
}

// prettyLength returns the length in characters of the two-space indented
// JSON rendering of a document, the measure used by the stats block.
func prettyLength(doc *parser.Document) (int, error) {
	data, err := doc.MarshalOrderedJSONIndent("", "  ")
	if err != nil {
		return 0, err
	}
	return utf8.RuneCount(data), nil
}
