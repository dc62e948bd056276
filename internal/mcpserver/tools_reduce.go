package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasreduce/internal/fileutil"
	"github.com/erraggy/oasreduce/oaserrors"
	"github.com/erraggy/oasreduce/parser"
	"github.com/erraggy/oasreduce/reducer"
)

type reduceInput struct {
	Spec               specInput `json:"spec"                          jsonschema:"The OpenAPI document to reduce"`
	Endpoints          []string  `json:"endpoints"                     jsonschema:"Selectors to keep, e.g. GET:/pets or /pets. Each entry may be a comma-separated list."`
	Format             string    `json:"format,omitempty"              jsonschema:"Output format: json or yaml. Defaults to the source format."`
	PreserveExtensions bool      `json:"preserve_extensions,omitempty" jsonschema:"Carry root-level x- vendor extensions into the reduced document"`
	Fallback           *bool     `json:"fallback,omitempty"            jsonschema:"Return the full document with a warning when reduction fails. Defaults to OASREDUCE_FALLBACK_ON_ERROR."`
	Output             string    `json:"output,omitempty"              jsonschema:"File path to write the reduced document. If omitted the document is returned inline."`
}

type reduceCounts struct {
	Paths      int `json:"paths"`
	Operations int `json:"operations"`
	Schemas    int `json:"schemas"`
	Components int `json:"components"`
}

type reduceOutput struct {
	Version   string       `json:"version,omitempty"`
	Format    string       `json:"format"`
	Before    reduceCounts `json:"before"`
	After     reduceCounts `json:"after"`
	Unmatched []string     `json:"unmatched,omitempty"`
	Fallback  bool         `json:"fallback,omitempty"`
	Warning   string       `json:"warning,omitempty"`
	WrittenTo string       `json:"written_to,omitempty"`
	Document  string       `json:"document,omitempty"`
}

func toCounts(s parser.DocumentStats) reduceCounts {
	return reduceCounts{
		Paths:      s.PathCount,
		Operations: s.OperationCount,
		Schemas:    s.SchemaCount,
		Components: s.ComponentCount,
	}
}

// expandEndpoints flattens entries that hold comma-separated selector lists.
func expandEndpoints(entries []string) []string {
	var endpoints []string
	for _, entry := range entries {
		endpoints = append(endpoints, reducer.SplitEndpointList(entry)...)
	}
	return endpoints
}

// outputFormat picks the requested format, falling back to the source format
// and then JSON.
func outputFormat(requested string, source parser.SourceFormat) (parser.SourceFormat, error) {
	if requested != "" {
		f := parser.ParseFormat(requested)
		if f == parser.SourceFormatUnknown {
			return "", &oaserrors.ConfigError{Option: "format", Value: requested, Message: "format must be json or yaml"}
		}
		return f, nil
	}
	if source == parser.SourceFormatYAML {
		return parser.SourceFormatYAML, nil
	}
	return parser.SourceFormatJSON, nil
}

func handleReduce(_ context.Context, _ *mcp.CallToolRequest, input reduceInput) (*mcp.CallToolResult, reduceOutput, error) {
	endpoints := expandEndpoints(input.Endpoints)
	if len(endpoints) == 0 {
		return errResult(&oaserrors.ConfigError{Option: "endpoints", Message: "at least one endpoint is required"}), reduceOutput{}, nil
	}

	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), reduceOutput{}, nil
	}

	format, err := outputFormat(input.Format, doc.SourceFormat)
	if err != nil {
		return errResult(err), reduceOutput{}, nil
	}

	fallback := cfg.FallbackOnError
	if input.Fallback != nil {
		fallback = *input.Fallback
	}

	r := reducer.New()
	r.PreserveExtensions = input.PreserveExtensions
	r.Logger = parser.NewSlogAdapter(slog.Default())

	output := reduceOutput{
		Version: doc.Version,
		Format:  string(format),
		Before:  toCounts(doc.Stats),
	}

	reduced := doc
	result, err := r.ReduceDocument(doc, endpoints)
	switch {
	case err == nil:
		reduced = result.Document
		output.Unmatched = makeSlice[string](len(result.Unmatched))
		for _, ep := range result.Unmatched {
			output.Unmatched = append(output.Unmatched, ep.String())
		}
	case fallback:
		slog.Warn("reduction failed, returning full document", "error", err)
		output.Fallback = true
		output.Warning = fmt.Sprintf("reduction failed, returning the full document: %s", sanitizeError(err))
	default:
		return errResult(err), reduceOutput{}, nil
	}
	output.After = toCounts(reduced.Stats)

	data, err := reduced.Marshal(format)
	if err != nil {
		return errResult(err), reduceOutput{}, nil
	}

	if input.Output != "" {
		if err := fileutil.WriteDocument(input.Output, data); err != nil {
			return errResult(err), reduceOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
