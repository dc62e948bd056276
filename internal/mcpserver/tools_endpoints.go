package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasreduce/internal/nodeutil"
	"github.com/erraggy/oasreduce/reducer"
)

type listEndpointsInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The OpenAPI document to inspect"`
	Method  string    `json:"method,omitempty"   jsonschema:"Only list operations with this HTTP method (case-insensitive)"`
	Path    string    `json:"path,omitempty"     jsonschema:"Only list paths containing this substring"`
	Tag     string    `json:"tag,omitempty"      jsonschema:"Only list operations carrying this tag"`
	GroupBy string    `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of individual items. Values: method, tag"`
	Offset  int       `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
	Limit   int       `json:"limit,omitempty"    jsonschema:"Maximum number of results to return (default set by OASREDUCE_LIST_LIMIT)"`
}

type endpointSummary struct {
	Selector    string   `json:"selector"`
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operation_id,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
}

type listEndpointsOutput struct {
	Total     int               `json:"total"`
	Matched   int               `json:"matched"`
	Returned  int               `json:"returned"`
	Endpoints []endpointSummary `json:"endpoints,omitempty"`
	Groups    []groupCount      `json:"groups,omitempty"`
}

var listGroupBy = []string{"method", "tag"}

func handleListEndpoints(_ context.Context, _ *mcp.CallToolRequest, input listEndpointsInput) (*mcp.CallToolResult, listEndpointsOutput, error) {
	groupBy := strings.ToLower(input.GroupBy)
	if groupBy != "" && !containsFold(listGroupBy, groupBy) {
		return errResult(fmt.Errorf("invalid group_by value %q; valid values: %s", input.GroupBy, strings.Join(listGroupBy, ", "))), listEndpointsOutput{}, nil
	}

	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}

	endpoints, err := reducer.ListEndpoints(doc.Root)
	if err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}

	paths := nodeutil.Lookup(doc.Root, "paths")
	all := make([]endpointSummary, 0, len(endpoints))
	for _, ep := range endpoints {
		all = append(all, summarizeEndpoint(ep, findOperation(paths, ep)))
	}

	var matched []endpointSummary
	for _, s := range all {
		if input.Method != "" && !strings.EqualFold(s.Method, input.Method) {
			continue
		}
		if input.Path != "" && !strings.Contains(s.Path, input.Path) {
			continue
		}
		if input.Tag != "" && !containsFold(s.Tags, input.Tag) {
			continue
		}
		matched = append(matched, s)
	}

	output := listEndpointsOutput{Total: len(all), Matched: len(matched)}

	if groupBy != "" {
		output.Groups = groupAndSort(matched, func(s endpointSummary) []string {
			if groupBy == "tag" {
				if len(s.Tags) == 0 {
					return []string{"(untagged)"}
				}
				return s.Tags
			}
			if s.Method == "" {
				return []string{"(all)"}
			}
			return []string{strings.ToUpper(s.Method)}
		})
		output.Returned = len(output.Groups)
		return nil, output, nil
	}

	output.Endpoints = paginate(matched, input.Offset, input.Limit)
	output.Returned = len(output.Endpoints)
	return nil, output, nil
}

// findOperation returns the operation ep selects. Path-only selectors stand
// for operations under non lower-case keys and have no single operation.
func findOperation(paths *yaml.Node, ep reducer.Endpoint) *yaml.Node {
	if ep.Method == "" {
		return nil
	}
	return nodeutil.Lookup(nodeutil.Lookup(paths, ep.Path), ep.Method)
}

func summarizeEndpoint(ep reducer.Endpoint, op *yaml.Node) endpointSummary {
	s := endpointSummary{
		Selector: ep.String(),
		Method:   ep.Method,
		Path:     ep.Path,
	}
	if n := nodeutil.Lookup(op, "operationId"); nodeutil.IsString(n) {
		s.OperationID = n.Value
	}
	if n := nodeutil.Lookup(op, "summary"); nodeutil.IsString(n) {
		s.Summary = n.Value
	}
	if n := nodeutil.Lookup(op, "deprecated"); n != nil && nodeutil.ScalarTag(n) == nodeutil.TagBool {
		s.Deprecated = n.Value == "true"
	}
	if tags := nodeutil.Lookup(op, "tags"); nodeutil.IsSequence(tags) {
		for _, t := range tags.Content {
			if t = nodeutil.Resolve(t); nodeutil.IsString(t) {
				s.Tags = append(s.Tags, t.Value)
			}
		}
	}
	return s
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
