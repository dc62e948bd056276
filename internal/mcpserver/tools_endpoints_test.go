package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listEndpoints(t *testing.T, input listEndpointsInput) listEndpointsOutput {
	t.Helper()
	specCache.reset()
	result, output, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result, "unexpected tool error")
	return output
}

func selectors(summaries []endpointSummary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.Selector)
	}
	return out
}

func TestListEndpointsTool_All(t *testing.T) {
	output := listEndpoints(t, listEndpointsInput{Spec: specInput{Content: testSpecYAML}})

	assert.Equal(t, 3, output.Total)
	assert.Equal(t, 3, output.Matched)
	assert.Equal(t, 3, output.Returned)
	assert.Equal(t, []string{"GET:/pets", "POST:/pets", "GET:/store/orders"}, selectors(output.Endpoints))

	post := output.Endpoints[1]
	assert.Equal(t, "post", post.Method)
	assert.Equal(t, "/pets", post.Path)
	assert.Equal(t, "createPet", post.OperationID)
	assert.Equal(t, "Create a pet", post.Summary)
	assert.Equal(t, []string{"pets"}, post.Tags)
	assert.True(t, post.Deprecated)
	assert.False(t, output.Endpoints[0].Deprecated)
}

func TestListEndpointsTool_Filters(t *testing.T) {
	tests := []struct {
		name  string
		input listEndpointsInput
		want  []string
	}{
		{"method", listEndpointsInput{Method: "GET"}, []string{"GET:/pets", "GET:/store/orders"}},
		{"path substring", listEndpointsInput{Path: "/store"}, []string{"GET:/store/orders"}},
		{"tag", listEndpointsInput{Tag: "PETS"}, []string{"GET:/pets", "POST:/pets"}},
		{"combined", listEndpointsInput{Method: "post", Tag: "pets"}, []string{"POST:/pets"}},
		{"no match", listEndpointsInput{Method: "delete"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Spec = specInput{Content: testSpecYAML}
			output := listEndpoints(t, tt.input)
			assert.Equal(t, 3, output.Total)
			assert.Equal(t, len(tt.want), output.Matched)
			assert.Equal(t, tt.want, selectors(output.Endpoints))
		})
	}
}

func TestListEndpointsTool_Pagination(t *testing.T) {
	output := listEndpoints(t, listEndpointsInput{Spec: specInput{Content: testSpecYAML}, Offset: 1, Limit: 1})

	assert.Equal(t, 3, output.Matched)
	assert.Equal(t, 1, output.Returned)
	assert.Equal(t, []string{"POST:/pets"}, selectors(output.Endpoints))
}

func TestListEndpointsTool_GroupBy(t *testing.T) {
	byMethod := listEndpoints(t, listEndpointsInput{Spec: specInput{Content: testSpecYAML}, GroupBy: "method"})
	assert.Empty(t, byMethod.Endpoints)
	assert.Equal(t, []groupCount{{Key: "GET", Count: 2}, {Key: "POST", Count: 1}}, byMethod.Groups)
	assert.Equal(t, 2, byMethod.Returned)

	byTag := listEndpoints(t, listEndpointsInput{Spec: specInput{Content: testSpecYAML}, GroupBy: "Tag"})
	assert.Equal(t, []groupCount{{Key: "pets", Count: 2}, {Key: "store", Count: 1}}, byTag.Groups)
}

func TestListEndpointsTool_UntaggedGroup(t *testing.T) {
	content := `{"openapi": "3.0.0", "paths": {"/a": {"get": {}, "put": {"tags": ["x"]}}}}`
	output := listEndpoints(t, listEndpointsInput{Spec: specInput{Content: content}, GroupBy: "tag"})
	assert.Equal(t, []groupCount{{Key: "(untagged)", Count: 1}, {Key: "x", Count: 1}}, output.Groups)
}

func TestListEndpointsTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input listEndpointsInput
		want  string
	}{
		{"bad group_by", listEndpointsInput{Spec: specInput{Content: testSpecYAML}, GroupBy: "status"}, "invalid group_by value"},
		{"no spec", listEndpointsInput{}, "exactly one of file, url, or content must be provided"},
		{"no paths", listEndpointsInput{Spec: specInput{Content: `{"openapi": "3.0.0"}`}}, "document has no paths object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specCache.reset()
			result, _, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
			text, ok := result.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, tt.want)
		})
	}
}

func TestListEndpointsTool_NonLowerCaseMethod(t *testing.T) {
	content := `{"openapi": "3.0.0", "paths": {"/x": {"GET": {"operationId": "getX"}, "post": {"operationId": "postX"}}}}`

	output := listEndpoints(t, listEndpointsInput{Spec: specInput{Content: content}})
	assert.Equal(t, []string{"/x", "POST:/x"}, selectors(output.Endpoints))
	assert.Empty(t, output.Endpoints[0].Method)
	assert.Empty(t, output.Endpoints[0].OperationID)
	assert.Equal(t, "postX", output.Endpoints[1].OperationID)

	grouped := listEndpoints(t, listEndpointsInput{Spec: specInput{Content: content}, GroupBy: "method"})
	assert.Equal(t, []groupCount{{Key: "(all)", Count: 1}, {Key: "POST", Count: 1}}, grouped.Groups)
}
