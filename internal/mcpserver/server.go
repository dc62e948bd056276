// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasreduce capabilities as MCP tools over stdio.
package mcpserver

import (
	"cmp"
	"context"
	"regexp"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasreduce"
	"github.com/erraggy/oasreduce/internal/maputil"
)

const serverInstructions = `oasreduce MCP server: reduces OpenAPI documents to selected endpoints and the components they reference.

Workflow: call list_endpoints to discover selectors (METHOD:/path), then call reduce with the selectors you need. A selector without a method ("/pets") keeps every operation of that path.

Configuration: All defaults are configurable via OASREDUCE_* environment variables set in your MCP client config.

Key settings:
- OASREDUCE_CACHE_FILE_TTL (default: 15m): cache TTL for local file documents
- OASREDUCE_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched documents
- OASREDUCE_CACHE_ENABLED (default: true): disable document caching entirely
- OASREDUCE_FALLBACK_ON_ERROR (default: true): return the full document with a warning when reduction fails
- OASREDUCE_LIST_LIMIT (default: 100): default result limit for list_endpoints
- OASREDUCE_MAX_INLINE_SIZE (default: 10MiB): maximum inline content size
- OASREDUCE_ALLOW_PRIVATE_IPS (default: false): allow fetching documents from private networks

Caching: Parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := newServer()
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasreduce", Version: oasreduce.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "reduce",
		Description: "Reduce an OpenAPI document to the selected endpoints. Keeps only the chosen operations, the non-operation fields of their path items, and every component reachable from them through $ref or security requirements. Selectors are METHOD:/path (e.g. GET:/pets) or a bare /path for all of its operations; each endpoints entry may also be a comma-separated list. Selectors that match nothing are reported in unmatched. When reduction fails and fallback is enabled, the full document is returned with a warning. Use output to write to a file instead of returning inline.",
	}, handleReduce)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_endpoints",
		Description: "List every operation in an OpenAPI document as a selector usable with reduce (METHOD:/path), with operationId, summary, and tags. Filter by method or path substring. Use group_by (method or tag) to get distribution counts instead of individual items. Use offset/limit to paginate; the default limit is configurable via OASREDUCE_LIST_LIMIT.",
	}, handleListEndpoints)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for _, key := range maputil.SortedKeys(counts) {
		groups = append(groups, groupCount{Key: key, Count: counts[key]})
	}
	// Keys are already ordered, so a stable sort keeps ties alphabetical.
	slices.SortStableFunc(groups, func(a, b groupCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return groups
}
