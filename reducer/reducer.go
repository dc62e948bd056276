package reducer

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasreduce/internal/nodeutil"
	"github.com/erraggy/oasreduce/oaserrors"
	"github.com/erraggy/oasreduce/parser"
)

// ReduceResult contains the results of a document-level reduction
type ReduceResult struct {
	// Document is the reduced document
	Document *parser.Document
	// SourcePath is the path of the source document
	SourcePath string
	// SourceFormat is the format of the source document (JSON or YAML)
	SourceFormat parser.SourceFormat
	// Endpoints are the parsed selectors, in the order given
	Endpoints []Endpoint
	// Unmatched lists the selectors that selected no operation of the source document
	Unmatched []Endpoint
	// Before contains statistics of the source document
	Before parser.DocumentStats
	// After contains statistics of the reduced document
	After parser.DocumentStats
}

// HasUnmatched returns true if any selector matched no operation
func (r *ReduceResult) HasUnmatched() bool {
	return len(r.Unmatched) > 0
}

// Reducer reduces OpenAPI documents to a selected set of endpoints and the
// components they transitively reference.
//
// A Reducer holds configuration only; it is safe for concurrent use and
// never modifies the documents passed to it.
type Reducer struct {
	// PreserveExtensions carries root-level "x-" vendor extensions into the
	// reduced document, after "components". Default: false
	PreserveExtensions bool
	// UserAgent is the User-Agent string used when fetching URLs.
	// Defaults to "oasreduce/<version>" if not set.
	UserAgent string
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// New creates a new Reducer instance with default settings
func New() *Reducer {
	return &Reducer{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (r *Reducer) log() parser.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return parser.NopLogger{}
}

// Reduce is a convenience function that reduces doc with a default Reducer.
func Reduce(doc *yaml.Node, endpoints []string) (*yaml.Node, error) {
	return New().Reduce(doc, endpoints)
}

// Reduce returns a new document that keeps only the operations selected by
// endpoints, the non-operation members of their path items, and every
// component reachable from them through local "#/components/..." references
// or security requirements.
//
// The input is never modified and shares no nodes with the result.
// Selectors that match nothing are ignored. An error is returned when the
// root is not an object or "paths" is missing or not an object.
func (r *Reducer) Reduce(doc *yaml.Node, endpoints []string) (*yaml.Node, error) {
	out, _, err := r.reduce(doc, ParseEndpoints(endpoints))
	return out, err
}

// ReduceFile parses the document at specPath (file path, URL, or "-" for
// stdin) and reduces it.
func (r *Reducer) ReduceFile(specPath string, endpoints []string) (*ReduceResult, error) {
	p := parser.New()
	if r.UserAgent != "" {
		p.UserAgent = r.UserAgent
	}
	p.Logger = r.Logger

	doc, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("reducer: failed to parse specification: %w", err)
	}
	return r.ReduceDocument(doc, endpoints)
}

// ReduceDocument reduces an already parsed document and reports which
// selectors matched nothing along with before/after statistics.
func (r *Reducer) ReduceDocument(doc *parser.Document, endpoints []string) (*ReduceResult, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "reducer: document cannot be nil"}
	}

	parsed := ParseEndpoints(endpoints)
	root, unmatched, err := r.reduce(doc.Root, parsed)
	if err != nil {
		return nil, err
	}

	reduced, err := parser.NewDocument(root)
	if err != nil {
		return nil, fmt.Errorf("reducer: %w", err)
	}
	reduced.SourcePath = doc.SourcePath
	reduced.SourceFormat = doc.SourceFormat

	for _, ep := range unmatched {
		r.log().Warn("endpoint matched no operation", "endpoint", ep.String())
	}

	return &ReduceResult{
		Document:     reduced,
		SourcePath:   doc.SourcePath,
		SourceFormat: doc.SourceFormat,
		Endpoints:    parsed,
		Unmatched:    unmatched,
		Before:       doc.Stats,
		After:        reduced.Stats,
	}, nil
}

// reduce runs the selection, reference closure and assembly. It returns the
// new root and the endpoints that matched no operation.
func (r *Reducer) reduce(doc *yaml.Node, endpoints []Endpoint) (*yaml.Node, []Endpoint, error) {
	root, paths, err := validateDocument(doc)
	if err != nil {
		return nil, nil, err
	}

	if nodeutil.Has(root, "swagger") && !nodeutil.Has(root, "openapi") {
		r.log().Warn("document looks like Swagger 2.0; only #/components references are followed")
	}

	reducedPaths := nodeutil.NewMapping()
	refs := make(map[ComponentRef]bool)
	schemes := make(map[string]bool)
	matched := make([]bool, len(endpoints))

	for _, p := range nodeutil.Pairs(paths) {
		item := nodeutil.Resolve(p.Value)
		if !nodeutil.IsMapping(item) {
			continue
		}

		selected := selectMethods(p.Key, item, endpoints, matched)
		if len(selected) == 0 {
			continue
		}

		newItem, ops := extractPathItem(item, selected)
		if nodeutil.Len(newItem) == 0 {
			continue
		}

		for ref := range CollectRefs(newItem) {
			refs[ref] = true
		}
		for _, op := range ops {
			collectSecuritySchemes(op, schemes)
		}
		nodeutil.SetPair(reducedPaths, p.KeyNode, newItem)
	}

	collectSecuritySchemes(root, schemes)
	for name := range schemes {
		refs[ComponentRef{Type: securitySchemesBucket, Name: name}] = true
	}

	components := nodeutil.Lookup(root, "components")
	needed := ResolveRefs(components, refs)
	out := assemble(root, reducedPaths, components, needed, r.PreserveExtensions)

	var unmatched []Endpoint
	for i, ep := range endpoints {
		if !matched[i] {
			unmatched = append(unmatched, ep)
		}
	}

	r.log().Debug("reduced document",
		"endpoints", len(endpoints),
		"paths", nodeutil.Len(reducedPaths),
		"components", len(needed),
		"unmatched", len(unmatched),
	)
	return out, unmatched, nil
}

// validateDocument checks the shape the reducer depends on and returns the
// root and paths mappings.
func validateDocument(doc *yaml.Node) (root, paths *yaml.Node, err error) {
	root = nodeutil.Resolve(doc)
	if !nodeutil.IsMapping(root) {
		return nil, nil, &oaserrors.ValidationError{
			Path:    "$",
			Value:   kindName(root),
			Message: "document root must be an object",
		}
	}
	if !nodeutil.Has(root, "paths") {
		return nil, nil, &oaserrors.ValidationError{
			Path:    "paths",
			Message: "document has no paths object",
		}
	}
	paths = nodeutil.Lookup(root, "paths")
	if !nodeutil.IsMapping(paths) {
		return nil, nil, &oaserrors.ValidationError{
			Path:    "paths",
			Value:   kindName(paths),
			Message: "paths must be an object",
		}
	}
	return root, paths, nil
}

// kindName names the JSON kind of n for error messages.
func kindName(n *yaml.Node) string {
	n = nodeutil.Resolve(n)
	if n == nil {
		return "null"
	}
	switch n.Kind {
	case yaml.MappingNode:
		return "object"
	case yaml.SequenceNode:
		return "array"
	}
	switch nodeutil.ScalarTag(n) {
	case nodeutil.TagStr:
		return "string"
	case nodeutil.TagInt, nodeutil.TagFloat:
		return "number"
	case nodeutil.TagBool:
		return "boolean"
	case nodeutil.TagNull:
		return "null"
	default:
		return "scalar"
	}
}
