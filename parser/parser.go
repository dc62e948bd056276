package parser

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/erraggy/oasreduce"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasreduce/internal/nodeutil"
	"github.com/erraggy/oasreduce/oaserrors"
)

// Parser handles OpenAPI document decoding
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "oasreduce/<version>" if not set
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: oasreduce.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// SourceFormat represents the format of the source OpenAPI document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// Document is a decoded OpenAPI document.
//
// Root is an order-preserving mapping node; keys keep the order they had in
// the source text. The tree is shared, so callers that intend to modify it
// should work on a copy obtained from [Document.Copy].
type Document struct {
	// Root is the top-level mapping of the document
	Root *yaml.Node
	// Version is the value of the "openapi" field, or of "swagger" for 2.0 documents
	Version string
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name of the method
	// and end in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source text (JSON or YAML)
	SourceFormat SourceFormat
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// NewDocument wraps an existing value tree in a Document.
// The root must be (or resolve to) a mapping.
func NewDocument(root *yaml.Node) (*Document, error) {
	resolved := nodeutil.Resolve(root)
	if !nodeutil.IsMapping(resolved) {
		return nil, &oaserrors.ParseError{Message: "document root must be an object"}
	}
	return &Document{
		Root:         resolved,
		Version:      documentVersion(resolved),
		SourceFormat: SourceFormatUnknown,
		Stats:        GetDocumentStats(resolved),
	}, nil
}

// IsOAS2 returns true if the document declares "swagger" instead of "openapi".
func (d *Document) IsOAS2() bool {
	return d != nil && !nodeutil.Has(d.Root, "openapi") && nodeutil.Has(d.Root, "swagger")
}

// Copy returns a deep copy of the document. Metadata is copied by value.
func (d *Document) Copy() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.Root = nodeutil.Clone(d.Root)
	return &c
}

func documentVersion(root *yaml.Node) string {
	for _, key := range []string{"openapi", "swagger"} {
		if v := nodeutil.Lookup(root, key); v != nil && v.Kind == yaml.ScalarNode {
			return v.Value
		}
	}
	return ""
}

// Parse parses an OpenAPI document from a file path or URL.
// For URLs (http:// or https://), the content is fetched and parsed.
// The path "-" reads from standard input.
func (p *Parser) Parse(specPath string) (*Document, error) {
	if specPath == "-" {
		doc, err := p.ParseReader(os.Stdin)
		if err != nil {
			return nil, err
		}
		doc.SourcePath = "stdin"
		return doc, nil
	}

	var data []byte
	var err error
	var format SourceFormat

	loadStart := time.Now()
	if isURL(specPath) {
		var contentType string
		data, contentType, err = p.fetchURL(specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(specPath, contentType)
	} else {
		data, err = os.ReadFile(specPath)
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read file: %w", err)
		}
		format = detectFormatFromPath(specPath)
	}
	loadTime := time.Since(loadStart)

	// Content-based detection overrides a misleading extension or Content-Type
	if contentFormat := detectFormatFromContent(data); contentFormat != SourceFormatUnknown &&
		format != contentFormat {
		format = contentFormat
	}

	doc, err := p.parseBytes(data, specPath, format)
	if err != nil {
		return nil, err
	}
	doc.LoadTime = loadTime

	p.log().Debug("parsed document",
		"source", specPath,
		"format", doc.SourceFormat,
		"size", FormatBytes(doc.SourceSize),
		"paths", doc.Stats.PathCount,
		"operations", doc.Stats.OperationCount,
	)
	return doc, nil
}

// ParseReader parses an OpenAPI document from an io.Reader
// Note: since there is no actual Document.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*Document, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	doc, err := p.parseNamed(data, "ParseReader")
	if err != nil {
		return nil, err
	}
	doc.LoadTime = loadTime
	return doc, nil
}

// ParseBytes parses an OpenAPI document from a byte slice
// Note: since there is no actual Document.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*Document, error) {
	return p.parseNamed(data, "ParseBytes")
}

func (p *Parser) parseNamed(data []byte, method string) (*Document, error) {
	format := detectFormatFromContent(data)
	name := method + ".yaml"
	if format == SourceFormatJSON {
		name = method + ".json"
	}
	return p.parseBytes(data, name, format)
}

// parseBytes decodes data into a Document. JSON input goes through the
// token decoder so number text and duplicate-key semantics match JSON;
// everything else goes through the YAML decoder.
func (p *Parser) parseBytes(data []byte, sourcePath string, format SourceFormat) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "empty document"}
	}

	var root *yaml.Node
	if format == SourceFormatJSON {
		n, err := decodeJSONNode(data)
		if err != nil {
			return nil, &oaserrors.ParseError{Path: sourcePath, Message: "invalid JSON", Cause: err}
		}
		root = n
	} else {
		var n yaml.Node
		if err := yaml.Unmarshal(data, &n); err != nil {
			return nil, &oaserrors.ParseError{Path: sourcePath, Message: "invalid YAML", Cause: err}
		}
		root = nodeutil.Resolve(&n)
		if format == SourceFormatUnknown {
			format = SourceFormatYAML
		}
	}

	if root == nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "empty document"}
	}
	if !nodeutil.IsMapping(root) {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "document root must be an object"}
	}

	doc := &Document{
		Root:         root,
		Version:      documentVersion(root),
		SourcePath:   sourcePath,
		SourceFormat: format,
		SourceSize:   int64(len(data)),
		Stats:        GetDocumentStats(root),
	}
	if doc.Version == "" {
		p.log().Warn("document declares neither openapi nor swagger version", "source", sourcePath)
	}
	return doc, nil
}
