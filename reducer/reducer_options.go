package reducer

import (
	"fmt"

	"github.com/erraggy/oasreduce/internal/options"
	"github.com/erraggy/oasreduce/oaserrors"
	"github.com/erraggy/oasreduce/parser"
)

// Option is a function that configures a reduce operation
type Option func(*reduceConfig) error

// reduceConfig holds configuration for a reduce operation
type reduceConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.Document

	endpoints          []string
	preserveExtensions bool
	userAgent          string
	logger             parser.Logger
}

// ReduceWithOptions reduces an OpenAPI document using functional options.
// This provides a flexible, extensible API that combines input source selection
// and configuration in a single function call.
//
// Example:
//
//	result, err := reducer.ReduceWithOptions(
//	    reducer.WithFilePath("openapi.json"),
//	    reducer.WithEndpoints("GET:/blueprints", "/compose"),
//	)
func ReduceWithOptions(opts ...Option) (*ReduceResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("reducer: invalid options: %w", err)
	}

	r := &Reducer{
		PreserveExtensions: cfg.preserveExtensions,
		UserAgent:          cfg.userAgent,
		Logger:             cfg.logger,
	}

	if cfg.filePath != nil {
		return r.ReduceFile(*cfg.filePath, cfg.endpoints)
	}
	return r.ReduceDocument(cfg.parsed, cfg.endpoints)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*reduceConfig, error) {
	cfg := &reduceConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"reducer: must specify an input source (use WithFilePath or WithParsed)",
		"reducer: must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}

	if len(cfg.endpoints) == 0 {
		return nil, &oaserrors.ConfigError{
			Option:  "endpoints",
			Message: "reducer: must specify at least one endpoint (use WithEndpoints)",
		}
	}

	return cfg, nil
}

// WithFilePath specifies a file path, URL, or "-" (stdin) as the input source
func WithFilePath(path string) Option {
	return func(cfg *reduceConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies an already parsed document as the input source
func WithParsed(doc parser.Document) Option {
	return func(cfg *reduceConfig) error {
		if doc.Root == nil {
			return fmt.Errorf("reducer: parsed document has no root")
		}
		cfg.parsed = &doc
		return nil
	}
}

// WithEndpoints appends endpoint selectors such as "GET:/v1/users" or "/v1/users".
// It may be given more than once.
func WithEndpoints(endpoints ...string) Option {
	return func(cfg *reduceConfig) error {
		cfg.endpoints = append(cfg.endpoints, endpoints...)
		return nil
	}
}

// WithPreserveExtensions carries root-level "x-" vendor extensions into the output
// Default: false
func WithPreserveExtensions(enabled bool) Option {
	return func(cfg *reduceConfig) error {
		cfg.preserveExtensions = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "oasreduce/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *reduceConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
// By default, no logging is performed.
func WithLogger(l parser.Logger) Option {
	return func(cfg *reduceConfig) error {
		cfg.logger = l
		return nil
	}
}
