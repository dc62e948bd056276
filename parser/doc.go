// Package parser decodes OpenAPI documents into an order-preserving value tree.
//
// Documents are read from local files, URLs (http:// or https://), standard
// input, readers or byte slices, in JSON or YAML. The result is a [Document]
// whose Root is a *yaml.Node mapping: objects keep the key order of the source
// text, numbers keep their original spelling, and no typed OpenAPI model is
// imposed, so unknown fields and vendor extensions survive unchanged.
//
// # Quick Start
//
// Parse a file using functional options:
//
//	doc, err := parser.ParseWithOptions(
//		parser.WithFilePath("openapi.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s: %d paths, %d operations\n",
//		doc.Version, doc.Stats.PathCount, doc.Stats.OperationCount)
//
// Or create a reusable Parser instance:
//
//	p := parser.New()
//	doc1, _ := p.Parse("api1.yaml")
//	doc2, _ := p.Parse("https://example.com/openapi.json")
//
// # Output
//
// [Document.MarshalOrderedJSONIndent] and [Document.MarshalOrderedYAML] write
// the tree back out in source order. JSON output does not escape '<', '>' or
// '&' and writes non-ASCII text as-is.
//
// # Errors
//
// Empty input, syntax errors and a root that is not an object are reported as
// *oaserrors.ParseError, which matches oaserrors.ErrParse with errors.Is.
//
// # Logging
//
// A [Logger] can be supplied with [WithLogger]; [NewSlogAdapter] wraps a
// *slog.Logger. Logging is disabled by default.
package parser
