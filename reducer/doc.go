// Package reducer shrinks an OpenAPI 3.x document to a chosen set of endpoints.
//
// Given a document and a list of endpoint selectors, the reducer produces a
// new, self-contained document holding only the selected operations plus
// every component they reach, directly or transitively, through local
// "#/components/{type}/{name}" references and security requirements.
//
// # Selectors
//
// A selector is either "METHOD:/path" or "/path". The method is matched
// case-insensitively; a bare path selects every operation on that path. Paths
// are compared verbatim against the keys of the "paths" object, so use the
// path template exactly as the document spells it ("/users/{id}").
//
// # Quick Start
//
//	result, err := reducer.ReduceWithOptions(
//		reducer.WithFilePath("openapi.json"),
//		reducer.WithEndpoints("GET:/blueprints", "POST:/compose"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := result.Document.MarshalOrderedJSONIndent("", "  ")
//
// Work directly on a value tree:
//
//	reduced, err := reducer.Reduce(doc.Root, []string{"/users"})
//
// Or on JSON text:
//
//	out, err := reducer.ReduceString(specJSON, []string{"GET:/users"})
//
// # Output
//
// The reduced document carries "openapi", "info", "servers", "tags",
// "externalDocs" and "security" when present, then "paths" (always present),
// then "components" when at least one component survives. Keys keep the order
// of the source document. Root "x-" extensions are dropped unless
// WithPreserveExtensions is set.
//
// # Limitations
//
// References are followed only when they have the local components form;
// external references are kept verbatim and their targets are not loaded.
// Schemas are not renamed or deduplicated. The document is not validated
// beyond the shape the reduction needs.
package reducer
