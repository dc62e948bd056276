// Package oasreduce shrinks OpenAPI 3.x documents down to a chosen set of endpoints.
//
// Given a full document and a list of endpoint selectors such as "GET:/users" or
// "/users/{id}", oasreduce keeps only the selected operations and every component
// they transitively reference (schemas, parameters, request bodies, responses,
// headers, security schemes and so on). The result is a smaller, self-contained
// document that still resolves every local $ref it contains. This is useful when
// handing an API description to a tool or a language model that only needs a
// handful of operations out of a large specification.
//
// # Packages
//
//   - reducer: the reduction itself, endpoint selector parsing and endpoint listing
//   - parser: order-preserving JSON/YAML decoding and encoding of documents
//   - oaserrors: typed errors for errors.Is / errors.As handling
//
// # Quick Start
//
//	doc, err := parser.New().Parse("openapi.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := reducer.New().ReduceDocument(doc, []string{"POST:/blueprints"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := result.Document.MarshalOrderedJSONIndent("", "  ")
//	os.Stdout.Write(out)
//
// Or work on raw JSON text:
//
//	reduced, err := reducer.ReduceString(openapiJSON, []string{"GET:/blueprints", "/composes"})
//
// # Command Line
//
//	oasreduce --file openapi.json --endpoint GET:/blueprints --endpoint POST:/blueprints
//	oasreduce endpoints openapi.json
//	oasreduce mcp
package oasreduce
