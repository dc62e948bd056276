package reducer

import (
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasreduce/internal/httputil"
	"github.com/erraggy/oasreduce/internal/nodeutil"
)

// ListEndpoints returns a selector for every operation defined in doc, in
// document order. Each selector, once rendered with Endpoint.String and read
// back with ParseEndpoint, selects its operation.
//
// Method selectors are lower-case and only match lower-case keys, so an
// operation under a key such as "GET" is listed as the path-only selector
// instead, once per path.
func ListEndpoints(doc *yaml.Node) ([]Endpoint, error) {
	_, paths, err := validateDocument(doc)
	if err != nil {
		return nil, err
	}

	var endpoints []Endpoint
	for _, p := range nodeutil.Pairs(paths) {
		wholePath := false
		for _, field := range nodeutil.Pairs(p.Value) {
			if !httputil.IsOperationMethod(field.Key) || !nodeutil.IsMapping(field.Value) {
				continue
			}
			if field.Key == strings.ToLower(field.Key) {
				endpoints = append(endpoints, Endpoint{Method: field.Key, Path: p.Key})
				continue
			}
			if !wholePath {
				wholePath = true
				endpoints = append(endpoints, Endpoint{Path: p.Key})
			}
		}
	}
	return endpoints, nil
}
