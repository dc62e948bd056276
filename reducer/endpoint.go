package reducer

import (
	"strings"
)

// Endpoint selects operations on a single path template.
// An empty Method selects every operation defined on the path.
type Endpoint struct {
	// Method is the lower-cased HTTP method, or empty for all methods
	Method string
	// Path is the path template, compared verbatim against the keys of "paths"
	Path string
}

// String returns the selector form of the endpoint: "METHOD:/path", or just
// the path when no method is set.
func (e Endpoint) String() string {
	if e.Method == "" {
		return e.Path
	}
	return strings.ToUpper(e.Method) + ":" + e.Path
}

// ParseEndpoint parses a selector such as "GET:/v1/users" or "/v1/users".
//
// The selector is split at the first colon. The part before it is the method
// (trimmed and lower-cased) and the part after it the path (trimmed). Without a
// colon the whole trimmed string is the path. Paths are not validated, so a
// path that itself contains a colon must be given with a method prefix:
// "/a:b" parses as method "/a" and path "b", while "GET:/a:b" parses as
// method "get" and path "/a:b".
func ParseEndpoint(spec string) Endpoint {
	method, path, found := strings.Cut(spec, ":")
	if !found {
		return Endpoint{Path: strings.TrimSpace(spec)}
	}
	return Endpoint{
		Method: strings.ToLower(strings.TrimSpace(method)),
		Path:   strings.TrimSpace(path),
	}
}

// ParseEndpoints parses every selector in specs, keeping their order.
func ParseEndpoints(specs []string) []Endpoint {
	endpoints := make([]Endpoint, 0, len(specs))
	for _, spec := range specs {
		endpoints = append(endpoints, ParseEndpoint(spec))
	}
	return endpoints
}

// SplitEndpointList splits a comma-separated selector list such as
// "GET:/blueprints, POST:/compose" into trimmed, non-empty selectors.
func SplitEndpointList(list string) []string {
	parts := strings.Split(list, ",")
	specs := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			specs = append(specs, part)
		}
	}
	return specs
}
