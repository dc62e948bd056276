// Package httputil provides HTTP method constants and predicates for OpenAPI path items.
package httputil

import "strings"

// HTTP Method Constants, spelled as OpenAPI path item keys.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// OperationMethods lists the path item keys that hold operations, in the
// order the OpenAPI specification declares them.
var OperationMethods = []string{
	MethodGet,
	MethodPut,
	MethodPost,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodPatch,
	MethodTrace,
}

var operationMethodSet = map[string]bool{
	MethodGet:     true,
	MethodPut:     true,
	MethodPost:    true,
	MethodDelete:  true,
	MethodOptions: true,
	MethodHead:    true,
	MethodPatch:   true,
	MethodTrace:   true,
}

// IsOperationMethod reports whether a path item key names an HTTP method.
// The comparison is case-insensitive, so "GET" and "Get" count as methods too.
func IsOperationMethod(key string) bool {
	return operationMethodSet[strings.ToLower(key)]
}
