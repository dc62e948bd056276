package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPMethodConstants(t *testing.T) {
	assert.Equal(t, "get", MethodGet)
	assert.Equal(t, "put", MethodPut)
	assert.Equal(t, "post", MethodPost)
	assert.Equal(t, "delete", MethodDelete)
	assert.Equal(t, "options", MethodOptions)
	assert.Equal(t, "head", MethodHead)
	assert.Equal(t, "patch", MethodPatch)
	assert.Equal(t, "trace", MethodTrace)
	assert.Len(t, OperationMethods, 8)
}

func TestIsOperationMethod(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"get", true},
		{"GET", true},
		{"Patch", true},
		{"trace", true},
		{"query", false},
		{"summary", false},
		{"parameters", false},
		{"servers", false},
		{"$ref", false},
		{"x-get", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOperationMethod(tt.key))
		})
	}

	for _, m := range OperationMethods {
		assert.True(t, IsOperationMethod(m), m)
	}
}
