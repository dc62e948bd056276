package reducer

import (
	"fmt"

	"github.com/erraggy/oasreduce/parser"
)

// ReduceString reduces a document given as JSON text (YAML is accepted too)
// and returns the reduced document as JSON indented by two spaces, with keys in
// document order, '<', '>', '&' and non-ASCII text left unescaped, and a
// trailing newline.
func ReduceString(openapiJSON string, endpoints []string) (string, error) {
	doc, err := parser.New().ParseBytes([]byte(openapiJSON))
	if err != nil {
		return "", err
	}

	reduced, err := Reduce(doc.Root, endpoints)
	if err != nil {
		return "", err
	}

	out, err := parser.MarshalNodeJSONIndent(reduced, "", "  ")
	if err != nil {
		return "", fmt.Errorf("reducer: failed to encode result: %w", err)
	}
	return string(out) + "\n", nil
}
