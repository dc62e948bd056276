package parser

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasreduce/internal/httputil"
	"github.com/erraggy/oasreduce/internal/nodeutil"
)

// DocumentStats contains statistical information about an OAS document
type DocumentStats struct {
	PathCount      int // Number of paths defined
	OperationCount int // Total number of operations across all paths
	SchemaCount    int // Number of schemas (components.schemas, or definitions for 2.0)
	ComponentCount int // Number of named components across all component buckets
}

// GetDocumentStats returns statistics for a document root mapping
func GetDocumentStats(root *yaml.Node) DocumentStats {
	stats := DocumentStats{}

	paths := nodeutil.Lookup(root, "paths")
	stats.PathCount = nodeutil.Len(paths)
	stats.OperationCount = countOperations(paths)

	components := nodeutil.Lookup(root, "components")
	for _, bucket := range nodeutil.Pairs(components) {
		if !nodeutil.IsMapping(bucket.Value) {
			continue
		}
		n := nodeutil.Len(bucket.Value)
		stats.ComponentCount += n
		if bucket.Key == "schemas" {
			stats.SchemaCount = n
		}
	}
	if definitions := nodeutil.Lookup(root, "definitions"); nodeutil.IsMapping(definitions) && components == nil {
		stats.SchemaCount = nodeutil.Len(definitions)
		stats.ComponentCount += stats.SchemaCount
	}

	return stats
}

// countOperations counts method entries whose value is an object, across all path items
func countOperations(paths *yaml.Node) int {
	count := 0
	for _, path := range nodeutil.Pairs(paths) {
		for _, field := range nodeutil.Pairs(path.Value) {
			if httputil.IsOperationMethod(field.Key) && nodeutil.IsMapping(field.Value) {
				count++
			}
		}
	}
	return count
}
