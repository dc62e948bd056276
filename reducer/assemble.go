package reducer

import (
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasreduce/internal/nodeutil"
)

// carriedRootKeys are the root members copied verbatim ahead of "paths".
var carriedRootKeys = []string{"openapi", "info", "servers", "tags", "externalDocs", "security"}

// assemble builds the reduced document root: the carried root members in
// fixed order, the reduced paths, the pruned components when any survive,
// and, when preserveExtensions is set, the root "x-" extensions.
func assemble(root, paths, components *yaml.Node, needed map[ComponentRef]bool, preserveExtensions bool) *yaml.Node {
	out := nodeutil.NewMapping()

	for _, key := range carriedRootKeys {
		if p, ok := findPair(root, key); ok {
			nodeutil.SetPair(out, p.KeyNode, nodeutil.Clone(p.Value))
		}
	}

	if p, ok := findPair(root, "paths"); ok {
		nodeutil.SetPair(out, p.KeyNode, paths)
	} else {
		nodeutil.Set(out, "paths", paths)
	}

	if pruned := pruneComponents(components, needed); nodeutil.Len(pruned) > 0 {
		if p, ok := findPair(root, "components"); ok {
			nodeutil.SetPair(out, p.KeyNode, pruned)
		} else {
			nodeutil.Set(out, "components", pruned)
		}
	}

	if preserveExtensions {
		for _, p := range nodeutil.Pairs(root) {
			if strings.HasPrefix(p.Key, "x-") {
				nodeutil.SetPair(out, p.KeyNode, nodeutil.Clone(p.Value))
			}
		}
	}

	return out
}

// pruneComponents copies the entries of each bucket named in needed, keeping
// bucket and entry order. Buckets that are not objects or end up empty are dropped.
func pruneComponents(components *yaml.Node, needed map[ComponentRef]bool) *yaml.Node {
	pruned := nodeutil.NewMapping()
	for _, bucket := range nodeutil.Pairs(components) {
		if !nodeutil.IsMapping(bucket.Value) {
			continue
		}
		kept := nodeutil.NewMapping()
		for _, entry := range nodeutil.Pairs(bucket.Value) {
			if needed[ComponentRef{Type: bucket.Key, Name: entry.Key}] {
				nodeutil.SetPair(kept, entry.KeyNode, nodeutil.Clone(entry.Value))
			}
		}
		if nodeutil.Len(kept) > 0 {
			nodeutil.SetPair(pruned, bucket.KeyNode, kept)
		}
	}
	return pruned
}

func findPair(m *yaml.Node, key string) (nodeutil.Pair, bool) {
	for _, p := range nodeutil.Pairs(m) {
		if p.Key == key {
			return p, true
		}
	}
	return nodeutil.Pair{}, false
}
