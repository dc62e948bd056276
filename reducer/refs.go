// refs.go implements component reference collection and transitive resolution.
// Only local references of the form "#/components/{type}/{name}" are followed;
// every other $ref (external files, URLs, other JSON pointers) is left alone.
package reducer

import (
	"cmp"
	"regexp"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasreduce/internal/maputil"
	"github.com/erraggy/oasreduce/internal/nodeutil"
)

var componentRefPattern = regexp.MustCompile(`^#/components/([^/]+)/(.+)$`)

// ComponentRef identifies a named entry of a components bucket,
// e.g. {Type: "schemas", Name: "User"}.
type ComponentRef struct {
	Type string
	Name string
}

// String returns the reference in $ref form.
func (r ComponentRef) String() string {
	return "#/components/" + r.Type + "/" + r.Name
}

// Compare orders references by type, then name.
func (r ComponentRef) Compare(other ComponentRef) int {
	if c := cmp.Compare(r.Type, other.Type); c != 0 {
		return c
	}
	return cmp.Compare(r.Name, other.Name)
}

// ParseComponentRef parses a local component reference string.
// The name is everything after the bucket segment and is not unescaped,
// so "#/components/schemas/a/b" yields the name "a/b".
func ParseComponentRef(ref string) (ComponentRef, bool) {
	m := componentRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return ComponentRef{}, false
	}
	return ComponentRef{Type: m[1], Name: m[2]}, true
}

// CollectRefs returns every local component reference found anywhere in the
// subtree rooted at node. A mapping whose "$ref" member is a string counts as a
// reference, and the walk still descends into all of its members.
func CollectRefs(node *yaml.Node) map[ComponentRef]bool {
	refs := make(map[ComponentRef]bool)
	collectRefs(node, refs)
	return refs
}

func collectRefs(node *yaml.Node, refs map[ComponentRef]bool) {
	node = nodeutil.Resolve(node)
	if node == nil {
		return
	}

	switch node.Kind {
	case yaml.MappingNode:
		for _, p := range nodeutil.Pairs(node) {
			if p.Key == "$ref" {
				if v := nodeutil.Resolve(p.Value); nodeutil.IsString(v) {
					if ref, ok := ParseComponentRef(v.Value); ok {
						refs[ref] = true
					}
				}
			}
			collectRefs(p.Value, refs)
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			collectRefs(item, refs)
		}
	}
}

// ResolveRefs computes the transitive closure of initial over the components
// mapping with a breadth-first walk. Each reference is visited once, so
// reference cycles terminate. References whose target bucket or entry does not
// exist are kept in the result but contribute nothing further.
func ResolveRefs(components *yaml.Node, initial map[ComponentRef]bool) map[ComponentRef]bool {
	visited := make(map[ComponentRef]bool, len(initial))
	queue := maputil.SortedKeysFunc(initial, ComponentRef.Compare)

	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]

		if visited[ref] {
			continue
		}
		visited[ref] = true

		bucket := nodeutil.Lookup(components, ref.Type)
		if !nodeutil.IsMapping(bucket) {
			continue
		}
		value := nodeutil.Lookup(bucket, ref.Name)
		if value == nil {
			continue
		}

		for _, next := range maputil.SortedKeysFunc(CollectRefs(value), ComponentRef.Compare) {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	return visited
}
