package reducer

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasreduce/internal/httputil"
	"github.com/erraggy/oasreduce/internal/nodeutil"
)

// selectMethods returns the method keys selected on the path item stored under
// template. A path-only endpoint selects every method-shaped key of the item;
// a method endpoint selects its method whether or not the item defines it.
// matched[i] is set when endpoints[i] selects at least one operation the item
// actually has.
func selectMethods(template string, item *yaml.Node, endpoints []Endpoint, matched []bool) map[string]bool {
	var selected map[string]bool
	for i, ep := range endpoints {
		if ep.Path != template {
			continue
		}
		if selected == nil {
			selected = make(map[string]bool)
		}

		if ep.Method == "" {
			for _, field := range nodeutil.Pairs(item) {
				if httputil.IsOperationMethod(field.Key) {
					selected[field.Key] = true
					if nodeutil.IsMapping(field.Value) {
						matched[i] = true
					}
				}
			}
			continue
		}

		selected[ep.Method] = true
		if httputil.IsOperationMethod(ep.Method) && nodeutil.IsMapping(nodeutil.Lookup(item, ep.Method)) {
			matched[i] = true
		}
	}
	return selected
}

// extractPathItem builds a copy of item holding every non-method field and
// the selected operations, in the item's own key order. Selected methods the
// item lacks, or whose value is not an object, are skipped. The returned
// operations are the copies placed in the new item.
func extractPathItem(item *yaml.Node, selected map[string]bool) (*yaml.Node, []*yaml.Node) {
	out := nodeutil.NewMapping()
	var ops []*yaml.Node

	for _, field := range nodeutil.Pairs(item) {
		if !httputil.IsOperationMethod(field.Key) {
			nodeutil.SetPair(out, field.KeyNode, nodeutil.Clone(field.Value))
			continue
		}
		if !selected[field.Key] {
			continue
		}
		op := nodeutil.Resolve(field.Value)
		if !nodeutil.IsMapping(op) {
			continue
		}
		opCopy := nodeutil.Clone(op)
		nodeutil.SetPair(out, field.KeyNode, opCopy)
		ops = append(ops, opCopy)
	}

	return out, ops
}
