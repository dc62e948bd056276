// Package nodeutil provides helpers for treating a yaml.Node tree as a generic,
// order-preserving JSON value: objects are MappingNodes, arrays are SequenceNodes,
// and strings, numbers, booleans and null are ScalarNodes told apart by tag.
package nodeutil

import (
	"regexp"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Short tags for the scalar kinds of the JSON data model.
const (
	TagStr   = "!!str"
	TagInt   = "!!int"
	TagFloat = "!!float"
	TagBool  = "!!bool"
	TagNull  = "!!null"
	TagMap   = "!!map"
	TagSeq   = "!!seq"

	longTagPrefix = "tag:yaml.org,2002:"
)

var (
	intPattern   = regexp.MustCompile(`^[-+]?(0|[1-9][0-9_]*|0x[0-9a-fA-F_]+|0o[0-7_]+|0b[01_]+)$`)
	floatPattern = regexp.MustCompile(`^[-+]?(\.[0-9]+|[0-9][0-9_]*(\.[0-9_]*)?)([eE][-+]?[0-9]+)?$`)
)

// Pair is a single key/value entry of a mapping node.
type Pair struct {
	Key     string
	KeyNode *yaml.Node
	Value   *yaml.Node
}

// Resolve unwraps document and alias nodes until it reaches a content node.
// It returns nil for nil input or an empty document.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// IsMapping reports whether n resolves to a mapping (JSON object).
func IsMapping(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether n resolves to a sequence (JSON array).
func IsSequence(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

// IsString reports whether n resolves to a string scalar.
func IsString(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.ScalarNode && ScalarTag(n) == TagStr
}

// ScalarTag returns the short tag of a scalar node, resolving implicit tags
// of plain scalars the way a YAML 1.2 core schema decoder would.
func ScalarTag(n *yaml.Node) string {
	tag := n.Tag
	if strings.HasPrefix(tag, longTagPrefix) {
		tag = "!!" + strings.TrimPrefix(tag, longTagPrefix)
	}
	if tag != "" && tag != "!" {
		return tag
	}
	if tag == "!" || n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return TagStr
	}
	return resolvePlain(n.Value)
}

func resolvePlain(v string) string {
	switch v {
	case "", "~", "null", "Null", "NULL":
		return TagNull
	case "true", "True", "TRUE", "false", "False", "FALSE":
		return TagBool
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF", "-.inf", "-.Inf", "-.INF", ".nan", ".NaN", ".NAN":
		return TagFloat
	}
	if intPattern.MatchString(v) {
		return TagInt
	}
	if floatPattern.MatchString(v) {
		return TagFloat
	}
	return TagStr
}

// Pairs returns the entries of a mapping node in source order.
// Non-mapping input yields nil.
func Pairs(m *yaml.Node) []Pair {
	m = Resolve(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]Pair, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		keyNode := m.Content[i]
		pairs = append(pairs, Pair{Key: keyNode.Value, KeyNode: keyNode, Value: m.Content[i+1]})
	}
	return pairs
}

// Lookup returns the resolved value stored under key in mapping m, or nil.
func Lookup(m *yaml.Node, key string) *yaml.Node {
	m = Resolve(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return Resolve(m.Content[i+1])
		}
	}
	return nil
}

// Has reports whether mapping m contains key, whatever its value.
func Has(m *yaml.Node, key string) bool {
	m = Resolve(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Len returns the number of entries in a mapping or items in a sequence.
func Len(n *yaml.Node) int {
	n = Resolve(n)
	if n == nil {
		return 0
	}
	switch n.Kind {
	case yaml.MappingNode:
		return len(n.Content) / 2
	case yaml.SequenceNode:
		return len(n.Content)
	default:
		return 0
	}
}

// NewMapping returns an empty block-style mapping node.
func NewMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: TagMap}
}

// NewString returns a string scalar node.
func NewString(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: TagStr, Value: v}
}

// Set appends key/value to mapping m. The caller guarantees key is not already present.
func Set(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, NewString(key), value)
}

// SetPair appends a copy of the original key node together with value to mapping m,
// keeping the key's tag and quoting style.
func SetPair(m *yaml.Node, keyNode, value *yaml.Node) {
	m.Content = append(m.Content, Clone(keyNode), value)
}

// Clone returns a deep copy of n. Alias nodes are replaced by copies of their
// targets and anchors are dropped, so the copy shares nothing with the source.
func Clone(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.AliasNode {
		return Clone(n.Alias)
	}
	out := *n
	out.Anchor = ""
	out.Alias = nil
	if len(n.Content) > 0 {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			out.Content[i] = Clone(child)
		}
	}
	return &out
}
