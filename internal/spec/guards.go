package spec

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// resolve follows alias nodes so anchored content validates exactly like
// inline content.
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// ExpectMapping narrows node to a mapping. Any other kind fails with msg
// verbatim. Callers never inspect node kinds themselves; every "wrong
// shape" failure in a document funnels through here or ExpectSequence.
func ExpectMapping(node *yaml.Node, msg string) (*yaml.Node, error) {
	node = resolve(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, Errorf("%s", msg)
	}
	return node, nil
}

// ExpectSequence narrows node to a sequence, failing with msg verbatim
// otherwise.
func ExpectSequence(node *yaml.Node, msg string) (*yaml.Node, error) {
	node = resolve(node)
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil, Errorf("%s", msg)
	}
	return node, nil
}

// mappingValue returns the value node for key in a mapping, or nil if the
// key is absent. Mapping nodes store keys and values interleaved in
// Content, in document order.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// isNull reports whether node is an explicit null scalar.
func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

// nodeTypeName names a node's type for error messages.
func nodeTypeName(node *yaml.Node) string {
	if node == nil {
		return "nothing"
	}
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return strings.TrimPrefix(node.Tag, "!!")
	default:
		return "unknown"
	}
}
