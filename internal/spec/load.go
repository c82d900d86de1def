// Package spec loads declarative pipeline specification documents into the
// validated in-memory model consumed by the rest of the system. Every
// downstream component works only with the PipelineSpec this package
// produces, never with raw document nodes.
//
// Validation here is local: document shape, step id uniqueness, type tags,
// and the output-reference grammar. Whether a referenced step id actually
// exists, or whether the referenced step produces that output, is checked
// by a later resolution phase.
package spec

import (
	"os"

	"gopkg.in/yaml.v3"

	"relay-core/internal/model"
)

// Load parses and validates a pipeline specification document. Steps are
// validated in document order and the first failure aborts the load; no
// partial PipelineSpec is ever returned.
func Load(data []byte) (*model.PipelineSpec, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, Wrapf(err, "failed to parse document: %v", err)
	}
	root, err := documentRoot(&doc)
	if err != nil {
		return nil, err
	}

	p := &model.PipelineSpec{}
	if n := resolve(mappingValue(root, "name")); n != nil && n.Kind == yaml.ScalarNode && !isNull(n) {
		p.Name = n.Value
	}
	if n := resolve(mappingValue(root, "description")); n != nil && n.Kind == yaml.ScalarNode && !isNull(n) {
		p.Description = n.Value
	}
	// Type-checking the version field is deferred to later phases; a value
	// that does not read as an integer is simply left unset.
	if n := resolve(mappingValue(root, "version")); n != nil {
		var v int
		if err := n.Decode(&v); err == nil {
			p.Version = &v
		}
	}

	stepsNode, err := ExpectSequence(mappingValue(root, "steps"), "top-level field 'steps' is required and must be a list")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	steps := make([]model.StepSpec, 0, len(stepsNode.Content))
	for _, stepNode := range stepsNode.Content {
		step, err := validateStep(stepNode, seen)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	p.Steps = steps

	return p, nil
}

// LoadFile reads and validates a pipeline specification file.
func LoadFile(path string) (*model.PipelineSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Wrapf(err, "reading spec file %s: %v", path, err)
	}
	return Load(data)
}

// documentRoot unwraps the yaml document node and checks that the
// top-level value is a mapping.
func documentRoot(doc *yaml.Node) (*yaml.Node, error) {
	const msg = "top-level document must be a mapping (key/value object)"
	node := doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, Errorf("%s", msg)
		}
		node = node.Content[0]
	}
	return ExpectMapping(node, msg)
}
