package spec

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"relay-core/internal/model"
)

// validateStep turns one raw step node into a StepSpec. The step's id is
// registered in seen before the rest of the step is checked, so a later
// failure inside the same step still leaves the id marked as used.
// A step is either fully valid or a terminal failure, never skipped.
func validateStep(node *yaml.Node, seen map[string]struct{}) (model.StepSpec, error) {
	var zero model.StepSpec

	stepMap, err := ExpectMapping(node, "each step must be a mapping/object")
	if err != nil {
		return zero, err
	}

	id, err := validateStepID(mappingValue(stepMap, "id"), seen)
	if err != nil {
		return zero, err
	}
	seen[id] = struct{}{}

	kind, err := validateStepType(id, mappingValue(stepMap, "type"))
	if err != nil {
		return zero, err
	}

	inputs, err := validateInputs(id, mappingValue(stepMap, "inputs"))
	if err != nil {
		return zero, err
	}

	params, err := validateConfig(id, mappingValue(stepMap, "config"))
	if err != nil {
		return zero, err
	}

	return model.StepSpec{
		ID:         id,
		Type:       kind,
		Inputs:     inputs,
		Parameters: params,
	}, nil
}

// validateStepID checks that the id is a non-empty string and not already
// used by an earlier step in the same document. Comparison is exact and
// case-sensitive on the raw value.
func validateStepID(node *yaml.Node, seen map[string]struct{}) (string, error) {
	node = resolve(node)
	if node == nil || node.Kind != yaml.ScalarNode || node.Tag != "!!str" || strings.TrimSpace(node.Value) == "" {
		return "", Errorf("step id is required and must be a non-empty string")
	}
	id := node.Value
	if _, dup := seen[id]; dup {
		return "", Errorf("duplicate step id %q", id)
	}
	return id, nil
}

func validateStepType(id string, node *yaml.Node) (model.StepType, error) {
	raw := ""
	if n := resolve(node); n != nil && n.Kind == yaml.ScalarNode {
		raw = n.Value
	}
	kind, ok := model.ParseStepType(strings.TrimSpace(raw))
	if !ok {
		return "", Errorf("step %s: type %q is invalid, must be one of: %s", id, raw, stepTypeList())
	}
	return kind, nil
}

// validateInputs parses the optional inputs mapping into OutputRefs, in
// document order. The mapping keys are used only to pinpoint failures.
// An absent or null inputs field yields no inputs.
func validateInputs(id string, node *yaml.Node) ([]model.OutputRef, error) {
	node = resolve(node)
	if node == nil || isNull(node) {
		return nil, nil
	}
	inputsMap, err := ExpectMapping(node, fmt.Sprintf("step %s: inputs must be a mapping/object if provided", id))
	if err != nil {
		return nil, err
	}

	refs := make([]model.OutputRef, 0, len(inputsMap.Content)/2)
	for i := 0; i+1 < len(inputsMap.Content); i += 2 {
		key := inputsMap.Content[i].Value
		ref, err := ParseOutputRef(inputsMap.Content[i+1])
		if err != nil {
			return nil, Wrapf(err, "step %s, input %q: %v", id, key, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// validateConfig copies the optional config mapping verbatim into the
// step's parameters. Absent or explicitly null config means no parameters.
func validateConfig(id string, node *yaml.Node) (map[string]interface{}, error) {
	node = resolve(node)
	if node == nil || isNull(node) {
		return map[string]interface{}{}, nil
	}
	if _, err := ExpectMapping(node, fmt.Sprintf("step %s: config must be a mapping/object if provided", id)); err != nil {
		return nil, err
	}

	params := make(map[string]interface{}, len(node.Content)/2)
	if err := node.Decode(&params); err != nil {
		return nil, Wrapf(err, "step %s: decoding config: %v", id, err)
	}
	return params, nil
}

func stepTypeList() string {
	parts := make([]string, len(model.StepTypes))
	for i, t := range model.StepTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
