package spec

import (
	"strings"

	"gopkg.in/yaml.v3"

	"relay-core/internal/model"
)

// ParseOutputRef parses a scalar node of the shape "step_id.output_name"
// into an OutputRef. The split point is the rightmost '.', so step ids may
// themselves contain dots while output names stay simple tokens.
func ParseOutputRef(node *yaml.Node) (model.OutputRef, error) {
	node = resolve(node)
	if node == nil || node.Kind != yaml.ScalarNode || node.Tag != "!!str" {
		return model.OutputRef{}, Errorf("output reference must be a string, got %s", nodeTypeName(node))
	}
	return parseRef(node.Value)
}

func parseRef(ref string) (model.OutputRef, error) {
	dot := strings.LastIndex(ref, ".")
	if dot < 0 {
		return model.OutputRef{}, Errorf("invalid output reference %q, expected 'step_id.output_name'", ref)
	}
	stepID := strings.TrimSpace(ref[:dot])
	output := strings.TrimSpace(ref[dot+1:])
	if stepID == "" || output == "" {
		return model.OutputRef{}, Errorf("invalid output reference %q: step_id and output_name must be non-empty", ref)
	}
	return model.OutputRef{StepID: stepID, Output: output}, nil
}
