// Package model holds the plain value types shared between the spec loader,
// the registry store, and the API layer.
package model

// StepType classifies a pipeline step. The set is closed: anything else in
// a document is rejected at load time, never coerced or defaulted.
type StepType string

const (
	StepIngest    StepType = "ingest"
	StepTransform StepType = "transform"
	StepCheck     StepType = "check"
	StepExport    StepType = "export"
)

// StepTypes lists every valid step type in declaration order. Error
// messages enumerate this slice, so the order is part of the contract.
var StepTypes = []StepType{StepIngest, StepTransform, StepCheck, StepExport}

// ParseStepType maps a raw type tag onto a StepType.
func ParseStepType(s string) (StepType, bool) {
	for _, t := range StepTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// OutputRef points a step input at a named output of another step,
// written in documents as "step_id.output_name".
type OutputRef struct {
	StepID string `json:"step_id"`
	Output string `json:"output"`
}

// StepSpec is one named, typed unit of work in a pipeline.
type StepSpec struct {
	ID         string                 `json:"id"`
	Type       StepType               `json:"type"`
	Inputs     []OutputRef            `json:"inputs"`
	Parameters map[string]interface{} `json:"parameters"`
}

// PipelineSpec is the validated, in-memory description of a pipeline.
// It is built once by the loader and never mutated afterwards.
type PipelineSpec struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Version     *int       `json:"version,omitempty"`
	Steps       []StepSpec `json:"steps"`
}
