package spec

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"relay-core/internal/model"
)

func TestLoad(t *testing.T) {
	yml := `
name: nightly-report
description: End of day metrics
version: 3
steps:
  - id: a
    type: ingest
  - id: b
    type: transform
    inputs:
      x: a.rows
`
	p, err := Load([]byte(yml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "nightly-report" {
		t.Errorf("expected name 'nightly-report', got %q", p.Name)
	}
	if p.Version == nil || *p.Version != 3 {
		t.Errorf("expected version 3, got %v", p.Version)
	}
	if len(p.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(p.Steps))
	}
	if p.Steps[0].ID != "a" || p.Steps[0].Type != model.StepIngest {
		t.Errorf("unexpected first step: %+v", p.Steps[0])
	}
	if len(p.Steps[1].Inputs) != 1 {
		t.Fatalf("expected 1 input on step b, got %d", len(p.Steps[1].Inputs))
	}
	want := model.OutputRef{StepID: "a", Output: "rows"}
	if p.Steps[1].Inputs[0] != want {
		t.Errorf("expected %+v, got %+v", want, p.Steps[1].Inputs[0])
	}
}

func TestLoadPreservesStepOrder(t *testing.T) {
	yml := `
steps:
  - {id: third, type: export}
  - {id: first, type: ingest}
  - {id: second, type: check}
`
	p, err := Load([]byte(yml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := []string{p.Steps[0].ID, p.Steps[1].ID, p.Steps[2].ID}
	if !reflect.DeepEqual(ids, []string{"third", "first", "second"}) {
		t.Errorf("steps must keep document order, got %v", ids)
	}
}

func TestLoadDuplicateID(t *testing.T) {
	yml := `
steps:
  - {id: a, type: ingest}
  - {id: a, type: transform}
`
	_, err := Load([]byte(yml))
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
	if !strings.Contains(err.Error(), "duplicate") || !strings.Contains(err.Error(), `"a"`) {
		t.Errorf("expected duplicate id error naming 'a', got %q", err.Error())
	}
}

// An id is registered as seen before the rest of its step validates, so a
// second step reusing the id of an earlier broken step still reports a
// duplicate rather than the earlier step's error again.
func TestLoadIDSeenBeforeStepFails(t *testing.T) {
	yml := `
steps:
  - {id: a, type: ingest}
  - {id: b, type: bogus}
`
	_, err := Load([]byte(yml))
	if err == nil {
		t.Fatal("expected type error")
	}
	if !strings.Contains(err.Error(), "step b") {
		t.Errorf("error should identify step b, got %q", err.Error())
	}

	yml = `
steps:
  - {id: a, type: bogus}
  - {id: a, type: ingest}
`
	_, err = Load([]byte(yml))
	if err == nil || strings.Contains(err.Error(), "duplicate") {
		t.Errorf("first failure must win, got %v", err)
	}
}

func TestLoadStepsShape(t *testing.T) {
	for _, yml := range []string{
		"steps:\n  a: {id: a, type: ingest}\n", // mapping, not sequence
		"name: no steps at all\n",
		"steps: 7\n",
	} {
		_, err := Load([]byte(yml))
		if err == nil {
			t.Errorf("expected shape error for %q", yml)
			continue
		}
		if !strings.Contains(err.Error(), "steps") {
			t.Errorf("expected error naming 'steps', got %q", err.Error())
		}
	}
}

func TestLoadEmptySteps(t *testing.T) {
	p, err := Load([]byte("steps: []\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Steps) != 0 {
		t.Errorf("expected no steps, got %d", len(p.Steps))
	}
}

func TestLoadTopLevelShape(t *testing.T) {
	for _, yml := range []string{"- just\n- a\n- list\n", "plain scalar\n", ""} {
		_, err := Load([]byte(yml))
		if err == nil {
			t.Errorf("expected top-level shape error for %q", yml)
		}
	}
}

func TestLoadDecodeFailure(t *testing.T) {
	_, err := Load([]byte("steps: [unclosed\n"))
	if err == nil {
		t.Fatal("expected decode error")
	}
	var specErr *Error
	if !errors.As(err, &specErr) {
		t.Errorf("decode failure must surface as a spec error, got %T", err)
	}
	if errors.Unwrap(specErr) == nil {
		t.Error("decode failure should keep the underlying cause")
	}
}

func TestLoadUnknownType(t *testing.T) {
	yml := `
steps:
  - {id: a, type: unknown}
`
	_, err := Load([]byte(yml))
	if err == nil {
		t.Fatal("expected type error")
	}
	msg := err.Error()
	for _, want := range []string{"ingest", "transform", "check", "export"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error should list %q, got %q", want, msg)
		}
	}
	if !strings.Contains(msg, "ingest, transform, check, export") {
		t.Errorf("valid values should appear in enumeration order, got %q", msg)
	}
}

func TestLoadMissingType(t *testing.T) {
	_, err := Load([]byte("steps:\n  - {id: a}\n"))
	if err == nil {
		t.Fatal("expected error for missing type")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("missing type should list valid values, got %q", err.Error())
	}
}

func TestLoadTypeTrimmed(t *testing.T) {
	p, err := Load([]byte("steps:\n  - {id: a, type: '  ingest  '}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Steps[0].Type != model.StepIngest {
		t.Errorf("expected trimmed type to resolve, got %q", p.Steps[0].Type)
	}
}

func TestLoadInputsOptional(t *testing.T) {
	for _, yml := range []string{
		"steps:\n  - {id: a, type: ingest}\n",
		"steps:\n  - {id: a, type: ingest, inputs: {}}\n",
		"steps:\n  - id: a\n    type: ingest\n    inputs:\n",
	} {
		p, err := Load([]byte(yml))
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", yml, err)
		}
		if len(p.Steps[0].Inputs) != 0 {
			t.Errorf("expected no inputs for %q, got %+v", yml, p.Steps[0].Inputs)
		}
	}
}

func TestLoadInputsShape(t *testing.T) {
	_, err := Load([]byte("steps:\n  - {id: a, type: ingest, inputs: [a.b]}\n"))
	if err == nil {
		t.Fatal("expected shape error for sequence inputs")
	}
	if !strings.Contains(err.Error(), "step a") {
		t.Errorf("error should name the step, got %q", err.Error())
	}
}

func TestLoadBadInputRefContext(t *testing.T) {
	yml := `
steps:
  - id: report
    type: export
    inputs:
      rows: noDot
`
	_, err := Load([]byte(yml))
	if err == nil {
		t.Fatal("expected reference error")
	}
	msg := err.Error()
	for _, want := range []string{"report", "rows", "noDot"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error should contain %q, got %q", want, msg)
		}
	}
}

func TestLoadInputsKeepDocumentOrder(t *testing.T) {
	yml := `
steps:
  - id: merge
    type: transform
    inputs:
      right: b.rows
      left: a.rows
`
	p, err := Load([]byte(yml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	refs := p.Steps[0].Inputs
	if len(refs) != 2 || refs[0].StepID != "b" || refs[1].StepID != "a" {
		t.Errorf("inputs must follow mapping order, got %+v", refs)
	}
}

// Dangling references load fine: cross-step resolution belongs to a later
// validation phase, not the loader.
func TestLoadDanglingRefAccepted(t *testing.T) {
	yml := `
steps:
  - id: a
    type: check
    inputs:
      x: nonexistent.rows
`
	if _, err := Load([]byte(yml)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadStepNotMapping(t *testing.T) {
	_, err := Load([]byte("steps:\n  - just a string\n"))
	if err == nil {
		t.Fatal("expected error for scalar step")
	}
	if !strings.Contains(err.Error(), "mapping") {
		t.Errorf("expected mapping shape error, got %q", err.Error())
	}
}

func TestLoadStepIDRequired(t *testing.T) {
	for _, yml := range []string{
		"steps:\n  - {type: ingest}\n",
		"steps:\n  - {id: '', type: ingest}\n",
		"steps:\n  - {id: '   ', type: ingest}\n",
		"steps:\n  - {id: 42, type: ingest}\n",
	} {
		_, err := Load([]byte(yml))
		if err == nil {
			t.Errorf("expected id error for %q", yml)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	yml := `
steps:
  - id: a
    type: ingest
    config:
      url: https://example.com/data.csv
      batch: 500
      strict: true
      nested:
        key: value
`
	p, err := Load([]byte(yml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params := p.Steps[0].Parameters
	if params["url"] != "https://example.com/data.csv" {
		t.Errorf("unexpected url param: %v", params["url"])
	}
	if params["batch"] != 500 {
		t.Errorf("expected batch 500, got %v (%T)", params["batch"], params["batch"])
	}
	if params["strict"] != true {
		t.Errorf("expected strict true, got %v", params["strict"])
	}
	if _, ok := params["nested"].(map[string]interface{}); !ok {
		t.Errorf("expected nested mapping, got %T", params["nested"])
	}
}

func TestLoadConfigOptionalAndNull(t *testing.T) {
	for _, yml := range []string{
		"steps:\n  - {id: a, type: ingest}\n",
		"steps:\n  - {id: a, type: ingest, config: null}\n",
	} {
		p, err := Load([]byte(yml))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Steps[0].Parameters == nil || len(p.Steps[0].Parameters) != 0 {
			t.Errorf("expected empty parameters, got %+v", p.Steps[0].Parameters)
		}
	}
}

func TestLoadConfigShape(t *testing.T) {
	_, err := Load([]byte("steps:\n  - {id: a, type: ingest, config: [1, 2]}\n"))
	if err == nil {
		t.Fatal("expected shape error for sequence config")
	}
	if !strings.Contains(err.Error(), "config") {
		t.Errorf("error should name config, got %q", err.Error())
	}
}

func TestLoadLenientMetadata(t *testing.T) {
	yml := `
name: [not, a, string]
version: not-a-number
steps: []
`
	p, err := Load([]byte(yml))
	if err != nil {
		t.Fatalf("metadata fields are not validated here: %v", err)
	}
	if p.Name != "" || p.Version != nil {
		t.Errorf("unparseable metadata should be left unset, got name=%q version=%v", p.Name, p.Version)
	}
}

func TestLoadIdempotent(t *testing.T) {
	yml := `
name: twice
steps:
  - id: a
    type: ingest
    config: {limit: 10}
  - id: b
    type: transform
    inputs: {x: a.rows}
`
	first, err := Load([]byte(yml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Load([]byte(yml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two loads of the same document must be value-equal")
	}
	second.Steps[0].Parameters["limit"] = 99
	if reflect.DeepEqual(first.Steps[0].Parameters, second.Steps[0].Parameters) {
		t.Error("loads must not share mutable state")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	content := "name: from-disk\nsteps:\n  - {id: a, type: ingest}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "from-disk" || len(p.Steps) != 1 {
		t.Errorf("unexpected spec: %+v", p)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
