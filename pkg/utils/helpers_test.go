package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("30s", time.Minute); got != 30*time.Second {
		t.Errorf("expected 30s, got %v", got)
	}
	if got := ParseDuration("", time.Minute); got != time.Minute {
		t.Errorf("expected fallback for empty input, got %v", got)
	}
	if got := ParseDuration("bogus", 5*time.Second); got != 5*time.Second {
		t.Errorf("expected fallback for malformed input, got %v", got)
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, 422, "duplicate step id \"a\"")

	if rec.Code != 422 {
		t.Errorf("expected status 422, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json content type, got %q", ct)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["error"] != "duplicate step id \"a\"" {
		t.Errorf("unexpected payload: %+v", body)
	}
}
