package obslog

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestInfoWritesFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Info("layout detection complete", String("stage", "layout"), Int("elements", 12))

	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Errorf("expected INFO level, got %q", out)
	}
	if !strings.Contains(out, "stage=layout") {
		t.Errorf("expected stage=layout field, got %q", out)
	}
	if !strings.Contains(out, "elements=12") {
		t.Errorf("expected elements=12 field, got %q", out)
	}
}

func TestErrFieldHandlesNil(t *testing.T) {
	f := Err(nil)
	if f.Value != "<nil>" {
		t.Errorf("expected <nil>, got %q", f.Value)
	}
}

func TestWarnAndError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Warn("falling back to geometric detector")
	Error("decode failed", String("reason", "max length exceeded"))

	out := buf.String()
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "ERROR") {
		t.Errorf("expected both WARN and ERROR lines, got %q", out)
	}
}
