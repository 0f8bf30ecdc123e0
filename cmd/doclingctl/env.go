package main

import (
	"os"

	"github.com/docling-go/docling/internal/obslog"
)

// debugEnvVars are the nine optional debug-toggle environment
// variables the library recognizes without requiring them: ignoring
// any of them loses no correctness, so this CLI's only obligation is
// to surface which ones a caller set, not to act on them.
var debugEnvVars = []string{
	"ENABLE_IMAGE_OCR",
	"ORT_FORCE_CPU",
	"LAYOUT_ONNX_THREADS",
	"DEBUG_ONNX",
	"DEBUG_LAYOUT",
	"DEBUG_LOW_THRESHOLD",
	"PROFILE_MODEL",
	"DEBUG_PYTORCH",
	"DEBUG_E2E_TRACE",
}

// readDebugEnv logs every recognized debug env var that is set, so a
// caller can see what was picked up. Parse/value validity is never
// checked here — a malformed value is simply logged as-is.
func readDebugEnv() {
	for _, name := range debugEnvVars {
		if v, ok := os.LookupEnv(name); ok {
			obslog.Info("debug env var set", obslog.String("name", name), obslog.String("value", v))
		}
	}
}
