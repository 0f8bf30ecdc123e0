package model

import "fmt"

// InputError reports a problem with the document handed to the
// pipeline before any stage ran — wrong mimetype, corrupt bytes,
// zero pages.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// ModelError reports a failure loading or running an ML backend
// (layout detector, TableFormer, VLM).
type ModelError struct {
	Component string
	Cause     error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s model error: %v", e.Component, e.Cause)
}

func (e *ModelError) Unwrap() error { return e.Cause }

// StageError wraps an error raised while running a named stage of the
// per-page stage graph, so callers can tell which stage failed without
// parsing the message.
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error { return e.Cause }

// DecodeError reports a failure in TableFormer's autoregressive tag
// decoding (invalid OTSL token, cache overrun, max-length exceeded
// without reaching an end token).
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("table decode error: %s", e.Reason)
}

// AssemblyError reports a failure building the cross-page document
// (reading-order cycle, dangling reference, malformed body group).
type AssemblyError struct {
	Reason string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembly error: %s", e.Reason)
}
