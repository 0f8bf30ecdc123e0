package layoutmodel

import (
	"context"
	"testing"
)

func TestNativeBackendInferReturnsAllQueryClassPairs(t *testing.T) {
	b := NewNativeBackend(ZeroQueryWeights(12), Resolution448)
	out, err := b.Infer(context.Background(), make([]float32, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != NumQueries*NumClasses {
		t.Fatalf("expected %d detections, got %d", NumQueries*NumClasses, len(out))
	}
	if b.Resolution() != Resolution448 {
		t.Fatalf("expected configured resolution to round-trip")
	}
	if err := b.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}
