package layoutmodel

import (
	"testing"

	"github.com/docling-go/docling/model"
)

func TestPostprocessTopKLimits(t *testing.T) {
	dets := make([]Detection, 0, NumClasses*2)
	for q := 0; q < 2; q++ {
		for c := 0; c < NumClasses; c++ {
			dets = append(dets, Detection{ClassIndex: c, Score: float64(q*NumClasses + c), CX: 0.5, CY: 0.5, W: 0.2, H: 0.2})
		}
	}
	cfg := PostprocessConfig{TopK: 3, MinScore: 0}
	out := Postprocess(dets, model.PageSize{Width: 600, Height: 800}, cfg)
	if len(out) != 3 {
		t.Fatalf("expected 3 clusters, got %d", len(out))
	}
}

func TestPostprocessDeterministicTieBreak(t *testing.T) {
	dets := []Detection{
		{ClassIndex: 0, Score: 10, CX: 0.5, CY: 0.5, W: 0.1, H: 0.1},
		{ClassIndex: 1, Score: 10, CX: 0.5, CY: 0.5, W: 0.1, H: 0.1},
	}
	cfg := PostprocessConfig{TopK: 2}
	out1 := Postprocess(dets, model.PageSize{Width: 100, Height: 100}, cfg)
	out2 := Postprocess(dets, model.PageSize{Width: 100, Height: 100}, cfg)
	if len(out1) != 2 || len(out2) != 2 {
		t.Fatalf("expected both passes to keep both tied candidates")
	}
	if out1[0].ID != out2[0].ID || out1[1].ID != out2[1].ID {
		t.Fatalf("expected deterministic tie-break ordering across runs")
	}
	if out1[0].ID != 0 || out1[1].ID != 1 {
		t.Fatalf("expected ascending-index tie-break, got ids %d,%d", out1[0].ID, out1[1].ID)
	}
}

func TestPostprocessDecodesBoxToPageSpace(t *testing.T) {
	dets := []Detection{{ClassIndex: 0, Score: 5, CX: 0.5, CY: 0.5, W: 0.5, H: 0.25}}
	out := Postprocess(dets, model.PageSize{Width: 400, Height: 200}, DefaultPostprocessConfig())
	if len(out) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(out))
	}
	bb := out[0].BBox
	if bb.L != 100 || bb.R != 300 || bb.T != 75 || bb.B != 125 {
		t.Fatalf("unexpected decoded bbox: %+v", bb)
	}
}
