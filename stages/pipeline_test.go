package stages

import (
	"testing"

	"github.com/docling-go/docling/model"
)

func TestRunPageEndToEnd(t *testing.T) {
	pred := model.PagePredictions{
		Cells: []model.TextCell{
			textCell(0, "1 Introduction", 0, 0, 150, 20),
			textCell(1, "Body text on the page.", 0, 30, 300, 50),
		},
		Layout: []model.Cluster{
			{ID: 0, Label: model.LabelSectionHeader, BBox: model.BoundingBox{L: 0, T: 0, R: 150, B: 20}, Confidence: 0.9},
			{ID: 1, Label: model.LabelText, BBox: model.BoundingBox{L: 0, T: 30, R: 300, B: 50}, Confidence: 0.9},
		},
	}

	unit, err := RunPage(pred, 1, 792, DefaultPipelineConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unit.Elements) != 2 {
		t.Fatalf("expected 2 assembled elements, got %d", len(unit.Elements))
	}
	if len(unit.Body) != 2 {
		t.Fatalf("expected both elements in body, got %d", len(unit.Body))
	}
}

func TestRunPageRoutesFurnitureSeparately(t *testing.T) {
	pred := model.PagePredictions{
		Cells: []model.TextCell{textCell(0, "Running Header", 0, 0, 100, 20)},
		Layout: []model.Cluster{
			{ID: 0, Label: model.LabelPageHeader, BBox: model.BoundingBox{L: 0, T: 0, R: 100, B: 20}, Confidence: 0.9},
		},
	}
	unit, err := RunPage(pred, 1, 792, DefaultPipelineConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unit.Headers) != 1 || len(unit.Body) != 0 {
		t.Fatalf("expected header routed to Headers not Body, got headers=%d body=%d", len(unit.Headers), len(unit.Body))
	}
}
