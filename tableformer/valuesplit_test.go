package tableformer

import (
	"testing"

	"github.com/docling-go/docling/model"
)

func cellAt(row, col int, text string) model.TableCell {
	return model.TableCell{Text: text, RowSpan: 1, ColSpan: 1, StartRow: row, EndRow: row + 1, StartCol: col, EndCol: col + 1}
}

func TestSplitValuesPureNumeric(t *testing.T) {
	cells := []model.TableCell{
		cellAt(0, 0, ""),
		cellAt(0, 1, "1 2 3"),
		cellAt(0, 2, ""),
	}
	out := SplitValues(cells, 1, 3)
	if out[0].Text != "1" || out[1].Text != "2" || out[2].Text != "3" {
		t.Fatalf("expected tokens redistributed left/mid/right, got %q %q %q", out[0].Text, out[1].Text, out[2].Text)
	}
}

func TestSplitValuesSkippedBelowThreeCols(t *testing.T) {
	cells := []model.TableCell{cellAt(0, 0, "1 2"), cellAt(0, 1, "")}
	out := SplitValues(cells, 1, 2)
	if out[0].Text != "1 2" {
		t.Fatalf("expected no split below numCols=3, got %q", out[0].Text)
	}
}

func TestSplitValuesNotEnoughEmptyCells(t *testing.T) {
	cells := []model.TableCell{
		cellAt(0, 0, "a"),
		cellAt(0, 1, "1 2 3"),
		cellAt(0, 2, "b"),
	}
	out := SplitValues(cells, 1, 3)
	if out[1].Text != "1 2 3" {
		t.Fatalf("expected no redistribution without enough empty cells, got %q", out[1].Text)
	}
}
