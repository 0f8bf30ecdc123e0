package tableformer

import (
	"context"
	"sort"

	"github.com/docling-go/docling/model"
)

// RowTolerance mirrors export/readingorder.go's row-grouping
// tolerance: text cells whose vertical centers fall within this many
// points are treated as the same table row.
const RowTolerance = 10.0

// GeometricBackend reconstructs a table grid directly from the PDF
// text layer's cell geometry (row clustering by Y-centroid, column
// clustering by X-centroid) without running any neural network. This
// is the fallback path used when no TableFormer checkpoint is
// configured or the page has no bitmap to crop — the input to the
// neural encoder doesn't exist, not merely a low-confidence result,
// so skipping straight to geometry is the fallback this implements
// rather than running the network over a blank crop.
type GeometricBackend struct{}

// Recognize groups pdfCells into rows and columns by centroid
// clustering and emits a uniform fcel/ched grid (first row marked as
// column headers), satisfying the documented "never raise into the
// surrounding page pipeline" failure contract even with zero text
// cells (an empty grid).
func (GeometricBackend) Recognize(_ context.Context, crop model.BoundingBox, _ []float32, pdfCells []model.TextCell, _ OCREngine) (Result, error) {
	if len(pdfCells) == 0 {
		return Result{}, nil
	}

	rows := clusterRows(pdfCells)
	cols := clusterCols(pdfCells)
	if len(rows) == 0 || len(cols) == 0 {
		return Result{}, nil
	}

	cells := make([]model.TableCell, 0, len(rows)*len(cols))
	seqTokens := make([]string, 0, len(rows)*(len(cols)+1))
	for r, row := range rows {
		for c := range cols {
			text := ""
			var bb model.BoundingBox
			found := false
			for _, cell := range row {
				if colOf(cell, cols) == c {
					if text != "" {
						text += " "
					}
					text += cell.Text
					if !found {
						bb = cell.BoundingBox()
						found = true
					} else {
						bb = bb.Union(cell.BoundingBox())
					}
				}
			}
			tok := TokenFCel
			if r == 0 {
				tok = TokenCHed
			}
			cells = append(cells, model.TableCell{
				Text: text, BBox: bb, RowSpan: 1, ColSpan: 1,
				StartRow: r, EndRow: r + 1, StartCol: c, EndCol: c + 1,
				ColumnHeader: r == 0,
			})
			seqTokens = append(seqTokens, tok.String())
		}
		seqTokens = append(seqTokens, TokenNL.String())
	}

	return Result{
		NumRows: len(rows), NumCols: len(cols),
		OTSLSeq: append([]string{TokenStart.String()}, append(seqTokens, TokenEnd.String())...),
		TableCells: cells,
	}, nil
}

func clusterRows(cells []model.TextCell) [][]model.TextCell {
	sorted := append([]model.TextCell(nil), cells...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BoundingBox().T < sorted[j].BoundingBox().T
	})
	var rows [][]model.TextCell
	for _, c := range sorted {
		placed := false
		for i := range rows {
			refT := rows[i][0].BoundingBox().T
			if absf(c.BoundingBox().T-refT) <= RowTolerance {
				rows[i] = append(rows[i], c)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, []model.TextCell{c})
		}
	}
	return rows
}

func clusterCols(cells []model.TextCell) []float64 {
	var centers []float64
	for _, c := range cells {
		bb := c.BoundingBox()
		cx := (bb.L + bb.R) / 2
		placed := false
		for _, existing := range centers {
			if absf(cx-existing) <= RowTolerance {
				placed = true
				break
			}
		}
		if !placed {
			centers = append(centers, cx)
		}
	}
	sort.Float64s(centers)
	return centers
}

func colOf(cell model.TextCell, cols []float64) int {
	bb := cell.BoundingBox()
	cx := (bb.L + bb.R) / 2
	best, bestDist := 0, absf(cx-cols[0])
	for i, c := range cols[1:] {
		d := absf(cx - c)
		if d < bestDist {
			best, bestDist = i+1, d
		}
	}
	return best
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
