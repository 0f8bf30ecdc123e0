package tableformer

import "github.com/docling-go/docling/model"

// cellSlot is a work-in-progress grid cell before bbox/text attachment.
type cellSlot struct {
	row, col         int
	rowSpan, colSpan int
	columnHeader     bool
	rowHeader        bool
}

// Grid is the reconstructed row/column structure of a decoded tag
// sequence, before cell text and bbox attachment.
type Grid struct {
	NumRows int
	NumCols int
	Cells   []cellSlot
}

// at returns the slot occupying (row, col), or nil.
func (g *Grid) at(row, col int) *cellSlot {
	for i := range g.Cells {
		c := &g.Cells[i]
		if c.row == row && c.col == col {
			return c
		}
		// A spanned cell occupies every (row,col) within its span
		// rectangle, not just its origin.
		if row >= c.row && row < c.row+c.rowSpan && col >= c.col && col < c.col+c.colSpan {
			return c
		}
	}
	return nil
}

// BuildGrid reconstructs the row/column grid from a decoded OTSL
// token sequence, per the scan-with-(row,col)-cursor rule: new-cell
// tokens place a 1x1 cell and advance col; lcel/ucel extend a
// neighbor's span; xcel is resolved by preferring ucel semantics on
// its containing block; nl closes the row.
func BuildGrid(tokens []Token) Grid {
	var g Grid
	row, col := 0, 0

	for _, tok := range tokens {
		switch {
		case tok == TokenStart || tok == TokenPad || tok == TokenUnk:
			continue
		case tok == TokenEnd:
			if col > g.NumCols {
				g.NumCols = col
			}
			g.NumRows = row
			continue
		case tok.IsNewCell():
			g.Cells = append(g.Cells, cellSlot{
				row: row, col: col, rowSpan: 1, colSpan: 1,
				columnHeader: tok.IsColumnHeader(),
				rowHeader:    tok.IsRowHeader(),
			})
			col++
		case tok == TokenLCel:
			if c := g.at(row, col-1); c != nil {
				c.colSpan++
			}
			col++
		case tok == TokenUCel, tok == TokenXCel:
			// xcel: "extend the diagonally spanning cell ... resolve
			// by preferring the ucel semantics on the containing
			// block" — both read as a vertical extension here.
			if c := g.at(row-1, col); c != nil {
				c.rowSpan++
			}
			col++
		case tok == TokenNL:
			if col > g.NumCols {
				g.NumCols = col
			}
			row++
			col = 0
		}
	}
	// A truncated sequence (no <end> reached) still reconstructs what
	// was parsed so far.
	if g.NumRows == 0 && row > 0 {
		g.NumRows = row
	}
	if col > g.NumCols {
		g.NumCols = col
	}
	return g
}

// TableCells converts reconstructed grid slots into model.TableCell
// values, stamping bbox/text from the parallel per-cell attachments
// (produced by the bbox head and celltext attachment, same order as
// g.Cells).
func (g Grid) TableCells(bboxes []model.BoundingBox, texts []string, fromOCR []bool, confidence []*float64) []model.TableCell {
	out := make([]model.TableCell, len(g.Cells))
	for i, c := range g.Cells {
		tc := model.TableCell{
			RowSpan: c.rowSpan, ColSpan: c.colSpan,
			StartRow: c.row, EndRow: c.row + c.rowSpan,
			StartCol: c.col, EndCol: c.col + c.colSpan,
			ColumnHeader: c.columnHeader, RowHeader: c.rowHeader,
		}
		if i < len(bboxes) {
			tc.BBox = bboxes[i]
		}
		if i < len(texts) {
			tc.Text = texts[i]
		}
		if i < len(fromOCR) {
			tc.FromOCR = fromOCR[i]
		}
		if i < len(confidence) {
			tc.Confidence = confidence[i]
		}
		out[i] = tc
	}
	return out
}
