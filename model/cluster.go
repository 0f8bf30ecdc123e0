package model

// Cluster is a detected region on a page: a label, confidence, bbox,
// and the cells (and/or child clusters) assigned to it. Produced by
// the layout model, consumed and mutated (as fresh copies — no stage
// mutates its inputs) through Stages 1-9.
type Cluster struct {
	ID         int
	Label      Label
	BBox       BoundingBox
	Confidence float64
	Cells      []TextCell
	Children   []Cluster
}

// CellText concatenates the text of a cluster's cells in their
// existing order, space-separated.
func (c Cluster) CellText() string {
	if len(c.Cells) == 0 {
		return ""
	}
	total := 0
	for _, cell := range c.Cells {
		total += len(cell.Text) + 1
	}
	out := make([]byte, 0, total)
	for i, cell := range c.Cells {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, cell.Text...)
	}
	return string(out)
}

// BBoxFromCells returns the union of a cluster's cell bboxes. The
// caller decides whether and how to clamp the result to the cluster's
// originally detected bbox (Stage 5 never grows a cluster's box).
func BBoxFromCells(cells []TextCell) (BoundingBox, bool) {
	if len(cells) == 0 {
		return BoundingBox{}, false
	}
	box := cells[0].BoundingBox()
	for _, c := range cells[1:] {
		box = box.Union(c.BoundingBox())
	}
	return box, true
}

// NextClusterID returns max(existing ids)+1, or 0 if clusters is empty
// — the id-assignment rule Stage 6 orphan creation uses.
func NextClusterID(clusters []Cluster) int {
	max := -1
	for _, c := range clusters {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

// TableCell is a single cell of a recognized table grid. Offsets are
// zero-based; spans are >= 1; the span rectangle
// [StartRow, StartRow+RowSpan) x [StartCol, StartCol+ColSpan) must fit
// within the table's grid.
type TableCell struct {
	Text         string
	BBox         BoundingBox
	RowSpan      int
	ColSpan      int
	StartRow     int
	EndRow       int
	StartCol     int
	EndCol       int
	ColumnHeader bool
	RowHeader    bool
	FromOCR      bool
	Confidence   *float64
}

// FitsInGrid reports whether the cell's span rectangle is within a
// grid of the given dimensions.
func (tc TableCell) FitsInGrid(numRows, numCols int) bool {
	return tc.StartRow >= 0 && tc.StartCol >= 0 &&
		tc.StartRow+tc.RowSpan <= numRows &&
		tc.StartCol+tc.ColSpan <= numCols
}
