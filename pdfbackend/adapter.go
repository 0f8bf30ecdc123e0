// Package pdfbackend adapts the low-level PDF byte-parsing stack
// (reader/core/pages/contentstream/font/graphicsstate) into the
// model.PDFPage/PagePredictions shape the stage graph consumes. It is
// the seam named by the external-collaborator boundary: PDF rendering
// and raw text-cell extraction live below this package; everything
// from layout clustering onward lives in stages/export.
package pdfbackend

import (
	"fmt"

	"github.com/docling-go/docling/model"
	"github.com/docling-go/docling/reader"
	"github.com/docling-go/docling/text"
)

// LoadPages opens filename and converts every page's raw text
// fragments into a model.PDFPage carrying only Cells in its
// Predictions — Layout/Tables/OCRCells are left for the caller to
// populate (via layoutmodel/tableformer backends, or left empty for a
// geometry-only run) before handing the page to stages.RunPage.
func LoadPages(filename string) ([]model.PDFPage, error) {
	r, err := reader.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("reading page count: %w", err)
	}

	out := make([]model.PDFPage, 0, count)
	for i := 0; i < count; i++ {
		page, err := r.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i+1, err)
		}
		width, err := page.Width()
		if err != nil {
			return nil, fmt.Errorf("reading page %d width: %w", i+1, err)
		}
		height, err := page.Height()
		if err != nil {
			return nil, fmt.Errorf("reading page %d height: %w", i+1, err)
		}

		fragments, err := r.ExtractTextFragments(page)
		if err != nil {
			return nil, fmt.Errorf("extracting text on page %d: %w", i+1, err)
		}

		pdfPage := model.NewPDFPage(i+1, model.PageSize{Width: width, Height: height})
		pdfPage.Predictions.Cells = cellsFromFragments(fragments, height)
		out = append(out, *pdfPage)
	}
	return out, nil
}

// cellsFromFragments converts page-coordinate text fragments (origin
// bottom-left, as PDF content streams place them) into TextCells whose
// bounding boxes use the stage graph's top-left coordinate convention.
func cellsFromFragments(fragments []text.TextFragment, pageHeight float64) []model.TextCell {
	cells := make([]model.TextCell, 0, len(fragments))
	for i, f := range fragments {
		top := pageHeight - f.Y - f.Height
		bbox := model.BoundingBox{
			L:           f.X,
			T:           top,
			R:           f.X + f.Width,
			B:           top + f.Height,
			CoordOrigin: model.TopLeft,
		}
		cells = append(cells, model.NewPDFTextCell(i, f.Text, bbox))
	}
	return cells
}
