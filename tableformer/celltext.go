package tableformer

import (
	"sort"

	"github.com/docling-go/docling/model"
)

// MinCellTextIoS is the minimum intersection-over-self an input text
// cell must have with a structure cell to be attributed to it.
const MinCellTextIoS = 0.5

// OCREngine recognizes text in a page-coordinate bbox, returning the
// recognized text and a confidence in [0,1].
type OCREngine interface {
	RecognizeRegion(bbox model.BoundingBox) (text string, confidence float64, err error)
}

// AttachCellText fills each structure cell's text either from the
// PDF text layer (cells whose IoS with the structure cell is >= 0.5,
// concatenated in reading order, from_ocr=false, confidence=1.0) or,
// when no PDF cells exist, from OCR over the cell's bbox.
func AttachCellText(bboxes []model.BoundingBox, pdfCells []model.TextCell, ocr OCREngine) (texts []string, fromOCR []bool, confidence []*float64) {
	texts = make([]string, len(bboxes))
	fromOCR = make([]bool, len(bboxes))
	confidence = make([]*float64, len(bboxes))

	for i, bb := range bboxes {
		if matched := matchingCells(bb, pdfCells); len(matched) > 0 {
			texts[i] = joinReadingOrder(matched)
			one := 1.0
			confidence[i] = &one
			continue
		}
		if ocr == nil {
			continue
		}
		text, conf, err := ocr.RecognizeRegion(bb)
		if err != nil {
			continue
		}
		texts[i] = text
		fromOCR[i] = true
		confidence[i] = &conf
	}
	return texts, fromOCR, confidence
}

func matchingCells(structBox model.BoundingBox, cells []model.TextCell) []model.TextCell {
	var out []model.TextCell
	for _, c := range cells {
		if c.BoundingBox().IntersectionOverSelf(structBox) >= MinCellTextIoS {
			out = append(out, c)
		}
	}
	return out
}

// joinReadingOrder concatenates matched cell text top-to-bottom then
// left-to-right, the same row/column ordering export/readingorder.go
// applies to whole page elements.
func joinReadingOrder(cells []model.TextCell) string {
	sort.SliceStable(cells, func(i, j int) bool {
		bi, bj := cells[i].BoundingBox(), cells[j].BoundingBox()
		if bi.T != bj.T {
			return bi.T < bj.T
		}
		return bi.L < bj.L
	})
	out := ""
	for i, c := range cells {
		if i > 0 {
			out += " "
		}
		out += c.Text
	}
	return out
}
