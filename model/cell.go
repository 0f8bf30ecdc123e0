package model

// TextCell is a word- or line-level fragment of extracted text with a
// (possibly rotated) rect, an optional OCR confidence, and style flags.
type TextCell struct {
	Index      int
	Text       string
	Rect       BoundingRectangle
	Confidence *float64
	FromOCR    bool
	IsBold     bool
	IsItalic   bool
}

// BoundingBox projects the cell's rect to an axis-aligned box.
func (c TextCell) BoundingBox() BoundingBox { return c.Rect.ToBoundingBox() }

// ConfidenceOrDefault returns Confidence if set, else 1.0 — the PDF-
// layer default (cells that didn't come from OCR are fully trusted).
func (c TextCell) ConfidenceOrDefault() float64 {
	if c.Confidence != nil {
		return *c.Confidence
	}
	return 1.0
}

// SimpleTextCell is the axis-aligned variant external PDF/backend
// extraction emits before it is lifted into a full TextCell.
type SimpleTextCell struct {
	Index      int
	Text       string
	BBox       BoundingBox
	Confidence *float64
	FromOCR    bool
	IsBold     bool
	IsItalic   bool
}

// ToTextCell lifts a SimpleTextCell into a TextCell via the corner-
// expansion helper (an axis-aligned rect has no rotation to recover).
func (s SimpleTextCell) ToTextCell() TextCell {
	return TextCell{
		Index:      s.Index,
		Text:       s.Text,
		Rect:       RectFromBoundingBox(s.BBox),
		Confidence: s.Confidence,
		FromOCR:    s.FromOCR,
		IsBold:     s.IsBold,
		IsItalic:   s.IsItalic,
	}
}

// NewPDFTextCell builds a TextCell for a cell produced by the PDF text
// layer (not OCR): confidence defaults to 1.0, FromOCR is false.
func NewPDFTextCell(index int, text string, bbox BoundingBox) TextCell {
	return SimpleTextCell{Index: index, Text: text, BBox: bbox}.ToTextCell()
}

// NewOCRTextCell builds a TextCell for a cell produced by an OCR
// engine, carrying its reported confidence.
func NewOCRTextCell(index int, text string, bbox BoundingBox, confidence float64) TextCell {
	c := confidence
	return SimpleTextCell{Index: index, Text: text, BBox: bbox, FromOCR: true, Confidence: &c}.ToTextCell()
}
