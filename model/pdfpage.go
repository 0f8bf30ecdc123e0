package model

// PDFPage is a single page as it flows through the stage graph: the
// raw cell/cluster predictions from earlier stages, plus the
// AssembledUnit later stages build from them. Distinct from Page
// (model/page.go), which is the simpler per-page type the Office/HTML
// backends populate directly without running a stage graph.
type PDFPage struct {
	PageNo      int
	Size        PageSize
	Predictions PagePredictions
	Assembled   AssembledUnit
}

// PageSize is a page's dimension in PDF points, TopLeft-origin.
type PageSize struct {
	Width  float64
	Height float64
}

// PagePredictions holds the per-page outputs of the upstream stages
// (text cell extraction, layout-model clusters, table-structure
// recognition) that Stage 8/9 consume to build the AssembledUnit.
type PagePredictions struct {
	Cells      []TextCell
	Layout     []Cluster
	Tables     []Cluster
	OCRCells   []TextCell
}

// AssembledUnit is a page's final typed elements plus the subset that
// belongs to the document body versus running furniture, in reading
// order.
type AssembledUnit struct {
	Elements []PageElement
	Body     []PageElement
	Headers  []PageElement
}

// NewPDFPage builds an empty PDFPage for the given 1-indexed page
// number and size.
func NewPDFPage(pageNo int, size PageSize) *PDFPage {
	return &PDFPage{PageNo: pageNo, Size: size}
}

// ContentBBox returns the full-page box in the page's own coordinate
// origin — the stage graph works TopLeft and converts to BottomLeft
// only at export time, so unlike Page.ContentBBox there is no header/
// footer trim here.
func (p *PDFPage) ContentBBox() BoundingBox {
	return NewBoundingBox(0, 0, p.Size.Width, p.Size.Height, TopLeft)
}
