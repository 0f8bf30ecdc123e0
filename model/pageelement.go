package model

// ContentLayer distinguishes body content from furniture (running
// headers/footers) that is excluded from the document body.
type ContentLayer int

const (
	ContentLayerBody ContentLayer = iota
	ContentLayerFurniture
)

// Provenance is the {page_no, bbox, charspan} triple attached to every
// post-assembly element.
type Provenance struct {
	PageNo   int
	BBox     BoundingBox
	CharSpan [2]int
}

// ListMarker describes a detected list-item marker.
type ListMarker struct {
	Marker     string
	Enumerated bool
}

// TextElement is the post-assembly typed view of a text-family
// cluster. Orig is the pre-sanitization joined text; Text is sanitized.
type TextElement struct {
	ID           int
	Ref          string
	PageNo       int
	Cluster      Cluster
	ContentLayer ContentLayer
	Prov         Provenance
	Orig         string
	Text         string
	Level        int
	Marker       *ListMarker

	// Enrichment is the optional VLM-decoded language guess (Code
	// elements) attached by a separate enrichment pass; it is always
	// empty for Formula elements and for any page no enrichment
	// backend ran over.
	Enrichment string
}

func (e *TextElement) ElementID() int      { return e.ID }
func (e *TextElement) PageNumber() int     { return e.PageNo }
func (e *TextElement) ClusterOf() Cluster  { return e.Cluster }
func (e *TextElement) TextContent() string { return e.Text }
func (e *TextElement) Layer() ContentLayer { return e.ContentLayer }
func (e *TextElement) Reference() string   { return e.Ref }

// TableElement is the post-assembly typed view of a table-family
// cluster, carrying the TableFormer grid output.
type TableElement struct {
	ID           int
	Ref          string
	PageNo       int
	Cluster      Cluster
	ContentLayer ContentLayer
	Prov         Provenance
	NumRows      int
	NumCols      int
	OTSLSeq      []string
	TableCells   []TableCell
	Captions     []string
	Footnotes    []string
}

func (e *TableElement) ElementID() int      { return e.ID }
func (e *TableElement) PageNumber() int     { return e.PageNo }
func (e *TableElement) ClusterOf() Cluster  { return e.Cluster }
func (e *TableElement) TextContent() string { return e.GetText() }
func (e *TableElement) Layer() ContentLayer { return e.ContentLayer }
func (e *TableElement) Reference() string   { return e.Ref }

// GetText concatenates every table cell's text in row-major order.
func (e *TableElement) GetText() string {
	out := make([]byte, 0, 64)
	for i, c := range e.TableCells {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, c.Text...)
	}
	return string(out)
}

// FigureElement is the post-assembly typed view of a figure-family
// cluster. OCRText is left nil when no OCR ran over the region — OCR
// text from cells inside the figure is emitted as separate orphan text
// items, not glued onto the figure.
type FigureElement struct {
	ID             int
	Ref            string
	PageNo         int
	Cluster        Cluster
	ContentLayer   ContentLayer
	Prov           Provenance
	OCRText        *string
	Classification string
	Captions       []string
	Footnotes      []string
}

func (e *FigureElement) ElementID() int      { return e.ID }
func (e *FigureElement) PageNumber() int     { return e.PageNo }
func (e *FigureElement) ClusterOf() Cluster  { return e.Cluster }
func (e *FigureElement) Layer() ContentLayer { return e.ContentLayer }
func (e *FigureElement) Reference() string   { return e.Ref }
func (e *FigureElement) TextContent() string {
	if e.OCRText != nil {
		return *e.OCRText
	}
	return ""
}

// ContainerElement is the post-assembly typed view of a container-
// family cluster (Form, KeyValueRegion).
type ContainerElement struct {
	ID           int
	Ref          string
	PageNo       int
	Cluster      Cluster
	ContentLayer ContentLayer
	Prov         Provenance
	Children     []PageElement
}

func (e *ContainerElement) ElementID() int      { return e.ID }
func (e *ContainerElement) PageNumber() int     { return e.PageNo }
func (e *ContainerElement) ClusterOf() Cluster  { return e.Cluster }
func (e *ContainerElement) Layer() ContentLayer { return e.ContentLayer }
func (e *ContainerElement) Reference() string   { return e.Ref }
func (e *ContainerElement) TextContent() string { return "" }

// PageElement is the tagged union {Text|Table|Figure|Container} every
// post-assembly element implements.
type PageElement interface {
	ElementID() int
	PageNumber() int
	ClusterOf() Cluster
	TextContent() string
	Layer() ContentLayer
	Reference() string
}

var (
	_ PageElement = (*TextElement)(nil)
	_ PageElement = (*TableElement)(nil)
	_ PageElement = (*FigureElement)(nil)
	_ PageElement = (*ContainerElement)(nil)
)
