package model

import "strconv"

// DoclingDocument is the cross-page export aggregate the pipeline
// produces once all pages have been assembled: flat arrays of every
// text/table/picture item plus a body group that orders them by
// reading order, independent of which page each came from.
type DoclingDocument struct {
	SchemaName string
	Version    string
	Origin     DocumentOrigin

	Texts    []*TextElement
	Tables   []*TableElement
	Pictures []*FigureElement
	Groups   []*ContainerElement

	Body []BodyRef

	Pages map[int]*PDFPage
}

// DocumentOrigin records where a DoclingDocument came from.
type DocumentOrigin struct {
	Filename   string
	MimeType   string
	BinaryHash uint64
}

// BodyRef is one entry of the body's reading-order list: a reference
// path of the form "#/texts/3", "#/tables/0", "#/pictures/1".
type BodyRef struct {
	Ref string
}

const (
	docSchemaName = "DoclingDocument"
	docVersion    = "1.7.0"
)

// NewDoclingDocument builds an empty DoclingDocument for the given
// origin.
func NewDoclingDocument(origin DocumentOrigin) *DoclingDocument {
	return &DoclingDocument{
		SchemaName: docSchemaName,
		Version:    docVersion,
		Origin:     origin,
		Pages:      make(map[int]*PDFPage),
	}
}

// AddText appends a text element, sets its reference path, and
// returns it.
func (d *DoclingDocument) AddText(e *TextElement) *TextElement {
	e.Ref = refPath("texts", len(d.Texts))
	d.Texts = append(d.Texts, e)
	return e
}

// AddTable appends a table element, sets its reference path, and
// returns it.
func (d *DoclingDocument) AddTable(e *TableElement) *TableElement {
	e.Ref = refPath("tables", len(d.Tables))
	d.Tables = append(d.Tables, e)
	return e
}

// AddPicture appends a figure element, sets its reference path, and
// returns it.
func (d *DoclingDocument) AddPicture(e *FigureElement) *FigureElement {
	e.Ref = refPath("pictures", len(d.Pictures))
	d.Pictures = append(d.Pictures, e)
	return e
}

// AddGroup appends a container element, sets its reference path, and
// returns it.
func (d *DoclingDocument) AddGroup(e *ContainerElement) *ContainerElement {
	e.Ref = refPath("groups", len(d.Groups))
	d.Groups = append(d.Groups, e)
	return e
}

// AppendBody records a reference path, in reading order, as part of
// the document body.
func (d *DoclingDocument) AppendBody(ref string) {
	d.Body = append(d.Body, BodyRef{Ref: ref})
}

func refPath(kind string, index int) string {
	return "#/" + kind + "/" + strconv.Itoa(index)
}

// PageCount returns the number of pages recorded in the document.
func (d *DoclingDocument) PageCount() int {
	return len(d.Pages)
}

// AddPage records a page's assembled content under its page number.
func (d *DoclingDocument) AddPage(p *PDFPage) {
	d.Pages[p.PageNo] = p
}
