// Package visiodoc provides Visio (.vsdx) document parsing. A .vsdx
// file is OOXML — a ZIP container of XML parts — structurally
// identical to .docx/.pptx, so this reader walks it the same way
// pptx.Reader walks a presentation: list the pages from the package's
// page-index part, then token-scan each page part for shape text.
package visiodoc

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/docling-go/docling/model"
)

// Shape is one Visio shape's recognized text content.
type Shape struct {
	ID   string
	Type string
	Text string
}

// Page is one Visio drawing page.
type Page struct {
	Name   string
	Shapes []Shape
}

// Reader provides access to a .vsdx file's content.
type Reader struct {
	zipReader *zip.ReadCloser
	pages     []Page
	coreProps corePropertiesXML
}

type pagesManifestXML struct {
	XMLName xml.Name `xml:"Pages"`
	Pages   []struct {
		Name     string `xml:"Name,attr"`
		RelID    string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"Page"`
}

type relationshipsXML struct {
	XMLName       xml.Name `xml:"Relationships"`
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type corePropertiesXML struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Creator string   `xml:"creator"`
	Subject string   `xml:"subject"`
}

// Open opens a .vsdx file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{zipReader: zr}
	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}
	if err := r.parsePages(); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing pages: %w", err)
	}
	r.parseCoreProperties()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

func (r *Reader) validate() error {
	names := make(map[string]bool)
	for _, f := range r.zipReader.File {
		names[f.Name] = true
	}
	if !names["visio/pages/pages.xml"] {
		return fmt.Errorf("missing required file: visio/pages/pages.xml")
	}
	return nil
}

func (r *Reader) fileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parsePages resolves the page manifest's relationship IDs to their
// part paths and parses each page part in manifest order. If the
// manifest or its relationships can't be resolved, it falls back to
// every visio/pages/pageN.xml part found in the archive, sorted by
// name, so a package with an unusual relationship layout still yields
// content instead of an empty document.
func (r *Reader) parsePages() error {
	manifestData, err := r.fileContent("visio/pages/pages.xml")
	if err != nil {
		return err
	}
	var manifest pagesManifestXML
	_ = xml.Unmarshal(manifestData, &manifest)

	relTargets := r.pageRelationshipTargets()

	if len(manifest.Pages) > 0 && len(relTargets) > 0 {
		for _, p := range manifest.Pages {
			target, ok := relTargets[p.RelID]
			if !ok {
				continue
			}
			if err := r.parsePagePart("visio/pages/"+target, p.Name); err != nil {
				return err
			}
		}
		if len(r.pages) > 0 {
			return nil
		}
	}

	return r.parsePagesByGlob()
}

func (r *Reader) pageRelationshipTargets() map[string]string {
	data, err := r.fileContent("visio/pages/_rels/pages.xml.rels")
	if err != nil {
		return nil
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil
	}
	out := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		out[rel.ID] = rel.Target
	}
	return out
}

func (r *Reader) parsePagesByGlob() error {
	var names []string
	for _, f := range r.zipReader.File {
		if strings.HasPrefix(f.Name, "visio/pages/page") && strings.HasSuffix(f.Name, ".xml") {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	for i, name := range names {
		if err := r.parsePagePart(name, fmt.Sprintf("Page-%d", i+1)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) parsePagePart(partPath, pageName string) error {
	data, err := r.fileContent(partPath)
	if err != nil {
		return nil // a page listed in the manifest but missing from the archive is skipped, not fatal
	}
	shapes, err := parseShapes(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", partPath, err)
	}
	r.pages = append(r.pages, Page{Name: pageName, Shapes: shapes})
	return nil
}

// parseShapes token-scans a page part for <Shape> elements, capturing
// the character data of each shape's nested <Text> element (Visio
// stores run-level formatting as children of <Text>, so the plain
// text is the concatenation of every CharData token between <Text>
// and its matching </Text>).
func parseShapes(data []byte) ([]Shape, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	var shapes []Shape
	var current *Shape
	var inText bool
	var textBuf strings.Builder

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Shape":
				s := Shape{}
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "ID":
						s.ID = attr.Value
					case "Type":
						s.Type = attr.Value
					}
				}
				current = &s
			case "Text":
				if current != nil {
					inText = true
					textBuf.Reset()
				}
			}
		case xml.CharData:
			if inText {
				textBuf.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "Text":
				if current != nil {
					current.Text = strings.TrimSpace(textBuf.String())
				}
				inText = false
			case "Shape":
				if current != nil {
					shapes = append(shapes, *current)
					current = nil
				}
			}
		}
	}
	return shapes, nil
}

func (r *Reader) parseCoreProperties() {
	data, err := r.fileContent("docProps/core.xml")
	if err != nil {
		return
	}
	_ = xml.Unmarshal(data, &r.coreProps)
}

// PageCount returns the number of drawing pages.
func (r *Reader) PageCount() int { return len(r.pages) }

// Metadata returns the document's core properties.
func (r *Reader) Metadata() model.Metadata {
	return model.Metadata{
		Title:   r.coreProps.Title,
		Author:  r.coreProps.Creator,
		Subject: r.coreProps.Subject,
	}
}

// Document returns a model.Document with one page per drawing page and
// one Paragraph per shape carrying text; shapes of Type "Picture" (or
// containing no text) become an Image placeholder element instead, the
// same Figure-labeled treatment SPEC_FULL.md's backend expansion calls
// for diagram pages.
func (r *Reader) Document() (*model.Document, error) {
	doc := model.NewDocument()
	doc.Metadata = r.Metadata()

	for _, vp := range r.pages {
		page := model.NewPage(850, 1100) // US Letter default; Visio pages carry their own PageSheet size, not modeled here
		for _, s := range vp.Shapes {
			if s.Text == "" {
				page.AddElement(&model.Image{Format: model.ImageFormatUnknown, AltText: s.Type})
				continue
			}
			page.AddElement(&model.Paragraph{Text: s.Text})
		}
		doc.AddPage(page)
	}
	return doc, nil
}
