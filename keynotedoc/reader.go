// Package keynotedoc provides Apple Keynote (.key) document parsing.
// A .key file is a ZIP container; this package walks it the same way
// odt/pptx walk their own ZIP+XML packages. Legacy Keynote ('09-era)
// archives store their content as plain XML (index.apxl) and are
// fully supported here. Modern Keynote archives store content as IWA
// (protobuf messages, Snappy-compressed) under Data/ and Index.zip —
// no protobuf or Snappy dependency exists anywhere in this project's
// reference corpus, so that format is detected and reported via
// ErrUnsupportedKeynoteArchive rather than guessed at.
package keynotedoc

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/docling-go/docling/model"
)

// ErrUnsupportedKeynoteArchive is returned when a .key file uses the
// modern IWA-based content format, which this package cannot decode.
var ErrUnsupportedKeynoteArchive = errors.New("keynotedoc: modern IWA-based Keynote archives are not supported; only legacy index.apxl XML archives can be parsed")

// TextRun is one run of text recognized within a slide (a title,
// body placeholder, or free text box).
type TextRun struct {
	Text string
}

// Slide is one legacy-format Keynote slide.
type Slide struct {
	Index int
	Runs  []TextRun
}

// Reader provides access to a legacy-format .key file's content.
type Reader struct {
	zipReader *zip.ReadCloser
	slides    []Slide
}

// Open opens a .key file for reading. It returns
// ErrUnsupportedKeynoteArchive if the archive uses the modern
// IWA-based format instead of legacy XML.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{zipReader: zr}
	indexName, err := r.findLegacyIndex()
	if err != nil {
		zr.Close()
		return nil, err
	}

	data, err := r.fileContent(indexName)
	if err != nil {
		zr.Close()
		return nil, fmt.Errorf("reading %s: %w", indexName, err)
	}

	slides, err := parseSlides(data)
	if err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing %s: %w", indexName, err)
	}
	r.slides = slides

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

// findLegacyIndex locates the legacy plain-XML index part. If the
// archive instead carries .iwa parts under Data/, this is a modern
// archive and ErrUnsupportedKeynoteArchive is returned.
func (r *Reader) findLegacyIndex() (string, error) {
	var legacyIndex string
	hasIWA := false

	for _, f := range r.zipReader.File {
		switch {
		case f.Name == "index.apxl" || f.Name == "index.apxl.xml":
			legacyIndex = f.Name
		case strings.HasSuffix(f.Name, ".iwa"):
			hasIWA = true
		}
	}

	if legacyIndex != "" {
		return legacyIndex, nil
	}
	if hasIWA {
		return "", ErrUnsupportedKeynoteArchive
	}
	return "", fmt.Errorf("no recognizable Keynote index found in archive")
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

// parseSlides token-scans the legacy index XML, treating any element
// named "slide" as a slide boundary (the iWork '09 schema's
// key:slide-list/key:slide) and any "span"/"p" element's character
// data within it as a text run — the same chardata-accumulation
// approach visiodoc.parseShapes uses for OOXML shape text, since both
// formats nest free-form text runs inside formatting wrapper elements
// this package doesn't need to model precisely.
func parseSlides(data []byte) ([]Slide, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	var slides []Slide
	var current *Slide
	var inRun bool
	var runBuf strings.Builder

	flushRun := func() {
		text := strings.TrimSpace(runBuf.String())
		if text != "" && current != nil {
			current.Runs = append(current.Runs, TextRun{Text: text})
		}
		runBuf.Reset()
	}

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
			case "slide":
				if current != nil {
					slides = append(slides, *current)
				}
				current = &Slide{Index: len(slides)}
			case "span", "p":
				inRun = true
				runBuf.Reset()
			}
		case xml.CharData:
			if inRun {
				runBuf.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "span", "p":
				flushRun()
				inRun = false
			case "slide":
				if current != nil {
					slides = append(slides, *current)
					current = nil
				}
			}
		}
	}
	if current != nil {
		slides = append(slides, *current)
	}
	return slides, nil
}

// PageCount returns the number of slides.
func (r *Reader) PageCount() int { return len(r.slides) }

// Document returns a model.Document with one page per slide, each
// text run becoming a Paragraph in the order it was encountered.
func (r *Reader) Document() (*model.Document, error) {
	doc := model.NewDocument()

	for _, slide := range r.slides {
		page := model.NewPage(720, 540) // standard 4:3 slide size in points, matching pptx's default
		for _, run := range slide.Runs {
			page.AddElement(&model.Paragraph{Text: run.Text})
		}
		doc.AddPage(page)
	}
	return doc, nil
}
