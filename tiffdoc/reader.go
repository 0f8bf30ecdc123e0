// Package tiffdoc provides multi-page TIFF document parsing, routing
// each page's rendered bitmap through OCR the same way a scanned PDF
// page would be, since a TIFF page carries no text layer of its own.
package tiffdoc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/docling-go/docling/model"
	"github.com/docling-go/docling/ocr"
)

// Page is one decoded TIFF directory entry (one "page" of the image).
type Page struct {
	Index int
	Image image.Image
	Text  string
}

// Reader provides access to a multi-page TIFF file's content.
type Reader struct {
	filename string
	pages    []Page
}

// Open reads and decodes every page (IFD) of a TIFF file.
//
// golang.org/x/image/tiff.Decode only ever decodes the first image
// file directory (IFD) it finds, so multi-page support here comes from
// splitPages: it walks the IFD chain to find each directory's byte
// offset, then hands tiff.Decode a patched copy of the file with the
// header's first-IFD pointer rewritten to that offset. Strip/tile data
// referenced from an IFD is always stored at absolute file offsets, so
// this patch is sufficient to decode each page independently without
// re-implementing the TIFF tag/strip format.
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading TIFF file: %w", err)
	}
	return FromBytes(filename, data)
}

// FromBytes decodes a TIFF file already read into memory.
func FromBytes(filename string, data []byte) (*Reader, error) {
	perPage, err := splitPages(data)
	if err != nil {
		return nil, err
	}
	if len(perPage) == 0 {
		return nil, fmt.Errorf("no image directories found in TIFF file")
	}

	r := &Reader{filename: filename}
	for i, raw := range perPage {
		img, err := tiff.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decoding TIFF page %d: %w", i+1, err)
		}
		r.pages = append(r.pages, Page{Index: i, Image: img})
	}
	return r, nil
}

// Close is a no-op; Reader holds no OS resources once Open returns.
func (r *Reader) Close() error { return nil }

// PageCount returns the number of decoded pages.
func (r *Reader) PageCount() int { return len(r.pages) }

// RunOCR recognizes text on every page via the given OCR client,
// storing the result on each Page. It is a separate step from Open
// (rather than run automatically) since ocr.New returns
// ErrOCRNotEnabled in a build without the "ocr" tag, and a caller that
// only wants page bitmaps shouldn't be forced through that error path.
func (r *Reader) RunOCR(client *ocr.Client) error {
	for i := range r.pages {
		var buf bytes.Buffer
		if err := png.Encode(&buf, r.pages[i].Image); err != nil {
			return fmt.Errorf("encoding TIFF page %d for OCR: %w", i+1, err)
		}
		text, err := client.RecognizeImage(buf.Bytes())
		if err != nil {
			continue // OCR failure on one page doesn't abort the document
		}
		r.pages[i].Text = text
	}
	return nil
}

// Document returns a model.Document with one page per TIFF directory
// entry, each page's OCR'd text (if RunOCR has been called) attached
// as a single Paragraph.
func (r *Reader) Document() (*model.Document, error) {
	doc := model.NewDocument()
	doc.Metadata.Title = strings.TrimSuffix(baseName(r.filename), ".tiff")

	for _, p := range r.pages {
		bounds := p.Image.Bounds()
		page := model.NewPage(float64(bounds.Dx()), float64(bounds.Dy()))

		img := &model.Image{
			Format: model.ImageFormatTIFF,
			BBox:   model.NewBBox(0, 0, float64(bounds.Dx()), float64(bounds.Dy())),
		}
		page.AddElement(img)

		if p.Text != "" {
			page.AddElement(&model.Paragraph{
				Text: p.Text,
				BBox: model.NewBBox(0, 0, float64(bounds.Dx()), float64(bounds.Dy())),
			})
		}
		doc.AddPage(page)
	}
	return doc, nil
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, "/\\"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ifdEntrySize is the fixed size of one TIFF tag entry regardless of
// its value type: tag(2) + type(2) + count(4) + value/offset(4).
const ifdEntrySize = 12

// splitPages walks a TIFF byte-order-tagged header's IFD chain and
// returns one byte slice per page: a copy of the whole file with the
// header's first-IFD-offset field (bytes 4-7) rewritten to point at
// that page's IFD. See Open's doc comment for why this is sufficient.
func splitPages(data []byte) ([][]byte, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("file too small to be a TIFF")
	}

	var order binary.ByteOrder
	switch string(data[0:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("not a TIFF file (bad byte-order marker)")
	}
	if order.Uint16(data[2:4]) != 42 {
		return nil, fmt.Errorf("not a TIFF file (bad magic number)")
	}

	var pages [][]byte
	offset := order.Uint32(data[4:8])
	seen := make(map[uint32]bool)
	for offset != 0 {
		if seen[offset] || int(offset)+2 > len(data) {
			break // malformed or cyclic IFD chain; stop rather than loop forever
		}
		seen[offset] = true

		entryCount := int(order.Uint16(data[offset : offset+2]))
		nextOffsetPos := int(offset) + 2 + entryCount*ifdEntrySize
		if nextOffsetPos+4 > len(data) {
			break
		}

		patched := make([]byte, len(data))
		copy(patched, data)
		order.PutUint32(patched[4:8], offset)
		pages = append(pages, patched)

		offset = order.Uint32(data[nextOffsetPos : nextOffsetPos+4])
	}
	return pages, nil
}
