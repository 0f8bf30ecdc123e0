package tiffdoc

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/tiff"
)

func encodeSinglePageTIFF(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) % 256)})
		}
	}
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding test TIFF: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytesSinglePage(t *testing.T) {
	data := encodeSinglePageTIFF(t, 16, 12)

	r, err := FromBytes("test.tiff", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.PageCount() != 1 {
		t.Fatalf("expected 1 page, got %d", r.PageCount())
	}
	bounds := r.pages[0].Image.Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 12 {
		t.Fatalf("expected 16x12 decoded page, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestFromBytesRejectsNonTIFF(t *testing.T) {
	_, err := FromBytes("bad.tiff", []byte("not a tiff file at all"))
	if err == nil {
		t.Fatalf("expected an error decoding non-TIFF data")
	}
}

func TestDocumentProducesOnePagePerDirectory(t *testing.T) {
	data := encodeSinglePageTIFF(t, 8, 8)
	r, err := FromBytes("scan.tiff", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.pages[0].Text = "recognized text"

	doc, err := r.Document()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.PageCount() != 1 {
		t.Fatalf("expected 1 page in document, got %d", doc.PageCount())
	}
	page := doc.GetPage(1)
	if len(page.Elements) != 2 {
		t.Fatalf("expected an Image element and a Paragraph element, got %d", len(page.Elements))
	}
}

func TestSplitPagesFindsEveryIFDOffset(t *testing.T) {
	data := encodeSinglePageTIFF(t, 4, 4)
	pages, err := splitPages(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 IFD in a single-page TIFF, got %d", len(pages))
	}
	if len(pages[0]) != len(data) {
		t.Fatalf("expected patched copy to be the same length as the source file")
	}
}
