package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/tiff"
)

const testHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body><h1>Heading</h1><p>A paragraph of body text.</p></body>
</html>`

const emptyPDFFixture = `%PDF-1.4
1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
2 0 obj
<< /Type /Pages /Kids [] /Count 0 >>
endobj
xref
0 3
0000000000 65535 f
0000000009 00000 n
0000000058 00000 n
trailer
<< /Size 3 /Root 1 0 R >>
startxref
110
%%EOF`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestConvertHTMLMarkdown(t *testing.T) {
	path := writeFile(t, "doc.html", testHTML)

	out, err := Convert(path, ConvertOptions{Format: "markdown"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "paragraph of body text") {
		t.Fatalf("expected rendered body text in markdown output, got: %s", out)
	}
}

func TestConvertHTMLJSON(t *testing.T) {
	path := writeFile(t, "doc.html", testHTML)

	out, err := Convert(path, ConvertOptions{Format: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var asMap map[string]interface{}
	if err := json.Unmarshal([]byte(out), &asMap); err != nil {
		t.Fatalf("expected valid JSON output, got error %v for: %s", err, out)
	}
}

func TestConvertUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "doc.txt", "plain text, nothing recognizable")

	if _, err := Convert(path, ConvertOptions{Format: "markdown"}); err == nil {
		t.Fatalf("expected an error converting an unrecognized format")
	}
}

func TestConvertUnknownOutputFormat(t *testing.T) {
	path := writeFile(t, "doc.html", testHTML)

	if _, err := Convert(path, ConvertOptions{Format: "yaml"}); err == nil {
		t.Fatalf("expected an error for an unsupported output format")
	}
}

func TestConvertEmptyPDF(t *testing.T) {
	path := writeFile(t, "empty.pdf", emptyPDFFixture)

	out, err := Convert(path, ConvertOptions{Format: "markdown"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty markdown for a zero-page PDF, got: %q", out)
	}
}

func TestConvertEmptyPDFJSON(t *testing.T) {
	path := writeFile(t, "empty.pdf", emptyPDFFixture)

	out, err := Convert(path, ConvertOptions{Format: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var asMap map[string]interface{}
	if err := json.Unmarshal([]byte(out), &asMap); err != nil {
		t.Fatalf("expected valid JSON output, got error %v for: %s", err, out)
	}
}

func writeTestTIFF(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) % 256)})
		}
	}
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding test TIFF: %v", err)
	}
	path := filepath.Join(t.TempDir(), "scan.tiff")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing test TIFF: %v", err)
	}
	return path
}

func TestConvertTIFFWithoutOCR(t *testing.T) {
	path := writeTestTIFF(t)

	out, err := Convert(path, ConvertOptions{Format: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"Pages"`) {
		t.Fatalf("expected a Pages field in JSON output, got: %s", out)
	}
}

func writeTestVSDXFile(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"visio/pages/pages.xml": `<?xml version="1.0"?>
<Pages xmlns="http://schemas.microsoft.com/office/visio/2012/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <Page Name="Page-1" r:id="rId1"/>
</Pages>`,
		"visio/pages/_rels/pages.xml.rels": `<?xml version="1.0"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.microsoft.com/visio/2010/relationships/page" Target="page1.xml"/>
</Relationships>`,
		"visio/pages/page1.xml": `<?xml version="1.0"?>
<PageContents xmlns="http://schemas.microsoft.com/office/visio/2012/main">
  <Shapes><Shape ID="1" Type="Shape"><Text>Box label</Text></Shape></Shapes>
</PageContents>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	path := filepath.Join(t.TempDir(), "diagram.vsdx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing test vsdx: %v", err)
	}
	return path
}

func TestConvertVisioMarkdown(t *testing.T) {
	path := writeTestVSDXFile(t)

	out, err := Convert(path, ConvertOptions{Format: "markdown"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Box label") {
		t.Fatalf("expected shape text in markdown output, got: %s", out)
	}
}

func TestDetectFormatFallsBackToContentSniffing(t *testing.T) {
	path := writeFile(t, "noext", testHTML)

	out, err := Convert(path, ConvertOptions{Format: "markdown"})
	if err != nil {
		t.Fatalf("unexpected error converting extensionless HTML file: %v", err)
	}
	if !strings.Contains(out, "paragraph of body text") {
		t.Fatalf("expected rendered body text, got: %s", out)
	}
}
