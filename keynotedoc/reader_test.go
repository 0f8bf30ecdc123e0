package keynotedoc

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTestKeyFile(t *testing.T, files map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
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

	path := filepath.Join(t.TempDir(), "test.key")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing test key file: %v", err)
	}
	return path
}

const legacyIndex = `<?xml version="1.0"?>
<key:presentation xmlns:key="http://developer.apple.com/namespaces/keynote2" xmlns:sf="http://developer.apple.com/namespaces/sf">
  <key:slide-list>
    <key:slide>
      <sf:p>Welcome</sf:p>
    </key:slide>
    <key:slide>
      <sf:p>Agenda</sf:p>
      <sf:span>Item one</sf:span>
    </key:slide>
  </key:slide-list>
</key:presentation>`

func TestOpenParsesLegacySlides(t *testing.T) {
	path := writeTestKeyFile(t, map[string]string{"index.apxl": legacyIndex})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	if r.PageCount() != 2 {
		t.Fatalf("expected 2 slides, got %d", r.PageCount())
	}
	if len(r.slides[1].Runs) != 2 {
		t.Fatalf("expected 2 text runs on slide 2, got %d", len(r.slides[1].Runs))
	}
}

func TestOpenReturnsUnsupportedForModernArchive(t *testing.T) {
	path := writeTestKeyFile(t, map[string]string{"Data/Slide-1.iwa": "\x00\x01\x02"})

	_, err := Open(path)
	if !errors.Is(err, ErrUnsupportedKeynoteArchive) {
		t.Fatalf("expected ErrUnsupportedKeynoteArchive, got %v", err)
	}
}

func TestDocumentEmitsOneParagraphPerRun(t *testing.T) {
	path := writeTestKeyFile(t, map[string]string{"index.apxl": legacyIndex})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer r.Close()

	doc, err := r.Document()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("expected 2 document pages, got %d", doc.PageCount())
	}
	if len(doc.GetPage(2).Elements) != 2 {
		t.Fatalf("expected 2 elements on page 2, got %d", len(doc.GetPage(2).Elements))
	}
}
