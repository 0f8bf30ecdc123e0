package main

import (
	"encoding/json"
	"fmt"
	"os"

	tabula "github.com/docling-go/docling"
	"github.com/docling-go/docling/docx"
	"github.com/docling-go/docling/epubdoc"
	"github.com/docling-go/docling/export"
	"github.com/docling-go/docling/format"
	"github.com/docling-go/docling/htmldoc"
	"github.com/docling-go/docling/keynotedoc"
	"github.com/docling-go/docling/model"
	"github.com/docling-go/docling/ocr"
	"github.com/docling-go/docling/odt"
	"github.com/docling-go/docling/pdfbackend"
	"github.com/docling-go/docling/pptx"
	"github.com/docling-go/docling/rag"
	"github.com/docling-go/docling/stages"
	"github.com/docling-go/docling/tiffdoc"
	"github.com/docling-go/docling/visiodoc"
	"github.com/docling-go/docling/xlsx"
)

// ConvertOptions configures a single Convert call.
type ConvertOptions struct {
	// Format is "markdown" (default) or "json".
	Format string
	// OCR enables the OCR pass for backends that support one
	// (currently only tiffdoc, since a bare TIFF page carries no text
	// layer of its own).
	OCR bool
}

// Convert reads filename, dispatches to the format-matching backend,
// and renders the result as Markdown or JSON.
func Convert(filename string, opts ConvertOptions) (string, error) {
	f := detectFormat(filename)

	if f == format.PDF {
		return convertPDF(filename, opts)
	}

	doc, err := convertToLegacyDocument(f, filename, opts)
	if err != nil {
		return "", err
	}

	switch opts.Format {
	case "", "markdown":
		return rag.ChunkDocument(doc).ToMarkdown(), nil
	case "json":
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding document as JSON: %w", err)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

// detectFormat tries the filename extension first, falling back to
// content sniffing (magic bytes / ZIP part inspection) when the
// extension is missing or unrecognized.
func detectFormat(filename string) format.Format {
	if f := format.Detect(filename); f != format.Unknown {
		return f
	}
	fh, err := os.Open(filename)
	if err != nil {
		return format.Unknown
	}
	defer fh.Close()
	stat, err := fh.Stat()
	if err != nil {
		return format.Unknown
	}
	f, err := format.DetectFromReader(fh, stat.Size())
	if err != nil {
		return format.Unknown
	}
	return f
}

// convertPDF runs the full stage graph (via pdfbackend + tabula.RunPipeline)
// and renders the assembled DoclingDocument.
func convertPDF(filename string, opts ConvertOptions) (string, error) {
	pages, err := pdfbackend.LoadPages(filename)
	if err != nil {
		return "", fmt.Errorf("loading PDF pages: %w", err)
	}

	doc, err := tabula.RunPipeline(model.DocumentOrigin{Filename: filename}, pages, stages.DefaultPipelineConfig())
	if err != nil {
		return "", fmt.Errorf("running pipeline: %w", err)
	}

	switch opts.Format {
	case "", "markdown":
		return export.ToMarkdown(doc), nil
	case "json":
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding document as JSON: %w", err)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

// convertToLegacyDocument dispatches every non-PDF backend, each of
// which already produces a model.Document directly (none of them
// route through the Stage-graph/PagePredictions path PDFs use).
func convertToLegacyDocument(f format.Format, filename string, opts ConvertOptions) (*model.Document, error) {
	switch f {
	case format.DOCX:
		r, err := docx.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("opening DOCX: %w", err)
		}
		defer r.Close()
		return r.Document()

	case format.ODT:
		r, err := odt.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("opening ODT: %w", err)
		}
		defer r.Close()
		return r.Document()

	case format.PPTX:
		r, err := pptx.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("opening PPTX: %w", err)
		}
		defer r.Close()
		return r.Document()

	case format.XLSX:
		r, err := xlsx.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("opening XLSX: %w", err)
		}
		defer r.Close()
		return r.Document()

	case format.HTML:
		r, err := htmldoc.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("opening HTML: %w", err)
		}
		defer r.Close()
		return r.Document()

	case format.EPUB:
		r, err := epubdoc.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("opening EPUB: %w", err)
		}
		defer r.Close()
		return r.Document()

	case format.KEYNOTE:
		r, err := keynotedoc.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("opening Keynote archive: %w", err)
		}
		defer r.Close()
		return r.Document()

	case format.VISIO:
		r, err := visiodoc.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("opening Visio drawing: %w", err)
		}
		defer r.Close()
		return r.Document()

	case format.TIFF:
		return convertTIFF(filename, opts)

	default:
		return nil, fmt.Errorf("unrecognized or unsupported file format for %q", filename)
	}
}

func convertTIFF(filename string, opts ConvertOptions) (*model.Document, error) {
	r, err := tiffdoc.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening TIFF: %w", err)
	}
	defer r.Close()

	if opts.OCR {
		client, err := ocr.New()
		if err != nil {
			return nil, fmt.Errorf("initializing OCR client: %w", err)
		}
		if err := r.RunOCR(client); err != nil {
			return nil, fmt.Errorf("running OCR over TIFF pages: %w", err)
		}
	}

	return r.Document()
}
