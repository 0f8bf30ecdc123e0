// Package tabula provides a fluent API for extracting text, tables, and other
// content from PDF files.
//
// Basic usage:
//
//	text, err := tabula.Open("document.pdf").Text()
//
// With options:
//
//	text, err := tabula.Open("report.pdf").
//	    Pages(1, 2, 3).
//	    ExcludeHeaders().
//	    ExcludeFooters().
//	    Text()
//
// For advanced use cases, the lower-level reader package is also available.
package tabula

import (
	"strconv"
	"strings"

	"github.com/docling-go/docling/reader"
)

// Warning describes a non-fatal issue encountered during extraction —
// a page that failed to parse, a cell the table detector couldn't
// place, an embedded image that couldn't be decoded — that didn't
// stop the overall operation from returning a result.
type Warning struct {
	Message string
	Page    int // 0 when not page-specific
}

// FormatWarnings joins warnings into a single human-readable string,
// one per line, for quick logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		if w.Page > 0 {
			lines[i] = fmtPageWarning(w.Page, w.Message)
		} else {
			lines[i] = w.Message
		}
	}
	return strings.Join(lines, "\n")
}

func fmtPageWarning(page int, message string) string {
	return "page " + strconv.Itoa(page) + ": " + message
}

// MustText is a helper for Text()'s three-value return, panicking if
// err is non-nil and discarding warnings. Intended for scripts and
// tests where warnings aren't worth inspecting.
//
// Example:
//
//	text := tabula.MustText(tabula.Open("document.pdf").Text())
func MustText(text string, warnings []Warning, err error) string {
	if err != nil {
		panic(err)
	}
	return text
}

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The returned Extractor must be closed when done, either explicitly via Close()
// or implicitly when calling a terminal operation like Text().
//
// Example:
//
//	text, err := tabula.Open("document.pdf").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened reader.Reader.
// This is useful when you need more control over the reader lifecycle.
// Note: The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	text, err := tabula.FromReader(r).Text()
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	text := tabula.Must(tabula.Open("document.pdf").Text())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
