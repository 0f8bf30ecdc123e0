// Package vlm provides contract-level, strictly optional enrichment of
// code and formula regions: given a region image and the label already
// assigned by the layout stage, produce a short natural-language or
// LaTeX-ish description. Nothing else in the pipeline depends on this
// package — a page assembles identically whether or not enrichment
// runs.
package vlm

import (
	"context"
	"errors"
	"image"

	"github.com/docling-go/docling/model"
)

// ErrUnsupportedLabel is returned when Enrich is asked to describe a
// label other than Code or Formula.
var ErrUnsupportedLabel = errors.New("vlm: enrichment only supports Code and Formula labels")

// Enricher is the capability trait an enrichment backend implements,
// mirroring the LayoutInference/TableFormer backend split: callers
// depend on this interface, not on which decoder is loaded.
type Enricher interface {
	// Enrich generates a description for a single region. prompt is
	// the decoder's conditioning text (see PromptFor).
	Enrich(ctx context.Context, img image.Image, prompt string) (string, error)
	// Close releases backend resources. Safe to call on a backend
	// with nothing to release.
	Close() error
}

// PromptFor returns the conditioning text a decoder backend should
// generate against, chosen by region kind rather than by the layout
// label alone — ClassifyRegion may override a Code label to Formula
// or vice versa when the layout model's guess looks wrong.
func PromptFor(kind RegionKind) string {
	switch kind {
	case RegionKindCode:
		return "Describe this code:"
	case RegionKindFormula:
		return "Transcribe this formula:"
	default:
		return ""
	}
}

// Describe runs the full contract: classify the region, and for a
// Code region only, ask the backend to greedily decode a language
// guess. It returns ("", nil) for any label outside Code/Formula, and
// for a region ClassifyRegion resolves to Formula — per contract,
// formula regions enrich to nothing — without an error in either case,
// since callers typically sweep every element on a page and only a
// few are enrichment candidates.
func Describe(ctx context.Context, backend Enricher, img image.Image, label model.Label) (string, error) {
	if label != model.LabelCode && label != model.LabelFormula {
		return "", nil
	}
	if ClassifyRegion(img, label) != RegionKindCode {
		return "", nil
	}
	return backend.Enrich(ctx, img, PromptFor(RegionKindCode))
}
