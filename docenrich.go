package tabula

import (
	"context"
	"image"

	"github.com/docling-go/docling/model"
	"github.com/docling-go/docling/vlm"
)

// EnrichDocument runs optional VLM enrichment over a document RunPipeline
// already produced, given the page bitmaps the layout model ran over
// (keyed by 1-based page number). It is a separate step from
// RunPipeline rather than folded into it, since enrichment needs a
// loaded decoder backend and a page bitmap per page, neither of which
// RunPipeline's page-prediction-only input carries, and since a host
// that has no use for code/formula descriptions should never pay for
// loading a decoder at all.
func EnrichDocument(ctx context.Context, doc *model.DoclingDocument, pageImages map[int]image.Image, backend vlm.Enricher) (int, error) {
	return vlm.EnrichDocument(ctx, backend, doc, pageImages)
}
