package tabula

import (
	"github.com/docling-go/docling/export"
	"github.com/docling-go/docling/model"
	"github.com/docling-go/docling/stages"
)

// RunPipeline drives the full stage graph (Stage 1 through 9) over
// every page's predictions and assembles the resulting per-page
// elements into a single DoclingDocument, mirroring how the lower-
// level reader/layout path builds a model.Document today but against
// the newer PDFPage/PageElement types the stage graph and export
// package share.
//
// pages carries each page's precomputed cell/layout/table predictions
// (PagePredictions) plus its size; callers populate those from
// whatever upstream cell-extraction and layout-detection components
// they have wired in (geometric-only, or TableFormer/layoutmodel
// backends via cfg.Stage9/cfg.Stage1 when a page bitmap is available).
func RunPipeline(origin model.DocumentOrigin, pages []model.PDFPage, cfg stages.PipelineConfig) (*model.DoclingDocument, error) {
	inputs := make([]export.PageInput, 0, len(pages))
	for _, page := range pages {
		unit, err := stages.RunPage(page.Predictions, page.PageNo, page.Size.Height, cfg)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, export.PageInput{
			PageNo:   page.PageNo,
			Size:     page.Size,
			Elements: unit.Elements,
		})
	}
	return export.AssembleDocument(origin, inputs), nil
}
