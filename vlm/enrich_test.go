package vlm

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/docling-go/docling/model"
)

func solidPageImage(width, height int, codeRegion image.Rectangle) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	barWidth, gap := 3, 2
	for x := codeRegion.Min.X; x < codeRegion.Max.X; x++ {
		inBar := (x-codeRegion.Min.X)%(barWidth+gap) < barWidth
		if !inBar {
			continue
		}
		for y := codeRegion.Min.Y; y < codeRegion.Max.Y; y++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	return img
}

func TestEnrichPageSetsEnrichmentOnCodeElements(t *testing.T) {
	pageSize := model.PageSize{Width: 200, Height: 200}
	region := image.Rect(10, 10, 190, 40)
	page := solidPageImage(200, 200, region)

	te := &model.TextElement{
		ID: 1, PageNo: 1,
		Cluster: model.Cluster{Label: model.LabelCode, BBox: model.BoundingBox{L: 10, T: 10, R: 190, B: 40}},
	}
	elements := []model.PageElement{te}

	backend := NewNativeEnricher(ZeroDecoderWeights())
	defer backend.Close()

	n, err := EnrichPage(context.Background(), backend, page, pageSize, elements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 element enriched, got %d", n)
	}
	if te.Enrichment == "" {
		t.Fatalf("expected Enrichment to be set on the code element")
	}
}

func TestEnrichPageSkipsNonCodeFormulaElements(t *testing.T) {
	pageSize := model.PageSize{Width: 200, Height: 200}
	page := solidPageImage(200, 200, image.Rect(0, 0, 0, 0))

	te := &model.TextElement{
		ID: 1, PageNo: 1,
		Cluster: model.Cluster{Label: model.LabelText, BBox: model.BoundingBox{L: 10, T: 10, R: 190, B: 40}},
	}
	elements := []model.PageElement{te}

	backend := NewNativeEnricher(ZeroDecoderWeights())
	defer backend.Close()

	n, err := EnrichPage(context.Background(), backend, page, pageSize, elements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 elements enriched for a non-code/formula label, got %d", n)
	}
	if te.Enrichment != "" {
		t.Fatalf("expected Enrichment to stay blank for a non-code/formula element")
	}
}

func TestEnrichDocumentGroupsByPage(t *testing.T) {
	region := image.Rect(0, 0, 100, 30)
	img1 := solidPageImage(100, 100, region)

	doc := model.NewDoclingDocument(model.DocumentOrigin{Filename: "test.pdf"})
	doc.AddPage(model.NewPDFPage(1, model.PageSize{Width: 100, Height: 100}))
	doc.AddText(&model.TextElement{
		ID: 1, PageNo: 1,
		Cluster: model.Cluster{Label: model.LabelCode, BBox: model.BoundingBox{L: 0, T: 0, R: 100, B: 30}},
	})

	backend := NewNativeEnricher(ZeroDecoderWeights())
	defer backend.Close()

	n, err := EnrichDocument(context.Background(), backend, doc, map[int]image.Image{1: img1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 element enriched, got %d", n)
	}
}
