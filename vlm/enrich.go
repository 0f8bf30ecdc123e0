package vlm

import (
	"context"
	"image"

	"github.com/disintegration/imaging"

	"github.com/docling-go/docling/model"
)

// EnrichPage walks a page's assembled elements, crops the page bitmap
// to each Code/Formula TextElement's bbox, and runs Describe over the
// crop, storing the result in TextElement.Enrichment. It is the one
// real call site VLM enrichment needs: everything else in the pipeline
// runs identically whether or not this is ever called. pageImage must
// be the same bitmap the layout model ran over, and pageSize the
// page's size in points, so bbox coordinates (point space) can be
// scaled to the bitmap's pixel space.
//
// EnrichPage returns the number of elements it enriched. A crop or
// decode failure for a single element is not fatal — it logs nothing
// and leaves that element's Enrichment blank, consistent with the
// rest of the pipeline's stage-local failure containment.
func EnrichPage(ctx context.Context, backend Enricher, pageImage image.Image, pageSize model.PageSize, elements []model.PageElement) (int, error) {
	if pageSize.Width <= 0 || pageSize.Height <= 0 {
		return 0, nil
	}
	bounds := pageImage.Bounds()
	scaleX := float64(bounds.Dx()) / pageSize.Width
	scaleY := float64(bounds.Dy()) / pageSize.Height

	enriched := 0
	for _, el := range elements {
		te, ok := el.(*model.TextElement)
		if !ok {
			continue
		}
		label := te.Cluster.Label
		if label != model.LabelCode && label != model.LabelFormula {
			continue
		}

		region := pixelRegion(te.Cluster.BBox, bounds, scaleX, scaleY)
		if region.Dx() <= 0 || region.Dy() <= 0 {
			continue
		}

		crop := imaging.Crop(pageImage, region)
		desc, err := Describe(ctx, backend, crop, label)
		if err != nil {
			return enriched, err
		}
		if desc != "" {
			te.Enrichment = desc
			enriched++
		}
	}
	return enriched, nil
}

// pixelRegion converts a TopLeft-origin, point-space bbox into a
// pixel-space rectangle clamped to the page bitmap's bounds.
func pixelRegion(bb model.BoundingBox, bounds image.Rectangle, scaleX, scaleY float64) image.Rectangle {
	l := bounds.Min.X + int(bb.L*scaleX)
	t := bounds.Min.Y + int(bb.T*scaleY)
	r := bounds.Min.X + int(bb.R*scaleX)
	b := bounds.Min.Y + int(bb.B*scaleY)
	return image.Rect(l, t, r, b).Intersect(bounds)
}

// EnrichDocument runs EnrichPage over every page of doc that has a
// corresponding entry in pageImages, grouping doc.Texts by PageNo.
// Pages with no bitmap supplied (the common case — enrichment is
// strictly optional) are left untouched.
func EnrichDocument(ctx context.Context, backend Enricher, doc *model.DoclingDocument, pageImages map[int]image.Image) (int, error) {
	byPage := make(map[int][]model.PageElement)
	for _, te := range doc.Texts {
		byPage[te.PageNo] = append(byPage[te.PageNo], te)
	}

	total := 0
	for pageNo, elements := range byPage {
		img, ok := pageImages[pageNo]
		if !ok {
			continue
		}
		page, ok := doc.Pages[pageNo]
		if !ok {
			continue
		}
		n, err := EnrichPage(ctx, backend, img, page.Size, elements)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
