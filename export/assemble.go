package export

import (
	"sort"

	"github.com/docling-go/docling/model"
)

// PageInput is one page's assembled elements plus its size, the unit
// AssembleDocument consumes.
type PageInput struct {
	PageNo   int
	Size     model.PageSize
	Elements []model.PageElement
}

// AssembleDocument builds the cross-page DoclingDocument from every
// page's Stage 9 output: orders each page, promotes captions/
// footnotes into their parent's arrays, buckets furniture away from
// body, converts bboxes to BottomLeft origin for export, and appends
// any otherwise-unreferenced Body element afterward so nothing is lost.
func AssembleDocument(origin model.DocumentOrigin, pages []PageInput) *model.DoclingDocument {
	doc := model.NewDoclingDocument(origin)

	sorted := make([]PageInput, len(pages))
	copy(sorted, pages)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PageNo < sorted[j].PageNo })

	appended := make(map[int]bool)

	for _, page := range sorted {
		doc.AddPage(model.NewPDFPage(page.PageNo, page.Size))

		ordered := OrderPage(page.Elements)
		promo := newPromotions()
		promo.collectPromotions(ordered)

		for _, e := range ordered {
			if promo.skip[e.ElementID()] {
				continue
			}
			ref := addElement(doc, e, page.Size.Height, promo)
			if ref == "" {
				continue
			}
			appended[e.ElementID()] = true
			if e.Layer() == model.ContentLayerBody {
				doc.AppendBody(ref)
			}
		}

		// Every otherwise-unreferenced Body element is appended after
		// the ordered pass, deterministic by id, to prevent content
		// loss (an element type the ordered pass above doesn't already
		// cover, or a future element kind).
		ids := make([]int, 0, len(page.Elements))
		byID := make(map[int]model.PageElement, len(page.Elements))
		for _, e := range page.Elements {
			if appended[e.ElementID()] || promo.skip[e.ElementID()] {
				continue
			}
			ids = append(ids, e.ElementID())
			byID[e.ElementID()] = e
		}
		sort.Ints(ids)
		for _, id := range ids {
			e := byID[id]
			ref := addElement(doc, e, page.Size.Height, promo)
			if ref != "" && e.Layer() == model.ContentLayerBody {
				doc.AppendBody(ref)
			}
			appended[id] = true
		}
	}

	return doc
}

// addElement converts e's provenance bbox to BottomLeft origin, adds
// it to the appropriate flat array, and resolves any promoted
// captions/footnotes into the parent's own arrays (as plain text,
// recursively converted the same way). Returns the new element's
// reference path, or "" if e's kind has no exported representation
// (page headers/footers are still exported, under the furniture
// content layer, to satisfy "every element... present" completeness).
func addElement(doc *model.DoclingDocument, e model.PageElement, pageHeight float64, promo *promotions) string {
	switch v := e.(type) {
	case *model.TextElement:
		cp := *v
		cp.Prov.BBox = cp.Prov.BBox.ToBottomLeftOrigin(pageHeight)
		added := doc.AddText(&cp)
		return added.Ref
	case *model.TableElement:
		cp := *v
		cp.Prov.BBox = cp.Prov.BBox.ToBottomLeftOrigin(pageHeight)
		for _, c := range promo.captions[e.ElementID()] {
			cp.Captions = append(cp.Captions, c.TextContent())
		}
		for _, f := range promo.footnotes[e.ElementID()] {
			cp.Footnotes = append(cp.Footnotes, f.TextContent())
		}
		added := doc.AddTable(&cp)
		return added.Ref
	case *model.FigureElement:
		cp := *v
		cp.Prov.BBox = cp.Prov.BBox.ToBottomLeftOrigin(pageHeight)
		for _, c := range promo.captions[e.ElementID()] {
			cp.Captions = append(cp.Captions, c.TextContent())
		}
		for _, f := range promo.footnotes[e.ElementID()] {
			cp.Footnotes = append(cp.Footnotes, f.TextContent())
		}
		added := doc.AddPicture(&cp)
		return added.Ref
	case *model.ContainerElement:
		cp := *v
		cp.Prov.BBox = cp.Prov.BBox.ToBottomLeftOrigin(pageHeight)
		added := doc.AddGroup(&cp)
		return added.Ref
	default:
		return ""
	}
}
