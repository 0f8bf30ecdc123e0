package export

import (
	"math"

	"github.com/docling-go/docling/model"
)

// findParent locates the Table/Figure element on the same page whose
// bbox is geometrically closest to cand (vertical gap, tiebroken by
// horizontal centroid distance), among elements that horizontally
// overlap cand at all. Returns nil if no table/figure is present.
//
// The specification leaves the caption/footnote-to-parent association
// rule unstated beyond "promoted... immediately after their parent" —
// nearest-neighbor-by-geometry is the natural reading matching how
// captions sit directly above/below the figure or table they describe.
func findParent(cand model.PageElement, candidates []model.PageElement) model.PageElement {
	cb := cand.ClusterOf().BBox
	var best model.PageElement
	bestDist := math.Inf(1)

	for _, e := range candidates {
		l := e.ClusterOf().Label
		if !l.IsTable() && !l.IsFigure() {
			continue
		}
		eb := e.ClusterOf().BBox
		if !cb.OverlapsHorizontally(eb) {
			continue
		}
		dist := verticalGap(cb, eb)
		if dist < bestDist {
			bestDist = dist
			best = e
		}
	}
	return best
}

func verticalGap(a, b model.BoundingBox) float64 {
	if a.B <= b.T {
		return b.T - a.B
	}
	if b.B <= a.T {
		return a.T - b.B
	}
	return 0
}

// promotions maps a parent element's id to the caption/footnote
// elements promoted under it, in page-then-reading order.
type promotions struct {
	captions  map[int][]model.PageElement
	footnotes map[int][]model.PageElement
	skip      map[int]bool
}

func newPromotions() *promotions {
	return &promotions{
		captions:  make(map[int][]model.PageElement),
		footnotes: make(map[int][]model.PageElement),
		skip:      make(map[int]bool),
	}
}

// collectPromotions precomputes, for one page's reading-ordered
// elements, the set of Caption/Footnote element ids to skip in the
// main export loop because they have been attached to a parent.
func (p *promotions) collectPromotions(elements []model.PageElement) {
	for _, e := range elements {
		label := e.ClusterOf().Label
		if label != model.LabelCaption && label != model.LabelFootnote {
			continue
		}
		parent := findParent(e, elements)
		if parent == nil {
			continue
		}
		p.skip[e.ElementID()] = true
		if label == model.LabelCaption {
			p.captions[parent.ElementID()] = append(p.captions[parent.ElementID()], e)
		} else {
			p.footnotes[parent.ElementID()] = append(p.footnotes[parent.ElementID()], e)
		}
	}
}
