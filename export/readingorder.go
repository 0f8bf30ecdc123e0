// Package export consumes the per-page typed elements Stage 9 produces
// and turns them into a single cross-page DoclingDocument: reading
// order, caption/footnote promotion, the furniture bucket, coordinate
// conversion at the export boundary, and Markdown rendering.
package export

import (
	"sort"

	"github.com/docling-go/docling/model"
)

// RowTolerance is the vertical-centroid tolerance, in page points,
// within which two elements are treated as sharing a reading-order row
// rather than being ordered strictly top-to-bottom.
const RowTolerance = 10.0

// OrderPage returns a single page's elements in reading order: page
// headers first, page footers last, and the remaining body elements
// top-to-bottom then left-to-right by bbox centroid, grouped into rows
// within RowTolerance of each other.
func OrderPage(elements []model.PageElement) []model.PageElement {
	var headers, body, footers []model.PageElement
	for _, e := range elements {
		switch e.ClusterOf().Label {
		case model.LabelPageHeader:
			headers = append(headers, e)
		case model.LabelPageFooter:
			footers = append(footers, e)
		default:
			body = append(body, e)
		}
	}

	sort.SliceStable(headers, func(i, j int) bool { return headers[i].ElementID() < headers[j].ElementID() })
	sort.SliceStable(footers, func(i, j int) bool { return footers[i].ElementID() < footers[j].ElementID() })
	sort.SliceStable(body, func(i, j int) bool {
		bi, bj := body[i].ClusterOf().BBox, body[j].ClusterOf().BBox
		cyi, cyj := (bi.T+bi.B)/2, (bj.T+bj.B)/2
		if absf(cyi-cyj) > RowTolerance {
			return cyi < cyj
		}
		cxi, cxj := (bi.L+bi.R)/2, (bj.L+bj.R)/2
		if cxi != cxj {
			return cxi < cxj
		}
		return body[i].ElementID() < body[j].ElementID()
	})

	out := make([]model.PageElement, 0, len(elements))
	out = append(out, headers...)
	out = append(out, body...)
	out = append(out, footers...)
	return out
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
