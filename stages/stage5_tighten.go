package stages

import "github.com/docling-go/docling/model"

// TightenBBoxes shrinks each cluster's bbox to the union of its
// assigned cells, clamped to remain within the originally detected
// bbox — a cluster's box never grows past what the detector gave it.
// Clusters with no assigned cells are left unchanged.
func TightenBBoxes(prev []model.Cluster, _ Stage5Config) ([]model.Cluster, error) {
	out := make([]model.Cluster, len(prev))
	copy(out, prev)
	for i, c := range out {
		union, ok := model.BBoxFromCells(c.Cells)
		if !ok {
			continue
		}
		out[i].BBox = clamp(union, c.BBox)
	}
	return out, nil
}

// clamp intersects box with bound, keeping box's origin; if the two
// don't overlap at all (pathological detector output), bound is
// returned unchanged rather than producing a degenerate zero-area box.
func clamp(box, bound model.BoundingBox) model.BoundingBox {
	l, t, r, b := box.L, box.T, box.R, box.B
	if l < bound.L {
		l = bound.L
	}
	if t < bound.T {
		t = bound.T
	}
	if r > bound.R {
		r = bound.R
	}
	if b > bound.B {
		b = bound.B
	}
	if l >= r || t >= b {
		return bound
	}
	return model.NewBoundingBox(l, t, r, b, bound.CoordOrigin)
}
