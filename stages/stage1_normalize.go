package stages

import "github.com/docling-go/docling/model"

// Normalize reconciles coordinate origins to TopLeft (the canonical
// in-pipeline origin — conversion requires the page height, via
// pageHeight), unifies labels to the canonical enum (a no-op today
// since Cluster.Label is already model.Label-typed at construction),
// drops clusters with non-finite bboxes, and otherwise preserves
// input order.
func Normalize(prev []model.Cluster, pageHeight float64, _ Stage1Config) ([]model.Cluster, error) {
	out := make([]model.Cluster, 0, len(prev))
	for _, c := range prev {
		if !c.BBox.IsFinite() {
			continue
		}
		if c.BBox.CoordOrigin == model.BottomLeft {
			c.BBox = c.BBox.ToBottomLeftOrigin(pageHeight)
			c.BBox.CoordOrigin = model.TopLeft
		}
		out = append(out, c)
	}
	return out, nil
}
