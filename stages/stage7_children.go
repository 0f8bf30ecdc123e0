package stages

import "github.com/docling-go/docling/model"

// RouteChildren computes, for each Picture or Table cluster, the
// cells whose IoS within the cluster's own bbox is at least
// cfg.ChildIoS, recording them as Children-shaped sub-clusters: for
// Pictures these become OCR-text children (Stage 9 emits them as
// FigureElement.OCRText candidates); for Tables they are the cells
// Stage 7b (TableFormer) routes into table-structure recognition.
func RouteChildren(prev []model.Cluster, cfg Stage7Config) ([]model.Cluster, error) {
	out := make([]model.Cluster, len(prev))
	copy(out, prev)

	for i, c := range out {
		if c.Label != model.LabelPicture && c.Label != model.LabelTable {
			continue
		}
		var children []model.Cluster
		for _, cell := range c.Cells {
			if cell.BoundingBox().IntersectionOverSelf(c.BBox) >= cfg.ChildIoS {
				children = append(children, model.Cluster{
					ID:         c.ID,
					Label:      c.Label,
					BBox:       cell.BoundingBox(),
					Confidence: c.Confidence,
					Cells:      []model.TextCell{cell},
				})
			}
		}
		out[i].Children = children
	}
	return out, nil
}
