package stages

import "github.com/docling-go/docling/model"

// ResolveOverlaps performs pairwise overlap resolution among
// surviving clusters: if IoS(a,b) > cfg.DropIoS, the lower-precedence
// cluster (model.Label.Precedence, higher number is lower precedence)
// is dropped; if IoU(a,b) > cfg.MergeIoU and both share a label, they
// are merged (union bbox, union cells, higher confidence kept).
// Precedence order is Table > Figure > Text > other, same as Stage 3.
func ResolveOverlaps(prev []model.Cluster, cfg Stage8Config) ([]model.Cluster, error) {
	clusters := make([]model.Cluster, len(prev))
	copy(clusters, prev)
	dropped := make([]bool, len(clusters))

	for i := 0; i < len(clusters); i++ {
		if dropped[i] {
			continue
		}
		for j := i + 1; j < len(clusters); j++ {
			if dropped[j] {
				continue
			}
			a, b := clusters[i], clusters[j]
			ios := a.BBox.IntersectionOverSelf(b.BBox)
			iosRev := b.BBox.IntersectionOverSelf(a.BBox)

			if ios > cfg.DropIoS || iosRev > cfg.DropIoS {
				if a.Label.Precedence() <= b.Label.Precedence() {
					dropped[j] = true
				} else {
					dropped[i] = true
					break
				}
				continue
			}

			if a.Label == b.Label && a.BBox.IoU(b.BBox) > cfg.MergeIoU {
				merged := mergeClusters(a, b)
				clusters[i] = merged
				dropped[j] = true
			}
		}
	}

	out := make([]model.Cluster, 0, len(clusters))
	for i, c := range clusters {
		if !dropped[i] {
			out = append(out, c)
		}
	}
	return out, nil
}

func mergeClusters(a, b model.Cluster) model.Cluster {
	merged := a
	merged.BBox = a.BBox.Union(b.BBox)
	merged.Cells = append(append([]model.TextCell{}, a.Cells...), b.Cells...)
	if b.Confidence > a.Confidence {
		merged.Confidence = b.Confidence
	}
	return merged
}
