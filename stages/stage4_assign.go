package stages

import "github.com/docling-go/docling/model"

// AssignCells assigns each of cells to at most one cluster: the
// cluster whose bbox maximizes IoS w.r.t. the cell, provided that IoS
// is at least cfg.MinIoS. Ties break by cluster precedence, then by
// lower cluster id. Cells left unassigned are returned separately for
// Stage 6 orphan creation.
func AssignCells(clusters []model.Cluster, cells []model.TextCell, cfg Stage4Config) (assigned []model.Cluster, orphans []model.TextCell, err error) {
	out := make([]model.Cluster, len(clusters))
	copy(out, clusters)
	for i := range out {
		out[i].Cells = nil
	}

	for _, cell := range cells {
		best := -1
		bestIoS := cfg.MinIoS
		cellBBox := cell.BoundingBox()
		for i, c := range out {
			ios := cellBBox.IntersectionOverSelf(c.BBox)
			if ios < cfg.MinIoS {
				continue
			}
			if best == -1 {
				best, bestIoS = i, ios
				continue
			}
			if ios > bestIoS {
				best, bestIoS = i, ios
				continue
			}
			if ios == bestIoS {
				if out[i].Label.Precedence() < out[best].Label.Precedence() {
					best = i
				} else if out[i].Label.Precedence() == out[best].Label.Precedence() && out[i].ID < out[best].ID {
					best = i
				}
			}
		}
		if best == -1 {
			orphans = append(orphans, cell)
			continue
		}
		out[best].Cells = append(out[best].Cells, cell)
	}

	return out, orphans, nil
}
