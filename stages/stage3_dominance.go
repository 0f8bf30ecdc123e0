package stages

import "github.com/docling-go/docling/model"

// ResolveDominance removes clusters fully dominated by a
// higher-precedence cluster: a cluster c is dropped if some other
// cluster d has strictly higher precedence (model.Label.Precedence,
// lower is higher) and IoS(c.BBox, d.BBox) > cfg.DominanceIoS. Weaker
// overlaps are left for Stage 8.
func ResolveDominance(prev []model.Cluster, cfg Stage3Config) ([]model.Cluster, error) {
	out := make([]model.Cluster, 0, len(prev))
	for i, c := range prev {
		dominated := false
		for j, d := range prev {
			if i == j {
				continue
			}
			if d.Label.Precedence() >= c.Label.Precedence() {
				continue
			}
			if c.BBox.IntersectionOverSelf(d.BBox) > cfg.DominanceIoS {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, c)
		}
	}
	return out, nil
}
