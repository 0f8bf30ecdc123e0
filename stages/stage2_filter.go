package stages

import "github.com/docling-go/docling/model"

// FilterByConfidence drops clusters below the per-label confidence
// floor configured in cfg.Thresholds, falling back to
// cfg.DefaultThreshold for labels with no entry. Order is preserved.
func FilterByConfidence(prev []model.Cluster, cfg Stage2Config) ([]model.Cluster, error) {
	out := make([]model.Cluster, 0, len(prev))
	for _, c := range prev {
		threshold := cfg.DefaultThreshold
		if t, ok := cfg.Thresholds[c.Label]; ok {
			threshold = t
		}
		if c.Confidence < threshold {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
