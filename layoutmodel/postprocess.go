package layoutmodel

import (
	"math"
	"sort"

	"github.com/docling-go/docling/model"
)

// PostprocessConfig tunes top-k selection.
type PostprocessConfig struct {
	// TopK caps how many detections survive sigmoid scoring before
	// Cluster construction. Default NumQueries (300) — the detector's
	// own query budget.
	TopK int
	// MinScore discards detections below this post-sigmoid score
	// before top-k selection runs.
	MinScore float64
}

// DefaultPostprocessConfig returns TopK=300, MinScore=0 (confidence
// filtering proper happens in Stage 2; this floor only guards against
// NaN/degenerate scores reaching the sort).
func DefaultPostprocessConfig() PostprocessConfig {
	return PostprocessConfig{TopK: NumQueries, MinScore: 0}
}

// scored pairs a detection with its post-sigmoid score, carrying the
// detection's original slice index for the deterministic tie-break.
type scored struct {
	det   Detection
	score float64
	idx   int
}

// Postprocess applies sigmoid scoring, a deterministic top-k
// selection, and bbox decoding from normalized input-resolution
// coordinates into page point space, emitting one Cluster per
// surviving detection.
//
// Ties in score are broken deterministically: scores are rounded to
// 1e-5 before comparison, and equal-after-rounding candidates are
// ordered by ascending original index — this makes top-k selection
// reproducible across runs of the same raw detection set, which
// Stage 2's confidence floor and every later stage depend on for a
// stable cluster ordering.
func Postprocess(detections []Detection, pageSize model.PageSize, cfg PostprocessConfig) []model.Cluster {
	if cfg.TopK <= 0 {
		cfg.TopK = NumQueries
	}

	candidates := make([]scored, 0, len(detections))
	for i, d := range detections {
		s := sigmoid(d.Score)
		if s < cfg.MinScore {
			continue
		}
		candidates = append(candidates, scored{det: d, score: s, idx: i})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := round1e5(candidates[i].score), round1e5(candidates[j].score)
		if ri != rj {
			return ri > rj
		}
		return candidates[i].idx < candidates[j].idx
	})

	if len(candidates) > cfg.TopK {
		candidates = candidates[:cfg.TopK]
	}

	out := make([]model.Cluster, 0, len(candidates))
	for _, c := range candidates {
		label, ok := model.LabelFromClassIndex(c.det.ClassIndex)
		if !ok {
			continue
		}
		out = append(out, model.Cluster{
			ID:         c.idx,
			Label:      label,
			BBox:       decodeBox(c.det, pageSize),
			Confidence: c.score,
		})
	}
	return out
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func round1e5(v float64) float64 { return math.Round(v*1e5) / 1e5 }

// decodeBox maps a normalized center/size box to a TopLeft page-space
// BoundingBox.
func decodeBox(d Detection, pageSize model.PageSize) model.BoundingBox {
	l := (d.CX - d.W/2) * pageSize.Width
	t := (d.CY - d.H/2) * pageSize.Height
	r := (d.CX + d.W/2) * pageSize.Width
	b := (d.CY + d.H/2) * pageSize.Height
	return model.NewBoundingBox(l, t, r, b, model.TopLeft)
}
