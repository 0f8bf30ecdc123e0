package tableformer

import "github.com/docling-go/docling/model"

// BBoxHead localizes one grid cell per saved decoder hidden state:
// additive attention over the 784 filtered spatial features, a
// gating step, then class logits and a sigmoid bbox.
type BBoxHead struct {
	attnW, attnU [][]float32 // additive-attention projections for hidden/feature
	attnV        []float32   // scores = v . tanh(Wh + Uf)
	gateW        [][]float32
	gateB        []float32
	classW       [][]float32
	classB       []float32
	bboxW1, bboxW2, bboxW3 [][]float32
	bboxB1, bboxB2, bboxB3 []float32
}

const bboxMLPHidden = 256

// NewBBoxHead builds the bbox head's forward-pass weights from ws.
func NewBBoxHead(ws WeightSource) *BBoxHead {
	return &BBoxHead{
		attnW: ws.Matrix("bboxhead.attn_w", HiddenDim, HiddenDim),
		attnU: ws.Matrix("bboxhead.attn_u", HiddenDim, FilteredDim),
		attnV: ws.Vector("bboxhead.attn_v", HiddenDim),
		gateW: ws.Matrix("bboxhead.gate", HiddenDim, HiddenDim),
		gateB: ws.Vector("bboxhead.gate_b", HiddenDim),
		classW: ws.Matrix("bboxhead.class", 3, HiddenDim), classB: ws.Vector("bboxhead.class_b", 3),
		bboxW1: ws.Matrix("bboxhead.bbox1", bboxMLPHidden, HiddenDim), bboxB1: ws.Vector("bboxhead.bbox1_b", bboxMLPHidden),
		bboxW2: ws.Matrix("bboxhead.bbox2", bboxMLPHidden, bboxMLPHidden), bboxB2: ws.Vector("bboxhead.bbox2_b", bboxMLPHidden),
		bboxW3: ws.Matrix("bboxhead.bbox3", 4, bboxMLPHidden), bboxB3: ws.Vector("bboxhead.bbox3_b", 4),
	}
}

// Localize runs additive attention of hidden over the filtered 784
// spatial features, applies the gate h <- sigmoid(W_beta h) * (a . we)
// * h, and emits (class logits, normalized [0,1] cx,cy,w,h bbox).
func (h *BBoxHead) Localize(hidden []float32, filtered [][]float32) (classLogits []float32, bbox [4]float32) {
	wh := linear(hidden, h.attnW, nil)
	scores := make([]float32, len(filtered))
	var weighted []float32
	for i, f := range filtered {
		uf := linear(f, h.attnU, nil)
		s := dot(h.attnV, tanhVec(addVec(wh, uf)))
		scores[i] = s
	}
	weights := softmax(scores)
	ctx := make([]float32, FilteredDim)
	for i, f := range filtered {
		for d := range ctx {
			ctx[d] += weights[i] * f[d]
		}
	}
	if weighted == nil {
		weighted = ctx
	}

	gate := sigmoidVec(linear(hidden, h.gateW, h.gateB))
	gated := make([]float32, HiddenDim)
	for i := range gated {
		a := float32(0)
		if i < len(weighted) {
			a = weighted[i]
		}
		gated[i] = gate[i] * a * hidden[i]
	}

	classLogits = linear(gated, h.classW, h.classB)
	b1 := relu(linear(gated, h.bboxW1, h.bboxB1))
	b2 := relu(linear(b1, h.bboxW2, h.bboxB2))
	raw := sigmoidVec(linear(b2, h.bboxW3, h.bboxB3))
	copy(bbox[:], raw)
	return classLogits, bbox
}

func tanhVec(x []float32) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		e2 := expApprox(2 * v)
		out[i] = (e2 - 1) / (e2 + 1)
	}
	return out
}

func expApprox(v float32) float32 {
	// Sufficient precision for a bounded attention-score argument;
	// avoids pulling in math.Exp for a single call site.
	if v > 20 {
		return 4.85e8
	}
	if v < -20 {
		return 2e-9
	}
	sum := float32(1)
	term := float32(1)
	for n := 1; n < 12; n++ {
		term *= v / float32(n)
		sum += term
	}
	return sum
}

// ToPageBBox maps a normalized (cx,cy,w,h) bbox in [0,1] crop
// coordinates into the crop's page-space affine transform (a TopLeft
// bbox covering the table region).
func ToPageBBox(norm [4]float32, crop model.BoundingBox) model.BoundingBox {
	cx, cy, w, h := float64(norm[0]), float64(norm[1]), float64(norm[2]), float64(norm[3])
	cropW, cropH := crop.Width(), crop.Height()
	l := crop.L + (cx-w/2)*cropW
	t := crop.T + (cy-h/2)*cropH
	r := crop.L + (cx+w/2)*cropW
	b := crop.T + (cy+h/2)*cropH
	return model.NewBoundingBox(l, t, r, b, crop.CoordOrigin)
}
