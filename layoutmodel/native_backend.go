package layoutmodel

import (
	"context"
	"math"
)

// QueryWeights is the native backend's per-query linear head: a
// stand-in for the detection-transformer decoder this package doesn't
// retrain, just runs. Every query gets its own (class logits, box)
// projection from the flattened input tensor, which is architecturally
// faithful to a DETR-style decoder's final per-query heads without
// requiring the full encoder/decoder stack when no ONNX checkpoint is
// configured.
type QueryWeights struct {
	ClassW [][]float32 // [NumQueries*NumClasses][tensorLen]
	ClassB []float32
	BoxW   [][]float32 // [NumQueries*4][tensorLen]
	BoxB   []float32
}

// ZeroQueryWeights returns an all-zero QueryWeights sized for the
// given input tensor length — keeps the native backend runnable (and
// testable) without a trained checkpoint.
func ZeroQueryWeights(tensorLen int) QueryWeights {
	classRows := NumQueries * NumClasses
	boxRows := NumQueries * 4
	qw := QueryWeights{
		ClassW: make([][]float32, classRows), ClassB: make([]float32, classRows),
		BoxW: make([][]float32, boxRows), BoxB: make([]float32, boxRows),
	}
	for i := range qw.ClassW {
		qw.ClassW[i] = make([]float32, tensorLen)
	}
	for i := range qw.BoxW {
		qw.BoxW[i] = make([]float32, tensorLen)
	}
	return qw
}

// NativeBackend is the no-ONNX-runtime fallback: a pure-Go forward
// pass over QueryWeights. Used when no ONNX model asset is configured,
// analogous to tableformer.GeometricBackend's role for table
// recognition.
type NativeBackend struct {
	weights    QueryWeights
	resolution InputResolution
}

// NewNativeBackend builds a NativeBackend for the given resolution
// and weights (ZeroQueryWeights for an architecture-only smoke path).
func NewNativeBackend(weights QueryWeights, res InputResolution) *NativeBackend {
	return &NativeBackend{weights: weights, resolution: res}
}

func (b *NativeBackend) Resolution() InputResolution { return b.resolution }

func (b *NativeBackend) Close() error { return nil }

// Infer projects the input tensor through every query's linear heads,
// producing one Detection per (query, class) candidate — the
// flattened candidate set Postprocess's top-k then selects over.
func (b *NativeBackend) Infer(_ context.Context, tensor []float32) ([]Detection, error) {
	out := make([]Detection, 0, NumQueries*NumClasses)
	for q := 0; q < NumQueries; q++ {
		box := [4]float32{}
		for k := 0; k < 4; k++ {
			row := q*4 + k
			if row < len(b.weights.BoxW) {
				box[k] = dotF(b.weights.BoxW[row], tensor) + b.weights.BoxB[row]
			}
		}
		for c := 0; c < NumClasses; c++ {
			row := q*NumClasses + c
			var score float32
			if row < len(b.weights.ClassW) {
				score = dotF(b.weights.ClassW[row], tensor) + b.weights.ClassB[row]
			}
			out = append(out, Detection{
				ClassIndex: c,
				Score:      float64(score),
				CX:         sigmoidClamp(box[0]), CY: sigmoidClamp(box[1]),
				W: sigmoidClamp(box[2]), H: sigmoidClamp(box[3]),
			})
		}
	}
	return out, nil
}

func dotF(w, x []float32) float32 {
	var sum float32
	n := len(w)
	if len(x) < n {
		n = len(x)
	}
	for i := 0; i < n; i++ {
		sum += w[i] * x[i]
	}
	return sum
}

func sigmoidClamp(v float32) float64 {
	return 1 / (1 + math.Exp(-float64(v)))
}
