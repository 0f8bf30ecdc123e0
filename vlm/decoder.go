package vlm

import (
	"context"
	"image"
	"strings"

	"github.com/docling-go/docling/tableformer"
)

// vocab is the closed set of greedy-decode outputs for a Code region:
// common source-language guesses, plus a reserved end-of-sequence
// entry the decode loop stops on. Formula regions never reach this
// vocabulary — per contract they enrich to nothing.
var vocab = []string{
	"python", "go", "javascript", "typescript", "java", "c", "cpp",
	"rust", "sql", "bash", "unknown",
}

const eosToken = len(vocab) - 1 // "unknown" doubles as EOS

const (
	decoderEmbedDim  = 8
	decoderNumLayers = 2
	decoderHeads     = 2
	decoderHeadDim   = 4
	maxDecodeSteps   = 4
)

// DecoderWeights is the native backend's per-token linear head: one
// (weight row, bias) pair per vocabulary entry, projected against the
// running hidden state. Mirrors layoutmodel.QueryWeights' all-zero
// smoke-path idiom — this is an architecture-only stand-in, not a
// claim of numerical fidelity to a trained decoder.
type DecoderWeights struct {
	W [][]float32 // [len(vocab)][decoderEmbedDim]
	B []float32
}

// ZeroDecoderWeights returns all-zero weights, keeping the native
// backend runnable without a trained checkpoint.
func ZeroDecoderWeights() DecoderWeights {
	w := DecoderWeights{W: make([][]float32, len(vocab)), B: make([]float32, len(vocab))}
	for i := range w.W {
		w.W[i] = make([]float32, decoderEmbedDim)
	}
	return w
}

// NativeEnricher is the no-ONNX-runtime fallback enrichment backend: a
// greedy, KV-cached decode loop over DecoderWeights. It reuses
// tableformer.KVCache rather than a second copy of the same append-
// only accumulator, since both decoders share the same "cache grows by
// one step, reads concatenate cache plus new output" contract.
type NativeEnricher struct {
	weights DecoderWeights
}

// NewNativeEnricher builds a NativeEnricher over the given weights
// (ZeroDecoderWeights for an architecture-only path).
func NewNativeEnricher(weights DecoderWeights) *NativeEnricher {
	return &NativeEnricher{weights: weights}
}

func (e *NativeEnricher) Close() error { return nil }

// Enrich greedily decodes a language guess from the region's projected
// image features, one token per KV cache step, stopping at eosToken or
// maxDecodeSteps. Describe only calls this for Code regions; Formula
// regions never reach a backend at all, per the contract that they
// enrich to nothing. A blank prompt is treated the same way, so a
// backend invoked directly still honors that contract.
func (e *NativeEnricher) Enrich(_ context.Context, img image.Image, prompt string) (string, error) {
	if prompt == "" {
		return "", nil
	}

	cache := tableformer.NewKVCache(decoderNumLayers, decoderHeads, decoderHeadDim)
	hidden := imageFeatures(img)

	var tokens []string
	for step := 0; step < maxDecodeSteps; step++ {
		id := e.argmaxToken(hidden)
		for layer := 0; layer < decoderNumLayers; layer++ {
			kv := make([]float32, decoderHeads*decoderHeadDim)
			cache.Append(layer, kv, kv)
		}
		if id == eosToken {
			break
		}
		tokens = append(tokens, vocab[id])
		hidden = nextHidden(hidden, id)
	}

	if len(tokens) == 0 {
		return "", nil
	}
	return strings.Join(tokens, ""), nil
}

// argmaxToken projects hidden through every vocab row and returns the
// highest-scoring index, ties broken toward the lower index (the same
// deterministic tie-break convention layoutmodel.Postprocess uses).
func (e *NativeEnricher) argmaxToken(hidden []float32) int {
	best, bestScore := 0, float32(0)
	for i, row := range e.weights.W {
		score := dot(row, hidden) + e.weights.B[i]
		if i == 0 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// imageFeatures reduces a region image to a fixed-length feature
// vector: mean ink density (see isInk) across decoderEmbedDim
// equal-width column buckets, giving the decoder something that
// varies with the actual region content instead of a constant input.
func imageFeatures(img image.Image) []float32 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	features := make([]float32, decoderEmbedDim)
	if width == 0 || height == 0 {
		return features
	}

	bucketWidth := width / decoderEmbedDim
	if bucketWidth == 0 {
		bucketWidth = 1
	}
	for b := 0; b < decoderEmbedDim; b++ {
		x0 := b * bucketWidth
		x1 := x0 + bucketWidth
		if b == decoderEmbedDim-1 || x1 > width {
			x1 = width
		}
		if x0 >= x1 {
			continue
		}
		var ink, total int
		for x := x0; x < x1; x++ {
			for y := 0; y < height; y++ {
				total++
				if isInk(img.At(bounds.Min.X+x, bounds.Min.Y+y)) {
					ink++
				}
			}
		}
		if total > 0 {
			features[b] = float32(ink) / float32(total)
		}
	}
	return features
}

// nextHidden folds the chosen token back into the hidden state for
// the following step, the native backend's stand-in for an embedding
// lookup plus residual update.
func nextHidden(hidden []float32, tokenID int) []float32 {
	out := make([]float32, len(hidden))
	shift := float32(tokenID+1) / float32(len(vocab))
	for i, v := range hidden {
		out[i] = v*0.5 + shift
	}
	return out
}

func dot(w, x []float32) float32 {
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
