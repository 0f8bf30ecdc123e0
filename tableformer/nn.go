package tableformer

import "math"

// linear applies y = xW^T + b for a single vector x of length in,
// weight laid out row-major [out][in], and bias of length out.
func linear(x []float32, w [][]float32, b []float32) []float32 {
	out := make([]float32, len(w))
	for i, row := range w {
		var sum float32
		for j, wij := range row {
			if j < len(x) {
				sum += wij * x[j]
			}
		}
		if i < len(b) {
			sum += b[i]
		}
		out[i] = sum
	}
	return out
}

func relu(x []float32) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		if v > 0 {
			out[i] = v
		}
	}
	return out
}

func sigmoidf(v float32) float32 { return float32(1 / (1 + math.Exp(-float64(v)))) }

func sigmoidVec(x []float32) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = sigmoidf(v)
	}
	return out
}

// layerNorm normalizes x to zero mean/unit variance then applies the
// learned affine (gamma, beta), matching the tag transformer's
// post-norm blocks.
func layerNorm(x []float32, gamma, beta []float32, eps float32) []float32 {
	var mean float32
	for _, v := range x {
		mean += v
	}
	mean /= float32(len(x))

	var variance float32
	for _, v := range x {
		d := v - mean
		variance += d * d
	}
	variance /= float32(len(x))

	inv := float32(1 / math.Sqrt(float64(variance+eps)))
	out := make([]float32, len(x))
	for i, v := range x {
		norm := (v - mean) * inv
		g, b := float32(1), float32(0)
		if i < len(gamma) {
			g = gamma[i]
		}
		if i < len(beta) {
			b = beta[i]
		}
		out[i] = norm*g + b
	}
	return out
}

func addVec(a, b []float32) []float32 {
	out := make([]float32, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// softmax normalizes scores in place, subtracting the max for
// numerical stability.
func softmax(scores []float32) []float32 {
	if len(scores) == 0 {
		return scores
	}
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	out := make([]float32, len(scores))
	var sum float32
	for i, s := range scores {
		e := float32(math.Exp(float64(s - max)))
		out[i] = e
		sum += e
	}
	if sum == 0 {
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func dot(a, b []float32) float32 {
	var sum float32
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// sinusoidalPositionalEncoding builds the standard
// sin/cos(position/10000^(2i/d)) table used to seed positional
// information into token embeddings, up to maxLen positions of
// dimension dim.
func sinusoidalPositionalEncoding(maxLen, dim int) [][]float32 {
	pe := make([][]float32, maxLen)
	for pos := 0; pos < maxLen; pos++ {
		row := make([]float32, dim)
		for i := 0; i < dim; i += 2 {
			div := math.Pow(10000, float64(i)/float64(dim))
			angle := float64(pos) / div
			row[i] = float32(math.Sin(angle))
			if i+1 < dim {
				row[i+1] = float32(math.Cos(angle))
			}
		}
		pe[pos] = row
	}
	return pe
}
