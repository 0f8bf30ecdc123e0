package tableformer

// WeightSource supplies named tensors for the encoder, input filter,
// tag transformer and bbox head. A real checkpoint implements this
// over a loaded weight file; ZeroWeights (below) implements it with
// all-zero tensors of the requested shape, which keeps the forward
// pass numerically well-defined (every linear/layernorm/softmax still
// runs) without pretending a randomly- or zero-initialized network
// produces a trained model's output.
type WeightSource interface {
	// Matrix returns a [rows][cols] weight matrix for name.
	Matrix(name string, rows, cols int) [][]float32
	// Vector returns a [n] bias/gain vector for name.
	Vector(name string, n int) []float32
}

// ZeroWeights is the no-checkpoint-loaded WeightSource: every tensor
// is zero-filled. Used by the native fallback path so the same
// architecture code runs end to end (and is exercised by tests)
// without requiring a trained model asset on disk.
type ZeroWeights struct{}

func (ZeroWeights) Matrix(_ string, rows, cols int) [][]float32 {
	m := make([][]float32, rows)
	for i := range m {
		m[i] = make([]float32, cols)
	}
	return m
}

func (ZeroWeights) Vector(_ string, n int) []float32 {
	return make([]float32, n)
}
