package tableformer

// InputFilter projects the encoder's 256-channel feature grid to the
// tag transformer/bbox decoder's 512-dim working space via two
// residual blocks. The tag-path and bbox-path filters use independent
// weights even though they share this same architecture.
type InputFilter struct {
	proj  [][]float32
	projB []float32
	block residualBlock
}

// NewInputFilter builds one 256->512 filter from ws under the given
// name prefix ("tagfilter" or "bboxfilter").
func NewInputFilter(ws WeightSource, prefix string) *InputFilter {
	return &InputFilter{
		proj:  ws.Matrix(prefix+".proj", FilteredDim, FeatureDim),
		projB: ws.Vector(prefix+".proj_bias", FilteredDim),
		block: newResidualBlock(ws, prefix+".block", FilteredDim),
	}
}

// Forward filters every spatial feature vector in the 28x28 grid.
func (f *InputFilter) Forward(grid [][]float32) [][]float32 {
	out := make([][]float32, len(grid))
	for i, v := range grid {
		p := linear(v, f.proj, f.projB)
		out[i] = f.block.forward(p)
	}
	return out
}
