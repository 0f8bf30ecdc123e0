package tableformer

// KVCache holds the accumulated per-layer key/value projections of
// every decoder step so far, letting the "only the last token"
// optimization run one step of self-attention against the whole
// history without recomputing it.
type KVCache struct {
	numLayers int
	heads     int
	headDim   int
	keys      [][][]float32 // [layer][step][heads*headDim]
	values    [][][]float32
}

// NewKVCache allocates an empty cache for a decoder with the given
// layer count and attention-head geometry.
func NewKVCache(numLayers, heads, headDim int) *KVCache {
	return &KVCache{
		numLayers: numLayers, heads: heads, headDim: headDim,
		keys:   make([][][]float32, numLayers),
		values: make([][][]float32, numLayers),
	}
}

// Append records one step's key/value projection for a layer.
func (c *KVCache) Append(layer int, k, v []float32) {
	c.keys[layer] = append(c.keys[layer], k)
	c.values[layer] = append(c.values[layer], v)
}

// Len returns how many steps have been appended to layer 0 (every
// layer grows in lockstep, one append per decode step).
func (c *KVCache) Len() int {
	if c.numLayers == 0 {
		return 0
	}
	return len(c.keys[0])
}

// KV returns the accumulated key/value history for a layer.
func (c *KVCache) KV(layer int) (keys, values [][]float32) {
	return c.keys[layer], c.values[layer]
}
