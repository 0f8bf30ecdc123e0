package tableformer

const (
	HiddenDim  = FilteredDim // 512
	NumHeads   = 8
	HeadDim    = HiddenDim / NumHeads
	FFNDim     = 1024
	NEncoder   = 6
	NDecoder   = 6
)

type mhaWeights struct {
	wq, wk, wv, wo [][]float32
	bq, bk, bv, bo []float32
}

func newMHAWeights(ws WeightSource, prefix string) mhaWeights {
	return mhaWeights{
		wq: ws.Matrix(prefix+".q", HiddenDim, HiddenDim), bq: ws.Vector(prefix+".q_b", HiddenDim),
		wk: ws.Matrix(prefix+".k", HiddenDim, HiddenDim), bk: ws.Vector(prefix+".k_b", HiddenDim),
		wv: ws.Matrix(prefix+".v", HiddenDim, HiddenDim), bv: ws.Vector(prefix+".v_b", HiddenDim),
		wo: ws.Matrix(prefix+".o", HiddenDim, HiddenDim), bo: ws.Vector(prefix+".o_b", HiddenDim),
	}
}

// selfAttention runs standard scaled dot-product multi-head attention
// of query q against the key/value sequence (kvSeq), returning the
// HiddenDim output projection.
func (w mhaWeights) attend(q []float32, kSeq, vSeq [][]float32) []float32 {
	qp := linear(q, w.wq, w.bq)
	out := make([]float32, HiddenDim)
	for h := 0; h < NumHeads; h++ {
		qh := qp[h*HeadDim : (h+1)*HeadDim]
		scores := make([]float32, len(kSeq))
		scale := float32(1) / sqrtf(float32(HeadDim))
		for i, k := range kSeq {
			kp := linear(k, w.wk, w.bk)
			kh := kp[h*HeadDim : (h+1)*HeadDim]
			scores[i] = dot(qh, kh) * scale
		}
		weights := softmax(scores)
		acc := make([]float32, HeadDim)
		for i, vv := range vSeq {
			vp := linear(vv, w.wv, w.bv)
			vh := vp[h*HeadDim : (h+1)*HeadDim]
			for d := range acc {
				acc[d] += weights[i] * vh[d]
			}
		}
		copy(out[h*HeadDim:(h+1)*HeadDim], acc)
	}
	return linear(out, w.wo, w.bo)
}

func sqrtf(v float32) float32 {
	// Newton's method, avoids importing math just for one call site
	// that's only ever fed a small positive constant (HeadDim).
	if v == 0 {
		return 0
	}
	x := v
	for i := 0; i < 8; i++ {
		x = 0.5 * (x + v/x)
	}
	return x
}

type ffnWeights struct {
	w1 [][]float32
	b1 []float32
	w2 [][]float32
	b2 []float32
}

func newFFNWeights(ws WeightSource, prefix string) ffnWeights {
	return ffnWeights{
		w1: ws.Matrix(prefix+".w1", FFNDim, HiddenDim), b1: ws.Vector(prefix+".b1", FFNDim),
		w2: ws.Matrix(prefix+".w2", HiddenDim, FFNDim), b2: ws.Vector(prefix+".b2", HiddenDim),
	}
}

func (w ffnWeights) forward(x []float32) []float32 {
	return linear(relu(linear(x, w.w1, w.b1)), w.w2, w.b2)
}

type encoderLayer struct {
	selfAttn   mhaWeights
	ffn        ffnWeights
	lnAttnG, lnAttnB []float32
	lnFFNG, lnFFNB   []float32
}

type decoderLayer struct {
	selfAttn, crossAttn mhaWeights
	ffn                 ffnWeights
	lnSelfG, lnSelfB    []float32
	lnCrossG, lnCrossB  []float32
	lnFFNG, lnFFNB      []float32
}

// TagTransformer is the OTSL tag encoder/decoder: a post-norm
// transformer encoder over the filtered image memory, and a decoder
// with a layer-wise KV cache and cross-attention into that memory,
// followed by the Linear(512,13) output head.
type TagTransformer struct {
	tokenEmbed [][]float32
	posEnc     [][]float32
	encLayers  [NEncoder]encoderLayer
	decLayers  [NDecoder]decoderLayer
	outHead    [][]float32
	outBias    []float32
}

// NewTagTransformer builds the transformer's forward-pass weights
// from ws, with a sinusoidal positional table long enough for
// maxSteps decode steps.
func NewTagTransformer(ws WeightSource, maxSteps int) *TagTransformer {
	t := &TagTransformer{
		tokenEmbed: ws.Matrix("tagxfmr.tok_embed", VocabSize, HiddenDim),
		posEnc:     sinusoidalPositionalEncoding(maxSteps+1, HiddenDim),
		outHead:    ws.Matrix("tagxfmr.out_head", VocabSize, HiddenDim),
		outBias:    ws.Vector("tagxfmr.out_bias", VocabSize),
	}
	for i := 0; i < NEncoder; i++ {
		p := "tagxfmr.enc." + itoa(i)
		t.encLayers[i] = encoderLayer{
			selfAttn: newMHAWeights(ws, p+".self"),
			ffn:      newFFNWeights(ws, p+".ffn"),
			lnAttnG:  ws.Vector(p+".ln1.g", HiddenDim), lnAttnB: ws.Vector(p+".ln1.b", HiddenDim),
			lnFFNG: ws.Vector(p+".ln2.g", HiddenDim), lnFFNB: ws.Vector(p+".ln2.b", HiddenDim),
		}
	}
	for i := 0; i < NDecoder; i++ {
		p := "tagxfmr.dec." + itoa(i)
		t.decLayers[i] = decoderLayer{
			selfAttn: newMHAWeights(ws, p+".self"), crossAttn: newMHAWeights(ws, p+".cross"),
			ffn:      newFFNWeights(ws, p+".ffn"),
			lnSelfG:  ws.Vector(p+".ln1.g", HiddenDim), lnSelfB: ws.Vector(p+".ln1.b", HiddenDim),
			lnCrossG: ws.Vector(p+".ln2.g", HiddenDim), lnCrossB: ws.Vector(p+".ln2.b", HiddenDim),
			lnFFNG: ws.Vector(p+".ln3.g", HiddenDim), lnFFNB: ws.Vector(p+".ln3.b", HiddenDim),
		}
	}
	return t
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [8]byte
	p := len(buf)
	for i > 0 {
		p--
		buf[p] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[p:])
}

// EncodeMemory runs the post-norm transformer encoder over the
// filtered 784-position image memory.
func (t *TagTransformer) EncodeMemory(memory [][]float32) [][]float32 {
	seq := make([][]float32, len(memory))
	copy(seq, memory)
	for _, layer := range t.encLayers {
		next := make([][]float32, len(seq))
		for i, x := range seq {
			attn := layer.selfAttn.attend(x, seq, seq)
			h := layerNorm(addVec(x, attn), layer.lnAttnG, layer.lnAttnB, 1e-5)
			ff := layer.ffn.forward(h)
			next[i] = layerNorm(addVec(h, ff), layer.lnFFNG, layer.lnFFNB, 1e-5)
		}
		seq = next
	}
	return seq
}

// DecodeStep runs one autoregressive decoder step for prevToken at
// cache.Len() position, appending this step's K/V to cache and
// cross-attending into memory, implementing the "only the last
// token" optimization (self-attention queries only the new token,
// against the full accumulated K/V history).
func (t *TagTransformer) DecodeStep(cache *KVCache, prevToken Token, memory [][]float32) (logits, hidden []float32) {
	pos := cache.Len()
	x := addVec(t.tokenEmbed[clampTok(int(prevToken))], t.posEnc[clampPos(pos, len(t.posEnc))])

	for li, layer := range t.decLayers {
		k := linear(x, layer.selfAttn.wk, layer.selfAttn.bk)
		v := linear(x, layer.selfAttn.wv, layer.selfAttn.bv)
		cache.Append(li, k, v)
		keys, values := cache.KV(li)

		selfOut := layer.selfAttn.attend(x, keys, values)
		h := layerNorm(addVec(x, selfOut), layer.lnSelfG, layer.lnSelfB, 1e-5)

		crossOut := layer.crossAttn.attend(h, memory, memory)
		h = layerNorm(addVec(h, crossOut), layer.lnCrossG, layer.lnCrossB, 1e-5)

		ff := layer.ffn.forward(h)
		h = layerNorm(addVec(h, ff), layer.lnFFNG, layer.lnFFNB, 1e-5)
		x = h
	}
	hidden = x
	logits = linear(hidden, t.outHead, t.outBias)
	return logits, hidden
}

func clampTok(i int) int {
	if i < 0 {
		return 0
	}
	if i >= VocabSize {
		return VocabSize - 1
	}
	return i
}

func clampPos(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
