package tableformer

import (
	"context"

	"github.com/docling-go/docling/model"
)

// Backend recognizes a table crop's grid structure and returns the
// populated TableElement fields (OTSL sequence, rows/cols, cells).
// NeuralBackend and GeometricBackend are the two implementations —
// analogous to layoutmodel's onnx/native split, selected by whether a
// trained checkpoint's WeightSource is available.
type Backend interface {
	Recognize(ctx context.Context, crop model.BoundingBox, cropTensor []float32, pdfCells []model.TextCell, ocr OCREngine) (Result, error)
}

// Result is a fully recognized table, ready to attach to a
// model.TableElement.
type Result struct {
	NumRows    int
	NumCols    int
	OTSLSeq    []string
	TableCells []model.TableCell
	Truncated  bool
}

// NeuralBackend runs the full encoder -> input-filter -> tag
// transformer -> greedy decode -> bbox head pipeline.
type NeuralBackend struct {
	encoder    *Encoder
	tagFilter  *InputFilter
	bboxFilter *InputFilter
	tagXfmr    *TagTransformer
	bboxHead   *BBoxHead
	maxSteps   int
}

// NewNeuralBackend builds a NeuralBackend from a WeightSource (a
// loaded checkpoint, or tableformer.ZeroWeights for an architecture-
// only smoke path with no trained parameters).
func NewNeuralBackend(ws WeightSource, maxSteps int) *NeuralBackend {
	if maxSteps <= 0 {
		maxSteps = MaxSteps
	}
	return &NeuralBackend{
		encoder:    NewEncoder(ws),
		tagFilter:  NewInputFilter(ws, "tagfilter"),
		bboxFilter: NewInputFilter(ws, "bboxfilter"),
		tagXfmr:    NewTagTransformer(ws, maxSteps),
		bboxHead:   NewBBoxHead(ws),
		maxSteps:   maxSteps,
	}
}

type tagModelAdapter struct {
	xfmr   *TagTransformer
	memory [][]float32
}

func (a *tagModelAdapter) Step(_ context.Context, cache *KVCache, prev Token) ([]float32, []float32, error) {
	logits, hidden := a.xfmr.DecodeStep(cache, prev, a.memory)
	return logits, hidden, nil
}

// Recognize runs the neural pipeline end to end: encode the crop,
// filter it separately for the tag and bbox paths, greedily decode
// the OTSL sequence, localize every saved cell step, reconstruct the
// grid, and attach cell text.
func (b *NeuralBackend) Recognize(ctx context.Context, crop model.BoundingBox, cropTensor []float32, pdfCells []model.TextCell, ocr OCREngine) (Result, error) {
	pooled := b.encoder.Forward(cropTensor)
	tagMemory := b.tagFilter.Forward(pooled)
	bboxMemory := b.bboxFilter.Forward(pooled)

	tagEncoded := b.tagXfmr.EncodeMemory(tagMemory)
	cache := NewKVCache(NDecoder, NumHeads, HeadDim)
	adapter := &tagModelAdapter{xfmr: b.tagXfmr, memory: tagEncoded}

	decoded, err := Greedy(ctx, adapter, cache, b.maxSteps)
	if err != nil {
		return Result{}, err
	}

	grid := BuildGrid(decoded.Tokens)
	if grid.NumRows == 0 {
		return Result{NumRows: 0, NumCols: 0, OTSLSeq: tokenStrings(decoded.Tokens), Truncated: decoded.Truncated}, nil
	}

	bboxes := make([]model.BoundingBox, len(decoded.SavedHidden))
	for i, h := range decoded.SavedHidden {
		_, normBBox := b.bboxHead.Localize(h, bboxMemory)
		bboxes[i] = ToPageBBox(normBBox, crop)
	}

	texts, fromOCR, confidence := AttachCellText(bboxes, pdfCells, ocr)
	cells := grid.TableCells(bboxes, texts, fromOCR, confidence)
	cells = SplitValues(cells, grid.NumRows, grid.NumCols)

	return Result{
		NumRows: grid.NumRows, NumCols: grid.NumCols,
		OTSLSeq: tokenStrings(decoded.Tokens), TableCells: cells,
		Truncated: decoded.Truncated,
	}, nil
}

func tokenStrings(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.String()
	}
	return out
}
