// Package layoutmodel runs the page layout detector: a 17-class,
// 300-query detection-transformer that turns a rendered page bitmap
// into Cluster candidates for Stage 1. Inference only — there is no
// training loop here.
package layoutmodel

import (
	"image"

	"github.com/docling-go/docling/imageprep"
	"github.com/docling-go/docling/model"
)

// InputResolution is a supported detector input size. The reference
// checkpoint ships at three resolutions; larger catches smaller text
// at a proportional inference-time cost.
type InputResolution int

const (
	Resolution448 InputResolution = 448
	Resolution512 InputResolution = 512
	Resolution640 InputResolution = 640
)

// NumClasses and NumQueries are fixed by the detector architecture: a
// detection-transformer head with 300 object queries over a 17-class
// taxonomy (model.detectorClassOrder).
const (
	NumClasses = 17
	NumQueries = 300
)

// Preprocess resizes a page bitmap to the detector's input resolution
// and returns a /255-normalized CHW float32 tensor, the convention the
// ONNX graph's input binding expects.
func Preprocess(page image.Image, res InputResolution) []float32 {
	return imageprep.ToTensor(page, int(res), imageprep.CHW)
}

// PageScale returns the affine factors mapping a detection box in
// [0,1] input-resolution coordinates back to the original page's
// point space.
func PageScale(pageSize model.PageSize, res InputResolution) (sx, sy float64) {
	return pageSize.Width, pageSize.Height
}
