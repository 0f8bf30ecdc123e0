package layoutmodel

import (
	"context"
	"image"

	"github.com/docling-go/docling/model"
)

// Detection is one raw detector output: a class index (0..16, indexes
// model.detectorClassOrder), an objectness/class score, and a bbox in
// normalized [0,1] input-resolution coordinates (cx, cy, w, h).
type Detection struct {
	ClassIndex int
	Score      float64
	CX, CY, W, H float64
}

// LayoutInference is the capability trait every detector backend
// implements, mirroring the teacher's Detector/Configure split in
// tables/detector.go: callers depend on this interface, not on which
// backend is loaded.
type LayoutInference interface {
	// Infer runs the detector over a preprocessed input tensor
	// (Preprocess's output for the backend's configured resolution)
	// and returns up to NumQueries raw detections.
	Infer(ctx context.Context, tensor []float32) ([]Detection, error)
	// Resolution reports the input size this backend expects.
	Resolution() InputResolution
	// Close releases backend resources (an ONNX runtime session,
	// typically). Safe to call on a backend with nothing to release.
	Close() error
}

// DetectPage runs end-to-end inference over a rendered page: resize,
// infer, top-k + sigmoid postprocessing, and Cluster construction in
// page point space.
func DetectPage(ctx context.Context, backend LayoutInference, page image.Image, pageSize model.PageSize, cfg PostprocessConfig) ([]model.Cluster, error) {
	tensor := Preprocess(page, backend.Resolution())
	detections, err := backend.Infer(ctx, tensor)
	if err != nil {
		return nil, err
	}
	return Postprocess(detections, pageSize, cfg), nil
}
