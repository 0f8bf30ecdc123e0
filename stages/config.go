// Package stages implements the per-page stage graph: nine pure
// functions turning raw layout-model clusters and text cells into a
// typed, ordered sequence of document elements for one page.
package stages

import (
	"github.com/docling-go/docling/model"
	"github.com/docling-go/docling/tableformer"
)

// Stage1Config configures normalization. It has no tunables today;
// kept as a struct (rather than a bare function) so future coordinate-
// system options slot in without changing the stage's signature.
type Stage1Config struct{}

// DefaultStage1Config returns the zero-value configuration.
func DefaultStage1Config() Stage1Config { return Stage1Config{} }

// Stage2Config configures per-label confidence-floor filtering.
type Stage2Config struct {
	// Thresholds maps a label to the minimum confidence a cluster of
	// that label must have to survive. Labels absent from the map use
	// DefaultThreshold.
	Thresholds       map[model.Label]float64
	DefaultThreshold float64
}

// DefaultStage2Config returns the reference confidence floors: higher
// for Picture/Table (detector is noisier on large regions), lower for
// running text.
func DefaultStage2Config() Stage2Config {
	return Stage2Config{
		Thresholds: map[model.Label]float64{
			model.LabelPicture: 0.6,
			model.LabelTable:   0.6,
			model.LabelText:    0.3,
		},
		DefaultThreshold: 0.3,
	}
}

// Stage3Config configures container/overlap cleanup.
type Stage3Config struct {
	DominanceIoS float64
}

// DefaultStage3Config returns the reference 0.95 dominance threshold.
func DefaultStage3Config() Stage3Config {
	return Stage3Config{DominanceIoS: 0.95}
}

// Stage4Config configures cell-to-cluster assignment.
type Stage4Config struct {
	MinIoS float64
}

// DefaultStage4Config returns the reference 0.5 minimum IoS.
func DefaultStage4Config() Stage4Config {
	return Stage4Config{MinIoS: 0.5}
}

// Stage5Config configures cluster bbox tightening. No tunables; kept
// as a struct for signature symmetry with the other stages.
type Stage5Config struct{}

// DefaultStage5Config returns the zero-value configuration.
func DefaultStage5Config() Stage5Config { return Stage5Config{} }

// Stage6Config configures orphan-cluster creation from unassigned
// cells.
type Stage6Config struct {
	MaxCellHeight      float64
	MergeParagraphs    bool
	LineTolerance      float64
	ParagraphGapThresh float64
	TableIoSSkip       float64
}

// DefaultStage6Config returns the reference defaults: 100pt max cell
// height, paragraph merging on with 3pt line tolerance and 15pt
// paragraph gap, 0.5 IoS to skip cells already inside a table.
func DefaultStage6Config() Stage6Config {
	return Stage6Config{
		MaxCellHeight:      100,
		MergeParagraphs:    true,
		LineTolerance:      3,
		ParagraphGapThresh: 15,
		TableIoSSkip:       0.5,
	}
}

// Stage7Config configures Picture/Table child-cell routing ahead of
// TableFormer.
type Stage7Config struct {
	ChildIoS float64
}

// DefaultStage7Config returns the reference 0.8 child-containment IoS.
func DefaultStage7Config() Stage7Config {
	return Stage7Config{ChildIoS: 0.8}
}

// Stage8Config configures pairwise overlap resolution.
type Stage8Config struct {
	DropIoS  float64
	MergeIoU float64
}

// DefaultStage8Config returns the reference 0.8 drop threshold and 0.5
// same-label merge threshold.
func DefaultStage8Config() Stage8Config {
	return Stage8Config{DropIoS: 0.8, MergeIoU: 0.5}
}

// Stage9Config configures document-element assembly.
type Stage9Config struct {
	// AttachPictureOCR controls whether a Picture cluster's routed
	// child cells (see Stage7Config.ChildIoS) are sanitized and
	// attached as the FigureElement's OCRText. Default false: those
	// cells are left as independent orphan text items in reading
	// order, per the spec's stated default (switching this on changes
	// export ordering — a policy toggle, not a bug fix).
	AttachPictureOCR bool

	// TableBackend recognizes a Table cluster's grid structure. Nil
	// (the default) uses tableformer.GeometricBackend, which works
	// from PDF text-cell geometry alone and needs no page bitmap.
	TableBackend tableformer.Backend

	// TableCropper produces a preprocessed crop tensor for a table
	// cluster's bbox, wired in by the page worker loop once a
	// rendered page bitmap is available. If nil, TableBackend is
	// ignored and the geometric fallback runs regardless — there is
	// no image to feed a neural backend.
	TableCropper func(model.BoundingBox) []float32

	// TableOCR recognizes text in a table cell's bbox when no PDF
	// text cells intersect it. Nil disables the OCR fallback.
	TableOCR tableformer.OCREngine
}

// DefaultStage9Config returns the reference configuration:
// AttachPictureOCR off, geometric TableFormer fallback (no cropper,
// no OCR).
func DefaultStage9Config() Stage9Config { return Stage9Config{AttachPictureOCR: false} }

// PipelineConfig aggregates every per-stage configuration, mirroring
// the teacher's AnalyzerConfig pattern of one sub-config field per
// detection component.
type PipelineConfig struct {
	Stage1 Stage1Config
	Stage2 Stage2Config
	Stage3 Stage3Config
	Stage4 Stage4Config
	Stage5 Stage5Config
	Stage6 Stage6Config
	Stage7 Stage7Config
	Stage8 Stage8Config
	Stage9 Stage9Config
}

// DefaultPipelineConfig returns the full reference configuration.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Stage1: DefaultStage1Config(),
		Stage2: DefaultStage2Config(),
		Stage3: DefaultStage3Config(),
		Stage4: DefaultStage4Config(),
		Stage5: DefaultStage5Config(),
		Stage6: DefaultStage6Config(),
		Stage7: DefaultStage7Config(),
		Stage8: DefaultStage8Config(),
		Stage9: DefaultStage9Config(),
	}
}
