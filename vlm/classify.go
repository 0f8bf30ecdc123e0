package vlm

import (
	"image"
	"image/color"
	"math"

	"github.com/docling-go/docling/model"
)

// RegionKind is the pre-classification result ClassifyRegion produces:
// a finer-grained call than the layout label alone, since the layout
// model only ever emits Code or Formula for these regions and the two
// are easy to confuse (a short formula can look like a one-line code
// snippet, and vice versa).
type RegionKind int

const (
	// RegionKindCode indicates a region of monospaced source text.
	RegionKindCode RegionKind = iota
	// RegionKindFormula indicates a region of mathematical notation.
	RegionKindFormula
)

func (k RegionKind) String() string {
	if k == RegionKindCode {
		return "code"
	}
	return "formula"
}

const (
	inkThreshold  = 128  // luminance below this counts as ink
	gapColumns    = 2    // background columns needed to end a glyph segment
	widthCVCutoff = 0.30 // below this, glyph widths look monospaced
)

// ClassifyRegion distinguishes code from formula regions by the shape
// of their ink, rather than trusting the layout label outright: source
// code renders as a sequence of near-uniform-width glyph columns
// (monospace font), while formulas mix narrow operators, wide
// fraction bars, and variable-height sub/superscripts. The heuristic
// measures glyph-column widths across the region and falls back to the
// layout model's own label when the image carries too little ink to
// judge (a near-blank crop, or an extraction failure upstream).
func ClassifyRegion(img image.Image, label model.Label) RegionKind {
	segments := glyphColumnSegments(img)
	if len(segments) < 3 {
		return labelToKind(label)
	}

	widths := make([]float64, len(segments))
	for i, s := range segments {
		widths[i] = float64(s.end - s.start)
	}
	if coefficientOfVariation(widths) < widthCVCutoff {
		return RegionKindCode
	}
	return RegionKindFormula
}

func labelToKind(label model.Label) RegionKind {
	if label == model.LabelFormula {
		return RegionKindFormula
	}
	return RegionKindCode
}

type columnSegment struct {
	start, end int
}

// glyphColumnSegments scans the image column by column, thresholding
// each pixel to ink/background via its luminance, and groups
// consecutive ink-bearing columns into segments separated by at least
// gapColumns background columns.
func glyphColumnSegments(img image.Image) []columnSegment {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	hasInk := make([]bool, width)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if isInk(img.At(bounds.Min.X+x, bounds.Min.Y+y)) {
				hasInk[x] = true
				break
			}
		}
	}

	var segments []columnSegment
	gap := gapColumns + 1
	start := -1
	for x := 0; x < width; x++ {
		if hasInk[x] {
			if start < 0 {
				start = x
			}
			gap = 0
			continue
		}
		gap++
		if start >= 0 && gap > gapColumns {
			segments = append(segments, columnSegment{start: start, end: x - gap + 1})
			start = -1
		}
	}
	if start >= 0 {
		segments = append(segments, columnSegment{start: start, end: width})
	}
	return segments
}

func isInk(c color.Color) bool {
	gray := color.GrayModel.Convert(c).(color.Gray)
	return gray.Y < inkThreshold
}

func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return math.Sqrt(variance) / mean
}
