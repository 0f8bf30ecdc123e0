package model

import "math"

// CoordOrigin identifies which corner of a page a BoundingBox's
// vertical axis is measured from. TopLeft is canonical for in-pipeline
// work; BottomLeft is the external serialization convention (and the
// convention BBox in geometry.go already uses for raw PDF content).
type CoordOrigin int

const (
	TopLeft CoordOrigin = iota
	BottomLeft
)

func (c CoordOrigin) String() string {
	if c == BottomLeft {
		return "BottomLeft"
	}
	return "TopLeft"
}

// BoundingBox is the stage-graph's working rectangle: left, top, right,
// bottom plus the origin its vertical axis is measured from. Detectors
// may hand back boxes with inverted edges (l>r or t>b); every method
// here tolerates that rather than assuming a normalized box.
type BoundingBox struct {
	L, T, R, B  float64
	CoordOrigin CoordOrigin
}

// NewBoundingBox builds a BoundingBox, normalizing inverted edges.
func NewBoundingBox(l, t, r, b float64, origin CoordOrigin) BoundingBox {
	if l > r {
		l, r = r, l
	}
	if t > b {
		t, b = b, t
	}
	return BoundingBox{L: l, T: t, R: r, B: b, CoordOrigin: origin}
}

// Width returns the horizontal extent, tolerating inverted edges.
func (bb BoundingBox) Width() float64 { return math.Abs(bb.R - bb.L) }

// Height returns the vertical extent, tolerating inverted edges.
func (bb BoundingBox) Height() float64 { return math.Abs(bb.B - bb.T) }

// Area returns width*height.
func (bb BoundingBox) Area() float64 { return bb.Width() * bb.Height() }

// IsValid reports whether the box has positive area.
func (bb BoundingBox) IsValid() bool { return bb.Width() > 0 && bb.Height() > 0 }

// IsFinite reports whether all four edges are finite numbers.
func (bb BoundingBox) IsFinite() bool {
	return !math.IsNaN(bb.L) && !math.IsNaN(bb.T) && !math.IsNaN(bb.R) && !math.IsNaN(bb.B) &&
		!math.IsInf(bb.L, 0) && !math.IsInf(bb.T, 0) && !math.IsInf(bb.R, 0) && !math.IsInf(bb.B, 0)
}

// normalized returns (left, top, right, bottom) with min before max on
// each axis, independent of which corner is "top" by value.
func (bb BoundingBox) normalized() (l, t, r, b float64) {
	l, r = math.Min(bb.L, bb.R), math.Max(bb.L, bb.R)
	t, b = math.Min(bb.T, bb.B), math.Max(bb.T, bb.B)
	return
}

// ToBottomLeftOrigin maps a TopLeft-origin box into BottomLeft-origin
// coordinates given the page height: t' = h - t, b' = h - b. The
// result has t > b, matching the BottomLeft convention that higher y
// is further up the page. Calling it twice round-trips to the input.
func (bb BoundingBox) ToBottomLeftOrigin(pageHeight float64) BoundingBox {
	newOrigin := TopLeft
	if bb.CoordOrigin == TopLeft {
		newOrigin = BottomLeft
	}
	return BoundingBox{
		L:           bb.L,
		R:           bb.R,
		T:           pageHeight - bb.T,
		B:           pageHeight - bb.B,
		CoordOrigin: newOrigin,
	}
}

// IntersectionArea returns the area of overlap between two boxes,
// tolerating inverted edges and differing origins are not reconciled
// here — callers must ensure both boxes share a coordinate origin.
func (bb BoundingBox) IntersectionArea(other BoundingBox) float64 {
	l1, t1, r1, b1 := bb.normalized()
	l2, t2, r2, b2 := other.normalized()

	left := math.Max(l1, l2)
	right := math.Min(r1, r2)
	top := math.Max(t1, t2)
	bottom := math.Min(b1, b2)

	if right <= left || bottom <= top {
		return 0
	}
	return (right - left) * (bottom - top)
}

// IntersectionOverSelf returns intersection_area / area(bb). Asymmetric:
// IoS(a,b) != IoS(b,a) in general.
func (bb BoundingBox) IntersectionOverSelf(other BoundingBox) float64 {
	area := bb.Area()
	if area == 0 {
		return 0
	}
	return bb.IntersectionArea(other) / area
}

// IoU returns the standard intersection-over-union.
func (bb BoundingBox) IoU(other BoundingBox) float64 {
	inter := bb.IntersectionArea(other)
	if inter == 0 {
		return 0
	}
	union := bb.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// OverlapsHorizontally reports whether the two boxes' horizontal
// extents overlap at all, ignoring the vertical axis.
func (bb BoundingBox) OverlapsHorizontally(other BoundingBox) bool {
	l1, _, r1, _ := bb.normalized()
	l2, _, r2, _ := other.normalized()
	return l1 < r2 && l2 < r1
}

// OverlapsVertically reports whether the two boxes' vertical extents
// overlap at all, ignoring the horizontal axis.
func (bb BoundingBox) OverlapsVertically(other BoundingBox) bool {
	_, t1, _, b1 := bb.normalized()
	_, t2, _, b2 := other.normalized()
	return t1 < b2 && t2 < b1
}

// OverlapsVerticallyWithIoU reports vertical overlap and also returns
// the 1-D IoU of the two boxes' vertical spans, useful for reading-
// order row grouping.
func (bb BoundingBox) OverlapsVerticallyWithIoU(other BoundingBox) (bool, float64) {
	_, t1, _, b1 := bb.normalized()
	_, t2, _, b2 := other.normalized()
	top := math.Max(t1, t2)
	bottom := math.Min(b1, b2)
	if bottom <= top {
		return false, 0
	}
	inter := bottom - top
	union := (b1 - t1) + (b2 - t2) - inter
	if union <= 0 {
		return true, 0
	}
	return true, inter / union
}

// DefaultContainmentThreshold is the default IoS threshold used by
// containment tests throughout the stage graph.
const DefaultContainmentThreshold = 0.8

// Contains reports whether other is contained within bb at or above
// the default IoS threshold (from other's perspective).
func (bb BoundingBox) Contains(other BoundingBox) bool {
	return other.IntersectionOverSelf(bb) >= DefaultContainmentThreshold
}

// Union returns the smallest box covering both bb and other.
func (bb BoundingBox) Union(other BoundingBox) BoundingBox {
	l1, t1, r1, b1 := bb.normalized()
	l2, t2, r2, b2 := other.normalized()
	return BoundingBox{
		L:           math.Min(l1, l2),
		T:           math.Min(t1, t2),
		R:           math.Max(r1, r2),
		B:           math.Max(b1, b2),
		CoordOrigin: bb.CoordOrigin,
	}
}

// BoundingRectangle is a (possibly rotated) quadrilateral defined by
// four corners in order.
type BoundingRectangle struct {
	TopLeft, TopRight, BottomRight, BottomLeftPt Point
	CoordOrigin                                  CoordOrigin
}

// ToBoundingBox returns the axis-aligned projection of the
// quadrilateral: the min/max of its four corners.
func (r BoundingRectangle) ToBoundingBox() BoundingBox {
	xs := []float64{r.TopLeft.X, r.TopRight.X, r.BottomRight.X, r.BottomLeftPt.X}
	ys := []float64{r.TopLeft.Y, r.TopRight.Y, r.BottomRight.Y, r.BottomLeftPt.Y}
	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for _, x := range xs[1:] {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
	}
	for _, y := range ys[1:] {
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return BoundingBox{L: minX, T: minY, R: maxX, B: maxY, CoordOrigin: r.CoordOrigin}
}

// RectFromBoundingBox expands an axis-aligned box into a degenerate
// (unrotated) BoundingRectangle — the corner-expansion helper SimpleTextCell
// uses to lift into a full TextCell.
func RectFromBoundingBox(bb BoundingBox) BoundingRectangle {
	l, t, r, b := bb.normalized()
	return BoundingRectangle{
		TopLeft:      Point{X: l, Y: t},
		TopRight:     Point{X: r, Y: t},
		BottomRight:  Point{X: r, Y: b},
		BottomLeftPt: Point{X: l, Y: b},
		CoordOrigin:  bb.CoordOrigin,
	}
}
