package geom

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

// Line is the infinite line through a segment in slope/intercept form.
// Vertical lines carry their x instead of a slope.
type Line struct {
	Slope     float64
	Intercept float64
	Vertical  bool
	X         float64
}

// LineOf returns the line through s. It fails for degenerate or non-finite
// segments.
func LineOf(s Segment) (Line, error) {
	if err := Validate(s); err != nil {
		return Line{}, err
	}
	if s.A.X == s.B.X {
		return Line{Vertical: true, X: s.A.X}, nil
	}
	slope := (s.B.Y - s.A.Y) / (s.B.X - s.A.X)
	return Line{Slope: slope, Intercept: s.A.Y - slope*s.A.X}, nil
}

// YAt evaluates a non-vertical line at x.
func (l Line) YAt(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Parallel reports whether both lines share a slope. Two vertical lines are
// parallel.
func (l Line) Parallel(o Line) bool {
	if l.Vertical || o.Vertical {
		return l.Vertical && o.Vertical
	}
	return scalar.EqualWithinAbsOrRel(l.Slope, o.Slope, Epsilon, Epsilon)
}

// Intersects reports whether two bounded segments share a point.
//
// Parallel segments, collinear overlapping ones included, never intersect.
// Degenerate or non-finite input yields false and an error wrapping
// ErrDegenerateSegment or ErrNonFinite.
func Intersects(a, b Segment) (bool, error) {
	_, ok, err := Intersection(a, b)
	return ok, err
}

// Intersection is Intersects that also returns the crossing point.
func Intersection(a, b Segment) (Point, bool, error) {
	if err := Validate(a); err != nil {
		return Point{}, false, errors.Wrap(err, "first segment")
	}
	if err := Validate(b); err != nil {
		return Point{}, false, errors.Wrap(err, "second segment")
	}

	boundsA, boundsB := a.Bounds(), b.Bounds()
	if !boundsA.Overlaps(boundsB) {
		return Point{}, false, nil
	}

	lineA, err := LineOf(a)
	if err != nil {
		return Point{}, false, errors.Wrap(err, "first segment")
	}
	lineB, err := LineOf(b)
	if err != nil {
		return Point{}, false, errors.Wrap(err, "second segment")
	}
	if lineA.Parallel(lineB) {
		return Point{}, false, nil
	}

	switch {
	case lineA.Vertical:
		p, ok := crossVertical(boundsA, lineA, boundsB, lineB)
		return p, ok, nil
	case lineB.Vertical:
		p, ok := crossVertical(boundsB, lineB, boundsA, lineA)
		return p, ok, nil
	}

	x := (lineB.Intercept - lineA.Intercept) / (lineA.Slope - lineB.Slope)
	lo := math.Max(boundsA.Min.X, boundsB.Min.X)
	hi := math.Min(boundsA.Max.X, boundsB.Max.X)
	if x < lo || x > hi {
		return Point{}, false, nil
	}
	return Point{X: x, Y: lineA.YAt(x)}, true, nil
}

// crossVertical solves the vertical line directly by x and checks that the
// other line meets it inside the vertical segment's y range.
func crossVertical(vb Bounds, vertical Line, ob Bounds, other Line) (Point, bool) {
	x := vertical.X
	if x < ob.Min.X || x > ob.Max.X {
		return Point{}, false
	}
	y := other.YAt(x)
	if y < vb.Min.Y || y > vb.Max.Y {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// IntersectsXY takes two segments in grouped form: xs = [x1, x2, x3, x4] and
// ys = [y1, y2, y3, y4], the first two entries belonging to the first segment.
func IntersectsXY(xs, ys []float64) (bool, error) {
	if len(xs) != 4 || len(ys) != 4 {
		return false, errors.Wrapf(ErrMismatchedLengths, "got %d x and %d y values, want 4 each", len(xs), len(ys))
	}
	a := Seg(xs[0], ys[0], xs[1], ys[1])
	b := Seg(xs[2], ys[2], xs[3], ys[3])
	return Intersects(a, b)
}
