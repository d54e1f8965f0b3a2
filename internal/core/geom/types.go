// Package geom holds the 2D primitives and the two core operations built on
// them: bounded segment intersection and normal selection.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used when comparing slopes and zero vectors.
const Epsilon = 1e-9

// Point represents a 2D point in space
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add translates the point by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector pointing from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y}
}

// Vec reinterprets the point as a vector from the origin.
func (p Point) Vec() Vector {
	return Vector{X: p.X, Y: p.Y}
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Centroid returns the mean of the given points. It returns the zero point
// for an empty slice.
func Centroid(points ...Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(points))
	return Point{X: c.X / n, Y: c.Y / n}
}

// Vector is a free 2D vector with no position.
type Vector struct {
	X, Y float64
}

// Add returns v + w.
func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y}
}

// Neg returns -v.
func (v Vector) Neg() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Scale multiplies both components by f.
func (v Vector) Scale(f float64) Vector {
	return Vector{X: v.X * f, Y: v.Y * f}
}

// Dot returns the dot product v · w.
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z component of v × w.
func (v Vector) Cross(w Vector) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Mag returns the length of v.
func (v Vector) Mag() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vector) Normalize() Vector {
	mag := v.Mag()
	if mag > 0 {
		return v.Scale(1 / mag)
	}
	return v
}

// IsZero reports whether both components are within Epsilon of zero.
func (v Vector) IsZero() bool {
	return math.Abs(v.X) < Epsilon && math.Abs(v.Y) < Epsilon
}

// OrthogonalCounterClockwise returns v rotated by +90 degrees: (-y, x).
func (v Vector) OrthogonalCounterClockwise() Vector {
	return Vector{X: -v.Y, Y: v.X}
}

// OrthogonalClockwise returns v rotated by -90 degrees: (y, -x).
func (v Vector) OrthogonalClockwise() Vector {
	return Vector{X: v.Y, Y: -v.X}
}

// Angle returns the direction of v in radians, in (-pi, pi].
func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

func (v Vector) String() string {
	return fmt.Sprintf("<%g, %g>", v.X, v.Y)
}

// Segment is a finite straight path between two endpoints.
type Segment struct {
	A, B Point
}

// Seg is shorthand for a segment from (x1, y1) to (x2, y2).
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{A: Point{x1, y1}, B: Point{x2, y2}}
}

// Direction returns B - A.
func (s Segment) Direction() Vector {
	return s.B.Sub(s.A)
}

// IsDegenerate reports whether both endpoints coincide.
func (s Segment) IsDegenerate() bool {
	return s.A == s.B
}

// IsVertical reports whether the segment has no x extent. Degenerate
// segments are not vertical.
func (s Segment) IsVertical() bool {
	return s.A.X == s.B.X && s.A.Y != s.B.Y
}

// Midpoint returns the point halfway between A and B.
func (s Segment) Midpoint() Point {
	return Point{X: (s.A.X + s.B.X) / 2, Y: (s.A.Y + s.B.Y) / 2}
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return Distance(s.A, s.B)
}

// Angle returns the direction of the segment in degrees, in (-180, 180].
// A degenerate segment has angle 0.
func (s Segment) Angle() float64 {
	if s.IsDegenerate() {
		return 0
	}
	return s.Direction().Angle() * 180 / math.Pi
}

// Bounds returns the axis-aligned bounding box of the segment.
func (s Segment) Bounds() Bounds {
	return Bounds{
		Min: Point{X: math.Min(s.A.X, s.B.X), Y: math.Min(s.A.Y, s.B.Y)},
		Max: Point{X: math.Max(s.A.X, s.B.X), Y: math.Max(s.A.Y, s.B.Y)},
	}
}

// Reversed returns the segment with its endpoints swapped.
func (s Segment) Reversed() Segment {
	return Segment{A: s.B, B: s.A}
}

func (s Segment) String() string {
	return fmt.Sprintf("[%v -> %v]", s.A, s.B)
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Min, Max Point
}

// Overlaps reports whether two boxes share at least one point.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.Max.X >= o.Min.X && o.Max.X >= b.Min.X &&
		b.Max.Y >= o.Min.Y && o.Max.Y >= b.Min.Y
}

// Union returns the smallest box containing both.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Min: Point{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Size returns the width and height of the box.
func (b Bounds) Size() (float64, float64) {
	return b.Max.X - b.Min.X, b.Max.Y - b.Min.Y
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
