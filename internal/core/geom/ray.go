package geom

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// PointTolerance is the default distance under which a point counts as lying
// on a segment.
const PointTolerance = 1e-4

// PointOnSegment reports whether p lies on s within tol. A degenerate
// segment only contains its own endpoint.
func PointOnSegment(p Point, s Segment, tol float64) bool {
	if s.IsDegenerate() {
		return Distance(p, s.A) <= tol
	}

	d := s.Direction()
	// distance from the infinite line
	if !scalar.EqualWithinAbs(d.Cross(p.Sub(s.A))/d.Mag(), 0, tol) {
		return false
	}

	b := s.Bounds()
	return p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= b.Min.Y-tol && p.Y <= b.Max.Y+tol
}

// Lerp returns the point a fraction f of the way from A to B.
func (s Segment) Lerp(f float64) Point {
	return Point{
		X: f*s.B.X + (1-f)*s.A.X,
		Y: f*s.B.Y + (1-f)*s.A.Y,
	}
}

// RaySegment checks if a ray intersects a line segment.
// Returns: (intersects bool, t float64, intersection point Point), where t is
// measured in multiples of dir from origin. Parallel rays never intersect.
func RaySegment(origin Point, dir Vector, seg Segment) (bool, float64, Point) {
	// Ray: P = origin + t * dir for t >= 0
	// Segment: Q = seg.A + u * (seg.B - seg.A) for 0 <= u <= 1
	segDir := seg.Direction()

	denominator := dir.Cross(segDir)
	if math.Abs(denominator) < 1e-10 {
		return false, 0, Point{}
	}

	diff := seg.A.Sub(origin)
	u := diff.Cross(dir) / denominator
	t := diff.Cross(segDir) / denominator

	if u >= 0 && u <= 1 && t >= 0 {
		return true, t, origin.Add(dir.Scale(t))
	}

	return false, 0, Point{}
}
