package geom

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

// Candidates returns the two perpendiculars of direction d:
// (-dy, dx) and (dy, -dx). They are always exact negations of each other.
func Candidates(d Vector) ([2]Vector, error) {
	if !isFinite(d.X) || !isFinite(d.Y) {
		return [2]Vector{}, errors.Wrapf(ErrNonFinite, "direction %v", d)
	}
	if d == (Vector{}) {
		return [2]Vector{}, errors.Wrap(ErrUndefinedSelection, "zero direction has no normal")
	}
	return [2]Vector{d.OrthogonalCounterClockwise(), d.OrthogonalClockwise()}, nil
}

// Normals returns the two normal candidates of s, derived from B - A.
func Normals(s Segment) ([2]Vector, error) {
	n, err := Candidates(s.Direction())
	if err != nil {
		return n, errors.Wrapf(err, "segment %v", s)
	}
	return n, nil
}

// UnitNormals is Normals scaled to unit length.
func UnitNormals(s Segment) ([2]Vector, error) {
	n, err := Normals(s)
	if err != nil {
		return n, err
	}
	return [2]Vector{n[0].Normalize(), n[1].Normalize()}, nil
}

// Reference is what a normal should point toward: a single point or the
// endpoints of another segment.
type Reference struct {
	Points []Point
}

// PointRef references a single point.
func PointRef(p Point) Reference {
	return Reference{Points: []Point{p}}
}

// SegmentRef references both endpoints of s.
func SegmentRef(s Segment) Reference {
	return Reference{Points: []Point{s.A, s.B}}
}

// Centroid returns the mean of the reference points.
func (r Reference) Centroid() Point {
	return Centroid(r.Points...)
}

func (r Reference) validate() error {
	if len(r.Points) == 0 {
		return errors.Wrap(ErrUndefinedSelection, "empty reference")
	}
	for _, p := range r.Points {
		if !p.IsFinite() {
			return errors.Wrapf(ErrNonFinite, "reference point %v", p)
		}
	}
	return nil
}

// Strategy picks which of two normal candidates anchored at origin is
// oriented toward a reference. It returns the chosen index.
type Strategy interface {
	Choose(origin Point, candidates [2]Vector, ref Reference) (int, error)
}

// ByDotProduct prefers the candidate with the larger summed dot product
// against the reference points, measured from the origin.
type ByDotProduct struct{}

// Choose implements Strategy.
func (ByDotProduct) Choose(origin Point, candidates [2]Vector, ref Reference) (int, error) {
	var scores [2]float64
	for i, n := range candidates {
		for _, p := range ref.Points {
			scores[i] += n.Dot(p.Sub(origin))
		}
	}
	if scalar.EqualWithinAbsOrRel(scores[0], scores[1], Epsilon, Epsilon) {
		return 0, errors.Wrap(ErrUndefinedSelection, "reference is level with the segment")
	}
	if scores[0] > scores[1] {
		return 0, nil
	}
	return 1, nil
}

// ByDistance translates each candidate to the origin and prefers the one
// whose tip lies closer to the reference centroid.
type ByDistance struct{}

// Choose implements Strategy.
func (ByDistance) Choose(origin Point, candidates [2]Vector, ref Reference) (int, error) {
	target := ref.Centroid()
	d0 := Distance(origin.Add(candidates[0]), target)
	d1 := Distance(origin.Add(candidates[1]), target)
	if scalar.EqualWithinAbsOrRel(d0, d1, Epsilon, Epsilon) {
		return 0, errors.Wrap(ErrUndefinedSelection, "candidates are equidistant from the reference")
	}
	if d0 < d1 {
		return 0, nil
	}
	return 1, nil
}

// SelectNormal returns the normal of s that points toward ref according to
// strategy, along with its index in Normals(s).
func SelectNormal(s Segment, ref Reference, strategy Strategy) (Vector, int, error) {
	candidates, err := Normals(s)
	if err != nil {
		return Vector{}, 0, err
	}
	if err := ref.validate(); err != nil {
		return Vector{}, 0, err
	}
	i, err := strategy.Choose(s.Midpoint(), candidates, ref)
	if err != nil {
		return Vector{}, 0, errors.Wrapf(err, "segment %v", s)
	}
	return candidates[i], i, nil
}

// Pair is the matching of one normal of segment A with one normal of
// segment B.
type Pair struct {
	A, B           Vector
	IndexA, IndexB int
	Dot            float64
	// Distance between the unit normals translated to their midpoints.
	Distance float64
}

// Facing finds the normals of a and b that face each other.
//
// Only pairs with the most negative dot product are considered; among them
// the one whose midpoint-anchored unit normals end up closest wins, which
// rejects back-to-back pairs. The result is reliable for non-degenerate,
// non-parallel opposing edges and for directly opposed parallel ones. When
// the remaining candidates cannot be told apart, ErrUndefinedSelection is
// returned.
func Facing(a, b Segment) (Pair, error) {
	if err := Validate(a); err != nil {
		return Pair{}, errors.Wrap(err, "first segment")
	}
	if err := Validate(b); err != nil {
		return Pair{}, errors.Wrap(err, "second segment")
	}
	na, err := Normals(a)
	if err != nil {
		return Pair{}, errors.Wrap(err, "first segment")
	}
	nb, err := Normals(b)
	if err != nil {
		return Pair{}, errors.Wrap(err, "second segment")
	}
	ua := [2]Vector{na[0].Normalize(), na[1].Normalize()}
	ub := [2]Vector{nb[0].Normalize(), nb[1].Normalize()}
	midA, midB := a.Midpoint(), b.Midpoint()

	minDot := math.Inf(1)
	for i := range na {
		for j := range nb {
			minDot = math.Min(minDot, ua[i].Dot(ub[j]))
		}
	}

	best := Pair{Distance: math.Inf(1)}
	ambiguous := false
	for i := range na {
		for j := range nb {
			dot := ua[i].Dot(ub[j])
			if !scalar.EqualWithinAbs(dot, minDot, Epsilon) {
				continue
			}
			dist := Distance(midA.Add(ua[i]), midB.Add(ub[j]))
			switch {
			case scalar.EqualWithinAbsOrRel(dist, best.Distance, Epsilon, Epsilon):
				ambiguous = true
			case dist < best.Distance:
				ambiguous = false
				best = Pair{
					A: na[i], B: nb[j],
					IndexA: i, IndexB: j,
					Dot:      na[i].Dot(nb[j]),
					Distance: dist,
				}
			}
		}
	}
	if ambiguous {
		return Pair{}, errors.Wrapf(ErrUndefinedSelection, "segments %v and %v", a, b)
	}
	return best, nil
}
