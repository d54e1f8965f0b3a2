package viewfactor

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"chosenoffset.com/facing/internal/core/geom"
)

// Emitter is a diffuse segment that emits rays from its inward face.
type Emitter struct {
	Name    string
	Segment geom.Segment
	// Normal is the unit normal on the emitting side.
	Normal geom.Vector
	// NormalIndex is the position of Normal in geom.Normals(Segment).
	NormalIndex int
}

// NewEmitter builds an emitter for s whose emitting side faces center.
func NewEmitter(name string, s geom.Segment, center geom.Point) (*Emitter, error) {
	n, i, err := geom.SelectNormal(s, geom.PointRef(center), geom.ByDotProduct{})
	if err != nil {
		return nil, errors.Wrapf(err, "could not orient emitter %q", name)
	}
	return &Emitter{
		Name:        name,
		Segment:     s,
		Normal:      n.Normalize(),
		NormalIndex: i,
	}, nil
}

// Ray is a half-line leaving an emitter.
type Ray struct {
	Origin geom.Point
	Dir    geom.Vector
	// Angle is the direction of the ray in radians.
	Angle float64
}

// EmitRay draws one ray: a uniformly placed origin along the segment and a
// cosine-weighted direction around the emitting normal. u must produce values
// in [0, 1).
func (e *Emitter) EmitRay(u distuv.Uniform) (Ray, error) {
	origin := e.Segment.Lerp(u.Rand())
	if !geom.PointOnSegment(origin, e.Segment, geom.PointTolerance) {
		return Ray{}, errors.Errorf("sampled origin %s is not on emitter %q", origin, e.Name)
	}

	// Lambert's law in 2D: the sine of the angle off the normal is uniform.
	angle := e.Normal.Angle() + math.Asin(2*u.Rand()-1)
	return Ray{
		Origin: origin,
		Dir:    geom.Vector{X: math.Cos(angle), Y: math.Sin(angle)},
		Angle:  angle,
	}, nil
}
