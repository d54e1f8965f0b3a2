package scene

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/facing/internal/core/geom"
)

// Crossing records two shapes whose segments intersect.
type Crossing struct {
	A, B  string
	Point geom.Point
}

// FacingPair records the normals of two shapes that face each other.
type FacingPair struct {
	A, B string
	Pair geom.Pair
}

// ShapeInfo is the per-shape part of a report.
type ShapeInfo struct {
	Shape
	Midpoint geom.Point
	Normals  [2]geom.Vector
	// Inward is the index of the normal pointing toward the scene centroid,
	// or -1 when the centroid is level with the segment.
	Inward int
}

// Report is the result of analysing a scene.
type Report struct {
	Scene     string
	Shapes    []ShapeInfo
	Crossings []Crossing
	Facing    []FacingPair
	// Ambiguous lists pairs for which no facing normals could be chosen.
	Ambiguous [][2]string
}

// Intersects reports whether the named shapes cross.
func (r *Report) Intersects(a, b string) bool {
	for _, c := range r.Crossings {
		if (c.A == a && c.B == b) || (c.A == b && c.B == a) {
			return true
		}
	}
	return false
}

// AnyIntersection reports whether at least one pair crosses.
func (r *Report) AnyIntersection() bool {
	return len(r.Crossings) > 0
}

// Status is the human-readable intersection label.
func (r *Report) Status() string {
	if r.AnyIntersection() {
		return "LINES INTERSECT"
	}
	return "LINES DO NOT INTERSECT"
}

// FacingOf returns the facing pair recorded for the named shapes, oriented
// so that Pair.A belongs to a.
func (r *Report) FacingOf(a, b string) (geom.Pair, bool) {
	for _, f := range r.Facing {
		switch {
		case f.A == a && f.B == b:
			return f.Pair, true
		case f.A == b && f.B == a:
			p := f.Pair
			p.A, p.B = p.B, p.A
			p.IndexA, p.IndexB = p.IndexB, p.IndexA
			return p, true
		}
	}
	return geom.Pair{}, false
}

// Analyzer runs pairwise checks over a scene.
type Analyzer struct {
	logger logrus.FieldLogger
}

// NewAnalyzer creates an analyzer that logs through logger.
func NewAnalyzer(logger logrus.FieldLogger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze validates s, finds every crossing pair using the R-tree for
// pruning, and matches facing normals for every pair of shapes.
func (a *Analyzer) Analyze(s *Scene) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scene")
	}

	idx, err := NewIndex(s.Shapes)
	if err != nil {
		return nil, err
	}

	report := &Report{Scene: s.Name}
	center := s.Centroid()
	for _, sh := range s.Shapes {
		info := ShapeInfo{Shape: sh, Midpoint: sh.Segment.Midpoint(), Inward: -1}
		info.Normals, _ = geom.Normals(sh.Segment)
		if _, i, err := geom.SelectNormal(sh.Segment, geom.PointRef(center), geom.ByDotProduct{}); err == nil {
			info.Inward = i
		}
		report.Shapes = append(report.Shapes, info)
	}

	checked := 0
	for i, sh := range s.Shapes {
		for _, j := range idx.Candidates(i) {
			checked++
			other := s.Shapes[j]
			p, ok, err := geom.Intersection(sh.Segment, other.Segment)
			if err != nil {
				return nil, errors.Wrapf(err, "%q against %q", sh.Name, other.Name)
			}
			if ok {
				report.Crossings = append(report.Crossings, Crossing{A: sh.Name, B: other.Name, Point: p})
			}
		}

		for _, other := range s.Shapes[i+1:] {
			pair, err := geom.Facing(sh.Segment, other.Segment)
			if errors.Is(err, geom.ErrUndefinedSelection) {
				a.logger.WithFields(logrus.Fields{
					"action": "scene_analyze",
					"a":      sh.Name,
					"b":      other.Name,
				}).WithError(err).Warn("no facing normals")
				report.Ambiguous = append(report.Ambiguous, [2]string{sh.Name, other.Name})
				continue
			}
			if err != nil {
				return nil, err
			}
			report.Facing = append(report.Facing, FacingPair{A: sh.Name, B: other.Name, Pair: pair})
		}
	}

	n := len(s.Shapes)
	a.logger.WithFields(logrus.Fields{
		"action":    "scene_analyze",
		"scene":     s.Name,
		"shapes":    n,
		"pairs":     n * (n - 1) / 2,
		"narrowed":  checked,
		"crossings": len(report.Crossings),
		"facing":    len(report.Facing),
		"ambiguous": len(report.Ambiguous),
	}).Debug("scene analyzed")

	return report, nil
}
