package viewfactor

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"chosenoffset.com/facing/internal/core/geom"
	"chosenoffset.com/facing/internal/core/scene"
)

// hitEpsilon ignores hits at the ray origin, which happen when a target shares
// an endpoint with the emitter.
const hitEpsilon = 1e-9

// Estimate is the view factor from one shape to another.
type Estimate struct {
	Target     string
	ViewFactor float64
	// StdErr is the standard error of ViewFactor over the batches.
	StdErr float64
	Hits   int
}

// SourceResult holds every estimate for rays leaving one shape.
type SourceResult struct {
	Source  string
	Normal  geom.Vector
	Emitted int
	Escaped int
	Targets []Estimate
}

// Estimate returns the estimate toward target.
func (r SourceResult) Estimate(target string) (Estimate, bool) {
	for _, e := range r.Targets {
		if e.Target == target {
			return e, true
		}
	}
	return Estimate{}, false
}

// Result is the outcome of a simulation run.
type Result struct {
	Scene   string
	Sources []SourceResult
	// Skipped lists shapes that could not be oriented toward the scene centre.
	Skipped []string
}

// Source returns the result for rays leaving name.
func (r *Result) Source(name string) (SourceResult, bool) {
	for _, s := range r.Sources {
		if s.Source == name {
			return s, true
		}
	}
	return SourceResult{}, false
}

// Simulation estimates view factors by tracing diffuse rays.
type Simulation struct {
	Emissions int
	Batches   int
	Seed      uint64

	logger logrus.FieldLogger
}

// NewSimulation creates a simulation emitting the given number of rays per
// shape, split into batches for the error estimate.
func NewSimulation(emissions, batches int, seed uint64, logger logrus.FieldLogger) *Simulation {
	return &Simulation{
		Emissions: emissions,
		Batches:   batches,
		Seed:      seed,
		logger:    logger,
	}
}

// Run traces rays from every shape of s and counts, per target, the rays
// whose nearest hit is that target. The same seed always produces the same
// result.
func (sim *Simulation) Run(s *scene.Scene) (*Result, error) {
	if sim.Emissions <= 0 {
		return nil, errors.Errorf("emissions must be positive, got %d", sim.Emissions)
	}
	batches := sim.Batches
	if batches <= 0 {
		batches = 1
	}
	if batches > sim.Emissions {
		batches = sim.Emissions
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid scene")
	}

	center := s.Centroid()
	result := &Result{Scene: s.Name}
	for i, sh := range s.Shapes {
		em, err := NewEmitter(sh.Name, sh.Segment, center)
		if errors.Is(err, geom.ErrUndefinedSelection) {
			sim.logger.WithFields(logrus.Fields{
				"action": "viewfactor_run",
				"shape":  sh.Name,
			}).WithError(err).Warn("skipping emitter")
			result.Skipped = append(result.Skipped, sh.Name)
			continue
		}
		if err != nil {
			return nil, err
		}

		src, err := sim.trace(em, s.Shapes, i, batches)
		if err != nil {
			return nil, err
		}
		result.Sources = append(result.Sources, src)

		sim.logger.WithFields(logrus.Fields{
			"action":  "viewfactor_run",
			"shape":   sh.Name,
			"emitted": src.Emitted,
			"escaped": src.Escaped,
		}).Debug("emitter traced")
	}

	return result, nil
}

func (sim *Simulation) trace(em *Emitter, shapes []scene.Shape, self, batches int) (SourceResult, error) {
	u := distuv.Uniform{
		Min: 0,
		Max: 1,
		Src: rand.NewSource(sim.Seed + uint64(self)),
	}

	hits := make([]int, len(shapes))
	perBatch := make([][]float64, len(shapes))
	for j := range perBatch {
		perBatch[j] = make([]float64, batches)
	}

	escaped := 0
	for b := 0; b < batches; b++ {
		n := sim.Emissions / batches
		if b < sim.Emissions%batches {
			n++
		}
		counts := make([]int, len(shapes))
		for k := 0; k < n; k++ {
			ray, err := em.EmitRay(u)
			if err != nil {
				return SourceResult{}, err
			}
			j := nearest(ray, shapes, self)
			if j < 0 {
				escaped++
				continue
			}
			counts[j]++
		}
		for j, c := range counts {
			hits[j] += c
			perBatch[j][b] = float64(c) / float64(n)
		}
	}

	src := SourceResult{
		Source:  em.Name,
		Normal:  em.Normal,
		Emitted: sim.Emissions,
		Escaped: escaped,
	}
	for j, sh := range shapes {
		if j == self {
			continue
		}
		est := Estimate{
			Target:     sh.Name,
			ViewFactor: float64(hits[j]) / float64(sim.Emissions),
			Hits:       hits[j],
		}
		if batches > 1 {
			_, std := stat.MeanStdDev(perBatch[j], nil)
			est.StdErr = std / math.Sqrt(float64(batches))
		}
		src.Targets = append(src.Targets, est)
	}
	return src, nil
}

// nearest returns the index of the first shape hit by ray, or -1.
func nearest(ray Ray, shapes []scene.Shape, self int) int {
	best := -1
	bestT := math.Inf(1)
	for j, sh := range shapes {
		if j == self {
			continue
		}
		ok, t, _ := geom.RaySegment(ray.Origin, ray.Dir, sh.Segment)
		if ok && t > hitEpsilon && t < bestT {
			best, bestT = j, t
		}
	}
	return best
}
