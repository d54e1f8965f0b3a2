// Package viewfactor estimates 2D diffuse view factors between segments,
// in closed form for simple layouts and by Monte Carlo ray tracing otherwise.
package viewfactor

import (
	"math"

	"github.com/pkg/errors"

	"chosenoffset.com/facing/internal/core/geom"
)

// AdjacentStrips is the view factor from a strip of the given width to a
// strip of the given height that shares an edge with it at a right angle.
func AdjacentStrips(height, width float64) (float64, error) {
	if height <= 0 || width <= 0 {
		return 0, errors.Errorf("strip dimensions must be positive, got height %g and width %g", height, width)
	}
	h := height / width
	return (1 + h - math.Sqrt(1+h*h)) / 2, nil
}

// ParallelStrips is the view factor from a strip of width w1 to a directly
// opposed parallel strip of width w2, centred on each other at the given
// separation.
func ParallelStrips(separation, w1, w2 float64) (float64, error) {
	if separation <= 0 || w1 <= 0 || w2 <= 0 {
		return 0, errors.Errorf("separation and widths must be positive, got %g, %g, %g", separation, w1, w2)
	}
	n1 := w1 / separation
	n2 := w2 / separation

	denom := 2 * n1
	crossed := math.Sqrt((n1+n2)*(n1+n2) + 4)
	uncrossed := math.Sqrt((n2-n1)*(n2-n1) + 4)

	return crossed/denom - uncrossed/denom, nil
}

// CrossedStrings is Hottel's crossed-strings view factor from a to b: half
// the difference between the crossed and uncrossed endpoint distances,
// divided by the length of a. It assumes nothing blocks the view and that
// the segments do not cross.
func CrossedStrings(a, b geom.Segment) (float64, error) {
	if err := geom.Validate(a); err != nil {
		return 0, err
	}
	if err := geom.Validate(b); err != nil {
		return 0, err
	}
	straight := geom.Distance(a.A, b.A) + geom.Distance(a.B, b.B)
	crossed := geom.Distance(a.A, b.B) + geom.Distance(a.B, b.A)
	return math.Abs(crossed-straight) / (2 * a.Length()), nil
}
