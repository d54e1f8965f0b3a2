package geom

import (
	"github.com/pkg/errors"
)

var (
	// ErrDegenerateSegment is returned when a segment's endpoints coincide.
	ErrDegenerateSegment = errors.New("degenerate segment")

	// ErrUndefinedSelection is returned when no normal can be chosen, either
	// because both candidates are zero or because they score the same.
	ErrUndefinedSelection = errors.New("undefined normal selection")

	// ErrNonFinite is returned for NaN or infinite coordinates.
	ErrNonFinite = errors.New("non-finite coordinate")

	// ErrMismatchedLengths is returned when grouped coordinate slices do not
	// describe exactly two segments.
	ErrMismatchedLengths = errors.New("mismatched coordinate lengths")
)

// Validate checks that s has finite coordinates and a non-zero length.
func Validate(s Segment) error {
	if !s.A.IsFinite() || !s.B.IsFinite() {
		return errors.Wrapf(ErrNonFinite, "segment %v", s)
	}
	if s.IsDegenerate() {
		return errors.Wrapf(ErrDegenerateSegment, "segment %v", s)
	}
	return nil
}
