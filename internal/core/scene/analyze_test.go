package scene

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/facing/internal/core/geom"
)

func nullLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

func TestAnalyze_Sample(t *testing.T) {
	report, err := NewAnalyzer(nullLogger()).Analyze(Sample())
	require.NoError(t, err)

	assert.False(t, report.AnyIntersection())
	assert.Equal(t, "LINES DO NOT INTERSECT", report.Status())

	require.Len(t, report.Shapes, 2)
	assert.Equal(t, geom.Pt(2, 3), report.Shapes[0].Midpoint)
	assert.Equal(t, geom.Pt(-2, 5.5), report.Shapes[1].Midpoint)
	assert.Equal(t, 0, report.Shapes[0].Inward)
	assert.Equal(t, 0, report.Shapes[1].Inward)

	pair, ok := report.FacingOf("first", "second")
	require.True(t, ok)
	assert.Equal(t, geom.Vector{X: -2, Y: 2}, pair.A)
	assert.Equal(t, geom.Vector{X: 3, Y: 0}, pair.B)

	swapped, ok := report.FacingOf("second", "first")
	require.True(t, ok)
	assert.Equal(t, pair.B, swapped.A)
	assert.Equal(t, pair.IndexB, swapped.IndexA)
}

func TestAnalyze_Crossings(t *testing.T) {
	s := &Scene{
		Name: "grid",
		Shapes: []Shape{
			{Name: "diag", Segment: geom.Seg(0, 0, 4, 4)},
			{Name: "anti", Segment: geom.Seg(0, 4, 4, 0)},
			{Name: "post", Segment: geom.Seg(3, 0, 3, 5)},
			{Name: "far", Segment: geom.Seg(100, 100, 101, 101)},
		},
	}
	report, err := NewAnalyzer(nullLogger()).Analyze(s)
	require.NoError(t, err)

	assert.True(t, report.Intersects("diag", "anti"))
	assert.True(t, report.Intersects("post", "diag"))
	assert.True(t, report.Intersects("anti", "post"))
	assert.False(t, report.Intersects("far", "diag"))
	assert.Len(t, report.Crossings, 3)
	assert.Equal(t, "LINES INTERSECT", report.Status())
	assert.Equal(t, geom.Pt(2, 2), report.Crossings[0].Point)
}

func TestAnalyze_Ambiguous(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := &Scene{Shapes: []Shape{
		{Name: "left", Segment: geom.Seg(0, 0, 1, 0)},
		{Name: "right", Segment: geom.Seg(2, 0, 3, 0)},
	}}

	report, err := NewAnalyzer(logger).Analyze(s)
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"left", "right"}}, report.Ambiguous)
	assert.Empty(t, report.Facing)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "no facing normals", hook.LastEntry().Message)
}

func TestAnalyze_Invalid(t *testing.T) {
	s := &Scene{Shapes: []Shape{{Name: "dot", Segment: geom.Seg(1, 1, 1, 1)}}}
	_, err := NewAnalyzer(nullLogger()).Analyze(s)
	assert.ErrorIs(t, err, geom.ErrDegenerateSegment)
}
