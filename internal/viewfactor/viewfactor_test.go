package viewfactor

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"chosenoffset.com/facing/internal/core/geom"
	"chosenoffset.com/facing/internal/core/scene"
)

func TestAnalytic(t *testing.T) {
	f, err := AdjacentStrips(1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.29289321881345243, f, 1e-12)

	f, err = ParallelStrips(1, 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.41421356237309515, f, 1e-12)

	_, err = AdjacentStrips(0, 1)
	assert.Error(t, err)
	_, err = ParallelStrips(1, -1, 1)
	assert.Error(t, err)
}

func TestCrossedStrings(t *testing.T) {
	parallel, err := ParallelStrips(2, 10, 10)
	require.NoError(t, err)
	f, err := CrossedStrings(geom.Seg(0, -5, 0, 5), geom.Seg(2, -5, 2, 5))
	require.NoError(t, err)
	assert.InDelta(t, parallel, f, 1e-12)

	adjacent, err := AdjacentStrips(5, 5)
	require.NoError(t, err)
	f, err = CrossedStrings(geom.Seg(0, 0, 5, 0), geom.Seg(0, 0, 0, 5))
	require.NoError(t, err)
	assert.InDelta(t, adjacent, f, 1e-12)

	_, err = CrossedStrings(geom.Seg(1, 1, 1, 1), geom.Seg(0, 0, 0, 5))
	assert.ErrorIs(t, err, geom.ErrDegenerateSegment)
}

func TestEmitRay(t *testing.T) {
	s := geom.Seg(0, 0, 5, 0)
	em, err := NewEmitter("floor", s, geom.Pt(2, 3))
	require.NoError(t, err)
	assert.Equal(t, geom.Vector{X: 0, Y: 1}, em.Normal)

	u := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewSource(7)}
	for i := 0; i < 1000; i++ {
		ray, err := em.EmitRay(u)
		require.NoError(t, err)
		assert.True(t, geom.PointOnSegment(ray.Origin, s, geom.PointTolerance))
		assert.GreaterOrEqual(t, ray.Dir.Dot(em.Normal), -1e-12)
		assert.InDelta(t, 1, ray.Dir.Mag(), 1e-12)
	}

	_, err = NewEmitter("floor", s, geom.Pt(9, 0))
	assert.ErrorIs(t, err, geom.ErrUndefinedSelection)
}

func TestSimulation(t *testing.T) {
	parallel, err := ParallelStrips(2, 10, 10)
	require.NoError(t, err)
	adjacent, err := AdjacentStrips(5, 5)
	require.NoError(t, err)

	tests := []struct {
		name     string
		a, b     geom.Segment
		expected float64
	}{
		{"ParallelStrips", geom.Seg(0, -5, 0, 5), geom.Seg(2, -5, 2, 5), parallel},
		{"AdjacentStrips", geom.Seg(0, 0, 5, 0), geom.Seg(0, 0, 0, 5), adjacent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			s := &scene.Scene{Name: tt.name, Shapes: []scene.Shape{
				{Name: "a", Segment: tt.a},
				{Name: "b", Segment: tt.b},
			}}

			res, err := NewSimulation(200000, 10, 2342, logger).Run(s)
			require.NoError(t, err)
			require.Len(t, res.Sources, 2)
			assert.Empty(t, res.Skipped)

			for _, pair := range [][2]string{{"a", "b"}, {"b", "a"}} {
				src, ok := res.Source(pair[0])
				require.True(t, ok)
				est, ok := src.Estimate(pair[1])
				require.True(t, ok)

				assert.InDelta(t, tt.expected, est.ViewFactor, 0.01)
				assert.Greater(t, est.StdErr, 0.0)
				assert.Less(t, est.StdErr, 0.01)
				assert.Equal(t, src.Emitted, est.Hits+src.Escaped)
			}
		})
	}
}

func TestSimulation_Deterministic(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := scene.Sample()

	first, err := NewSimulation(2000, 4, 99, logger).Run(s)
	require.NoError(t, err)
	second, err := NewSimulation(2000, 4, 99, logger).Run(s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulation_SkipsFlatScene(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := &scene.Scene{Shapes: []scene.Shape{
		{Name: "left", Segment: geom.Seg(0, 0, 1, 0)},
		{Name: "right", Segment: geom.Seg(2, 0, 3, 0)},
	}}

	res, err := NewSimulation(100, 1, 1, logger).Run(s)
	require.NoError(t, err)
	assert.Empty(t, res.Sources)
	assert.Equal(t, []string{"left", "right"}, res.Skipped)
	assert.Len(t, hook.Entries, 2)
}

func TestSimulation_Invalid(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := NewSimulation(0, 1, 1, logger).Run(scene.Sample())
	assert.Error(t, err)

	bad := &scene.Scene{Shapes: []scene.Shape{{Name: "dot", Segment: geom.Seg(1, 1, 1, 1)}}}
	_, err = NewSimulation(10, 1, 1, logger).Run(bad)
	assert.ErrorIs(t, err, geom.ErrDegenerateSegment)
}
