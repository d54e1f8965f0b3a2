package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidates(t *testing.T) {
	n, err := Candidates(Vector{X: 2, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, Vector{X: 0, Y: 2}, n[0])
	assert.Equal(t, Vector{X: 0, Y: -2}, n[1])

	_, err = Candidates(Vector{})
	assert.ErrorIs(t, err, ErrUndefinedSelection)

	_, err = Candidates(Vector{X: math.NaN(), Y: 1})
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestNormals_AreNegations(t *testing.T) {
	for _, s := range []Segment{
		Seg(0, 0, 2, 0),
		Seg(1, 2, 3, 4),
		Seg(-2, 7, -2, 4),
		Seg(0.1, -0.3, 17.25, 3.5),
		Seg(5, 5, -1e6, 3e-7),
	} {
		n, err := Normals(s)
		require.NoError(t, err)
		assert.Equal(t, n[0], n[1].Neg(), "segment %v", s)
		assert.Zero(t, n[0].Dot(s.Direction()), "segment %v", s)
	}
}

func TestUnitNormals(t *testing.T) {
	n, err := UnitNormals(Seg(1, 1, 4, 5))
	require.NoError(t, err)
	assert.InDelta(t, 1, n[0].Mag(), 1e-12)
	assert.InDelta(t, -0.8, n[0].X, 1e-12)
	assert.InDelta(t, 0.6, n[0].Y, 1e-12)
}

func TestSelectNormal(t *testing.T) {
	s := Seg(0, 0, 2, 0)
	testCases := []struct {
		name     string
		strategy Strategy
		ref      Reference
		want     Vector
		index    int
	}{
		{"DotProductAbove", ByDotProduct{}, PointRef(Pt(0, 5)), Vector{X: 0, Y: 2}, 0},
		{"DotProductBelow", ByDotProduct{}, PointRef(Pt(1, -3)), Vector{X: 0, Y: -2}, 1},
		{"DistanceAbove", ByDistance{}, PointRef(Pt(0, 5)), Vector{X: 0, Y: 2}, 0},
		{"DistanceBelow", ByDistance{}, PointRef(Pt(7, -0.5)), Vector{X: 0, Y: -2}, 1},
		{"DotProductSegment", ByDotProduct{}, SegmentRef(Seg(0, 3, 2, 3)), Vector{X: 0, Y: 2}, 0},
		{"DistanceSegment", ByDistance{}, SegmentRef(Seg(-4, -1, 9, -6)), Vector{X: 0, Y: -2}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, i, err := SelectNormal(s, tc.ref, tc.strategy)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.index, i)
		})
	}
}

func TestSelectNormal_Undefined(t *testing.T) {
	for _, strategy := range []Strategy{ByDotProduct{}, ByDistance{}} {
		_, _, err := SelectNormal(Seg(1, 1, 1, 1), PointRef(Pt(0, 5)), strategy)
		assert.ErrorIs(t, err, ErrUndefinedSelection)

		// level with the segment: neither side is preferred
		_, _, err = SelectNormal(Seg(0, 0, 2, 0), PointRef(Pt(5, 0)), strategy)
		assert.ErrorIs(t, err, ErrUndefinedSelection)

		_, _, err = SelectNormal(Seg(0, 0, 2, 0), Reference{}, strategy)
		assert.ErrorIs(t, err, ErrUndefinedSelection)

		_, _, err = SelectNormal(Seg(0, 0, 2, 0), PointRef(Pt(math.Inf(-1), 0)), strategy)
		assert.ErrorIs(t, err, ErrNonFinite)
	}
}

func TestFacing(t *testing.T) {
	testCases := []struct {
		name           string
		a, b           Segment
		wantA, wantB   Vector
		indexA, indexB int
	}{
		{
			// red/blue in the sample plot
			name: "Sample",
			a:    Seg(1, 2, 3, 4), b: Seg(-2, 7, -2, 4),
			wantA: Vector{X: -2, Y: 2}, wantB: Vector{X: 3, Y: 0},
			indexA: 0, indexB: 0,
		},
		{
			name: "ParallelStrips",
			a:    Seg(0, -5, 0, 5), b: Seg(2, -5, 2, 5),
			wantA: Vector{X: 10, Y: 0}, wantB: Vector{X: -10, Y: 0},
			indexA: 1, indexB: 0,
		},
		{
			name: "AdjacentStrips",
			a:    Seg(0, 0, 5, 0), b: Seg(0, 0, 0, 5),
			wantA: Vector{X: 0, Y: 5}, wantB: Vector{X: 5, Y: 0},
			indexA: 0, indexB: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pair, err := Facing(tc.a, tc.b)
			require.NoError(t, err)
			assert.Equal(t, tc.wantA, pair.A)
			assert.Equal(t, tc.wantB, pair.B)
			assert.Equal(t, tc.indexA, pair.IndexA)
			assert.Equal(t, tc.indexB, pair.IndexB)
			assert.LessOrEqual(t, pair.Dot, 0.0)
		})
	}
}

func TestFacing_Collinear(t *testing.T) {
	_, err := Facing(Seg(0, 0, 1, 0), Seg(2, 0, 3, 0))
	assert.ErrorIs(t, err, ErrUndefinedSelection)
}

func TestFacing_Degenerate(t *testing.T) {
	_, err := Facing(Seg(0, 0, 1, 0), Seg(2, 2, 2, 2))
	assert.ErrorIs(t, err, ErrDegenerateSegment)
	assert.ErrorContains(t, err, "second segment")

	_, err = Facing(Seg(0, math.NaN(), 1, 0), Seg(0, 1, 1, 1))
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.ErrorContains(t, err, "first segment")
}
