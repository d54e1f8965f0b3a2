package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRaySegment(t *testing.T) {
	hit, dist, p := RaySegment(Pt(0, 0), Vector{X: 1, Y: 0}, Seg(2, -1, 2, 1))
	assert.True(t, hit)
	assert.Equal(t, 2.0, dist)
	assert.Equal(t, Pt(2, 0), p)

	// segment behind the origin
	hit, _, _ = RaySegment(Pt(0, 0), Vector{X: -1, Y: 0}, Seg(2, -1, 2, 1))
	assert.False(t, hit)

	// passes beside the segment
	hit, _, _ = RaySegment(Pt(0, 5), Vector{X: 1, Y: 0}, Seg(2, -1, 2, 1))
	assert.False(t, hit)

	// parallel
	hit, _, _ = RaySegment(Pt(0, 0), Vector{X: 0, Y: 1}, Seg(2, -1, 2, 1))
	assert.False(t, hit)

	hit, dist, p = RaySegment(Pt(1, 1), Vector{X: -1, Y: 1}.Normalize(), Seg(0, 0, 0, 5))
	assert.True(t, hit)
	assert.InDelta(t, 1.41421356, dist, 1e-8)
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, 2, p.Y, 1e-12)
}

func TestPointOnSegment(t *testing.T) {
	s := Seg(1, 1, 2, 2)
	testCases := []struct {
		name string
		p    Point
		on   bool
	}{
		{"Start", Pt(1, 1), true},
		{"Middle", s.Lerp(0.37), true},
		{"End", Pt(2, 2), true},
		{"PastEnd", Pt(3, 3), false},
		{"OffLine", Pt(1.5, 1.6), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.on, PointOnSegment(tc.p, s, PointTolerance))
		})
	}

	assert.True(t, PointOnSegment(Pt(0, 3), Seg(0, 0, 0, 5), PointTolerance))
	assert.True(t, PointOnSegment(Pt(4, 0), Seg(0, 0, 5, 0), PointTolerance))
	assert.True(t, PointOnSegment(Pt(1, 1), Seg(1, 1, 1, 1), PointTolerance))
}

func TestMergeColinear(t *testing.T) {
	got := MergeColinear([]Segment{
		Seg(0, 0, 1, 0),
		Seg(0, 1, 1, 1),
		Seg(1, 0, 3, 0),
		Seg(3, 0, 3, 2),
		Seg(5, 0, 6, 0),
	})

	assert.Equal(t, []Segment{
		Seg(0, 0, 3, 0),
		Seg(0, 1, 1, 1),
		Seg(3, 0, 3, 2),
		Seg(5, 0, 6, 0),
	}, got)

	// reversed neighbours still merge and keep the first orientation
	got = MergeColinear([]Segment{Seg(2, 2, 1, 1), Seg(0, 0, 1, 1)})
	assert.Equal(t, []Segment{Seg(2, 2, 0, 0)}, got)

	assert.Empty(t, MergeColinear(nil))
}

func TestMergeColinearGroups(t *testing.T) {
	got, groups := MergeColinearGroups([]Segment{
		Seg(0, 0, 4, 0),
		Seg(1, 0, 2, 0),
		Seg(4, 0, 6, 0),
	})

	assert.Equal(t, []Segment{Seg(0, 0, 6, 0), Seg(1, 0, 2, 0)}, got)
	assert.Equal(t, [][]int{{0, 2}, {1}}, groups)
}
