package geom

import (
	"math"
)

const mergeTolerance = 0.001

// MergeColinear combines segments that are collinear and touch end to end
// into longer segments. Segments that cannot be merged are returned as-is,
// in their original order.
func MergeColinear(segments []Segment) []Segment {
	merged, _ := MergeColinearGroups(segments)
	return merged
}

// MergeColinearGroups is MergeColinear that also reports, for each result,
// the indices of the input segments folded into it. The first index of each
// group is the earliest member.
func MergeColinearGroups(segments []Segment) ([]Segment, [][]int) {
	if len(segments) == 0 {
		return segments, nil
	}

	merged := make([]bool, len(segments))
	var result []Segment
	var groups [][]int

	for i := 0; i < len(segments); i++ {
		if merged[i] {
			continue
		}

		current := segments[i]
		merged[i] = true
		group := []int{i}

		// Keep extending until nothing else attaches
		extended := true
		for extended {
			extended = false

			for j := 0; j < len(segments); j++ {
				if merged[j] || i == j {
					continue
				}

				other := segments[j]
				if canMergeSegments(current, other) {
					current = mergeSegments(current, other)
					merged[j] = true
					group = append(group, j)
					extended = true
					break
				}
			}
		}

		result = append(result, current)
		groups = append(groups, group)
	}

	return result, groups
}

// canMergeSegments checks if two segments are collinear and share an endpoint
func canMergeSegments(seg1, seg2 Segment) bool {
	if seg1.IsDegenerate() || seg2.IsDegenerate() {
		return false
	}

	d1, d2 := seg1.Direction(), seg2.Direction()
	if math.Abs(d1.Cross(d2))/(d1.Mag()*d2.Mag()) > mergeTolerance {
		return false
	}

	// seg2 must sit on seg1's line, not just run parallel to it
	if math.Abs(d1.Cross(seg2.A.Sub(seg1.A)))/d1.Mag() > mergeTolerance {
		return false
	}

	for _, p := range []Point{seg1.A, seg1.B} {
		for _, q := range []Point{seg2.A, seg2.B} {
			if Distance(p, q) < mergeTolerance {
				return true
			}
		}
	}
	return false
}

// mergeSegments spans the extreme endpoints of two collinear segments,
// keeping the orientation of seg1
func mergeSegments(seg1, seg2 Segment) Segment {
	d := seg1.Direction()
	points := []Point{seg1.A, seg1.B, seg2.A, seg2.B}

	lo, hi := points[0], points[0]
	loT, hiT := 0.0, 0.0
	for _, p := range points[1:] {
		t := d.Dot(p.Sub(seg1.A))
		if t < loT {
			lo, loT = p, t
		}
		if t > hiT {
			hi, hiT = p, t
		}
	}

	return Segment{A: lo, B: hi}
}
