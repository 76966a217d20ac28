package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// LoopIsSimple reports whether a closed 2D ring has no intersections between
// non-adjacent edges. The ring may or may not repeat its first point.
func LoopIsSimple(r orb.Ring) bool {
	pts := r
	if len(pts) >= 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	n := len(pts)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// adjacent edges share an endpoint by construction
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			c, d := pts[j], pts[(j+1)%n]
			if SegmentsIntersect(a, b, c, d) {
				return false
			}
		}
	}
	return true
}

// SegmentsIntersect reports whether closed segments ab and cd touch or cross.
func SegmentsIntersect(a, b, c, d orb.Point) bool {
	d1 := cross2(c, d, a)
	d2 := cross2(c, d, b)
	d3 := cross2(a, b, c)
	d4 := cross2(a, b, d)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(c, d, a):
		return true
	case d2 == 0 && onSegment(c, d, b):
		return true
	case d3 == 0 && onSegment(a, b, c):
		return true
	case d4 == 0 && onSegment(a, b, d):
		return true
	}
	return false
}

// cross2 is the z component of (b-a) × (p-a).
func cross2(a, b, p orb.Point) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// onSegment assumes p is collinear with ab.
func onSegment(a, b, p orb.Point) bool {
	return p[0] >= math.Min(a[0], b[0]) && p[0] <= math.Max(a[0], b[0]) &&
		p[1] >= math.Min(a[1], b[1]) && p[1] <= math.Max(a[1], b[1])
}
