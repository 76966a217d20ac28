package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MinRingPoints is the minimum number of distinct points a usable ring must have.
const MinRingPoints = 3

// Point is a 3D coordinate in the input's length units.
type Point = r3.Vec

// Ring is an ordered closed polygon boundary. The first point may be repeated
// at the end; Normalize removes that duplicate.
type Ring []Point

// Normalize returns the ring without a duplicated closing point.
// The receiver is not modified.
func (r Ring) Normalize() Ring {
	if len(r) >= 2 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

// DistinctCount returns the number of distinct points after closure normalization.
func (r Ring) DistinctCount() int {
	seen := make(map[Point]struct{}, len(r))
	for _, p := range r.Normalize() {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// Usable reports whether the ring has at least MinRingPoints distinct points.
func (r Ring) Usable() bool {
	return r.DistinctCount() >= MinRingPoints
}

// Clone returns a deep copy of the ring.
func (r Ring) Clone() Ring {
	if r == nil {
		return nil
	}
	out := make(Ring, len(r))
	copy(out, r)
	return out
}

// Flatten returns a copy of the ring with every Z set to 0, the shape used for
// 2D footprint wires.
func (r Ring) Flatten() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}

// Reverse returns the ring with its vertex order reversed.
func (r Ring) Reverse() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Extent returns the largest axis-aligned bounding-box dimension of pts,
// or 0 when fewer than 2 points are given.
func Extent(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	lo, hi := Bounds(pts)
	return math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z))
}

// Bounds returns the minimum and maximum corners of pts.
// For an empty slice both corners are the zero vector.
func Bounds(pts []Point) (lo, hi Point) {
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X, hi.X = math.Min(lo.X, p.X), math.Max(hi.X, p.X)
		lo.Y, hi.Y = math.Min(lo.Y, p.Y), math.Max(hi.Y, p.Y)
		lo.Z, hi.Z = math.Min(lo.Z, p.Z), math.Max(hi.Z, p.Z)
	}
	return lo, hi
}

// Centroid returns the arithmetic mean of pts (zero vector for an empty slice).
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range pts {
		c = r3.Add(c, p)
	}
	return r3.Scale(1/float64(len(pts)), c)
}

// NewellNormal returns the Newell normal of a closed loop. Its length equals
// twice the loop's vector area; it is the zero vector for degenerate loops.
func NewellNormal(loop []Point) r3.Vec {
	var n r3.Vec
	for i, cur := range loop {
		nxt := loop[(i+1)%len(loop)]
		n.X += (cur.Y - nxt.Y) * (cur.Z + nxt.Z)
		n.Y += (cur.Z - nxt.Z) * (cur.X + nxt.X)
		n.Z += (cur.X - nxt.X) * (cur.Y + nxt.Y)
	}
	return n
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// SegmentDistance returns the distance from p to segment ab and the segment
// parameter t ∈ [0,1] of the closest point.
func SegmentDistance(p, a, b Point) (float64, float64) {
	ab := r3.Sub(b, a)
	l2 := r3.Norm2(ab)
	if l2 == 0 {
		return Dist(p, a), 0
	}
	t := r3.Dot(r3.Sub(p, a), ab) / l2
	t = math.Max(0, math.Min(1, t))
	return Dist(p, r3.Add(a, r3.Scale(t, ab))), t
}
