package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// degenerateRatio bounds the middle/largest covariance eigenvalue ratio below
// which a point set is treated as collinear.
const degenerateRatio = 1e-18

// Plane is an oriented plane with an orthonormal in-plane basis (U, V) such
// that U × V = Normal.
type Plane struct {
	Origin Point
	Normal r3.Vec
	U, V   r3.Vec
}

// NewPlane builds a plane through origin with the given (not necessarily unit)
// normal. It returns ErrDegenerate for a zero or non-finite normal.
func NewPlane(origin Point, normal r3.Vec) (Plane, error) {
	l := r3.Norm(normal)
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Plane{}, fmt.Errorf("NewPlane: zero normal: %w", ErrDegenerate)
	}
	n := r3.Scale(1/l, normal)
	// pick the world axis least aligned with n to seed the basis
	axis := r3.Vec{X: 1}
	if math.Abs(n.Y) < math.Abs(n.X) && math.Abs(n.Y) <= math.Abs(n.Z) {
		axis = r3.Vec{Y: 1}
	} else if math.Abs(n.Z) < math.Abs(n.X) {
		axis = r3.Vec{Z: 1}
	}
	u := r3.Unit(r3.Cross(axis, n))
	v := r3.Cross(n, u)
	return Plane{Origin: origin, Normal: n, U: u, V: v}, nil
}

// Distance returns the signed distance from p to the plane.
func (pl Plane) Distance(p Point) float64 {
	return r3.Dot(r3.Sub(p, pl.Origin), pl.Normal)
}

// Project returns the orthogonal projection of p onto the plane. ok is false
// when the result is not finite; callers keep the original point then.
func (pl Plane) Project(p Point) (Point, bool) {
	q := r3.Sub(p, r3.Scale(pl.Distance(p), pl.Normal))
	if !finite(q) {
		return p, false
	}
	return q, true
}

// MaxDeviation returns the largest absolute distance of pts from the plane.
func (pl Plane) MaxDeviation(pts []Point) float64 {
	var d float64
	for _, p := range pts {
		d = math.Max(d, math.Abs(pl.Distance(p)))
	}
	return d
}

// To2D maps p into the plane's (U, V) coordinates.
func (pl Plane) To2D(p Point) orb.Point {
	d := r3.Sub(p, pl.Origin)
	return orb.Point{r3.Dot(d, pl.U), r3.Dot(d, pl.V)}
}

// Loop2D maps a loop into plane coordinates as a closed orb.Ring.
func (pl Plane) Loop2D(loop []Point) orb.Ring {
	r := make(orb.Ring, 0, len(loop)+1)
	for _, p := range loop {
		r = append(r, pl.To2D(p))
	}
	if len(r) > 0 && !r.Closed() {
		r = append(r, r[0])
	}
	return r
}

// BestFitPlane computes the least-squares plane through pts: the centroid and
// the eigenvector of the smallest eigenvalue of the covariance matrix. The
// normal is oriented to agree with the Newell normal of pts taken as a loop.
//
// Returns ErrDegenerate for fewer than 3 points or a collinear/coincident set,
// ErrEigenFailed if the symmetric eigen solver does not converge.
func BestFitPlane(pts []Point) (Plane, error) {
	if len(pts) < MinRingPoints {
		return Plane{}, fmt.Errorf("BestFitPlane: %d points: %w", len(pts), ErrDegenerate)
	}
	c := Centroid(pts)
	var xx, xy, xz, yy, yz, zz float64
	for _, p := range pts {
		d := r3.Sub(p, c)
		xx += d.X * d.X
		xy += d.X * d.Y
		xz += d.X * d.Z
		yy += d.Y * d.Y
		yz += d.Y * d.Z
		zz += d.Z * d.Z
	}
	cov := mat.NewSymDense(3, []float64{
		xx, xy, xz,
		xy, yy, yz,
		xz, yz, zz,
	})

	var es mat.EigenSym
	if ok := es.Factorize(cov, true); !ok {
		return Plane{}, ErrEigenFailed
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	lo, mid, hi := order3(vals)
	if vals[hi] <= 0 || vals[mid] <= vals[hi]*degenerateRatio {
		return Plane{}, fmt.Errorf("BestFitPlane: rank-deficient covariance: %w", ErrDegenerate)
	}
	normal := r3.Vec{X: vecs.At(0, lo), Y: vecs.At(1, lo), Z: vecs.At(2, lo)}
	if r3.Dot(normal, NewellNormal(pts)) < 0 {
		normal = r3.Scale(-1, normal)
	}
	return NewPlane(c, normal)
}

// ProjectOntoBestFitPlane projects every point onto the best-fit plane of pts.
// A point whose projection is not finite is kept unchanged. The plane normal
// is returned for logging.
func ProjectOntoBestFitPlane(pts []Point) ([]Point, r3.Vec, error) {
	pl, err := BestFitPlane(pts)
	if err != nil {
		return nil, r3.Vec{}, err
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i], _ = pl.Project(p)
	}
	return out, pl.Normal, nil
}

// order3 returns the indices of the smallest, middle and largest of three values.
func order3(v []float64) (lo, mid, hi int) {
	idx := [3]int{0, 1, 2}
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && v[idx[j]] < v[idx[j-1]]; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return idx[0], idx[1], idx[2]
}

func finite(p Point) bool {
	for _, c := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
