package brep

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/citysolid/geom"
)

// IsValid reports whether shape passes the kernel's topology and geometry
// checks:
//
//   - face: every loop has at least 3 distinct consecutive vertices, the outer
//     loop has non-zero area, every vertex lies within the face tolerance of
//     the face plane, loops are simple, holes wind against the outer loop and
//     lie inside it;
//   - shell: every face is valid, no edge is used more than twice, faces
//     sharing an edge traverse it in opposite directions;
//   - compound: every shell and loose face is valid;
//   - solid: every shell is valid, the outer shell is closed with positive
//     volume, each cavity is closed with negative volume inside the outer
//     bounding box.
func (k *Polygonal) IsValid(shape Shape) bool {
	if isNil(shape) {
		return false
	}
	switch s := shape.(type) {
	case *Face:
		return k.faceValid(s)
	case *Shell:
		return k.shellValid(s)
	case *Compound:
		if len(s.shells) == 0 && len(s.loose) == 0 {
			return false
		}
		for _, sh := range s.shells {
			if !k.shellValid(sh) {
				return false
			}
		}
		for _, f := range s.loose {
			if !k.faceValid(f) {
				return false
			}
		}
		return true
	case *Solid:
		return k.solidValid(s)
	default:
		return false
	}
}

// InvalidFaces returns the indices (into shape.Faces()) of faces failing the
// face checks of IsValid.
func (k *Polygonal) InvalidFaces(shape Shape) []int {
	if isNil(shape) {
		return nil
	}
	var out []int
	for i, f := range shape.Faces() {
		if !k.faceValid(f) {
			out = append(out, i)
		}
	}
	return out
}

func (k *Polygonal) faceValid(f *Face) bool {
	if f == nil || len(f.outer) < geom.MinRingPoints {
		return false
	}
	for _, loop := range f.loops() {
		if len(loop) < geom.MinRingPoints {
			return false
		}
		for i, p := range loop {
			if geom.Dist(p, loop[(i+1)%len(loop)]) <= k.opts.Confusion {
				return false
			}
		}
	}
	if r3.Norm(geom.NewellNormal(f.outer)) <= k.areaEps() {
		return false
	}
	slack := f.tol*1e-9 + 1e-12
	if deviation(f) > f.tol+slack {
		return false
	}

	pl, err := f.Plane()
	if err != nil {
		return false
	}
	outer := pl.Loop2D(f.outer)
	if !geom.LoopIsSimple(outer) {
		return false
	}
	for _, h := range f.holes {
		if r3.Dot(geom.NewellNormal(h), f.normal) >= 0 {
			return false
		}
		hole := pl.Loop2D(h)
		if !geom.LoopIsSimple(hole) || !ringInside(hole, outer) {
			return false
		}
	}
	return true
}

// ringInside reports whether every vertex of inner lies in outer (boundary
// included).
func ringInside(inner, outer orb.Ring) bool {
	for _, p := range inner {
		if !planar.RingContains(outer, p) {
			return false
		}
	}
	return true
}

func (k *Polygonal) shellValid(s *Shell) bool {
	if s == nil || len(s.faces) == 0 {
		return false
	}
	for _, f := range s.faces {
		if !k.faceValid(f) {
			return false
		}
	}
	return manifold(s.faces) && consistentlyOriented(s.faces)
}

func (k *Polygonal) solidValid(s *Solid) bool {
	if s.outer == nil || !k.shellValid(s.outer) || !shellClosed(s.outer) {
		return false
	}
	if signedVolume(s.outer.faces) <= 0 {
		return false
	}
	lo, hi := shellBounds(s.outer)
	for _, c := range s.cavities {
		if !k.shellValid(c) || !shellClosed(c) || signedVolume(c.faces) >= 0 {
			return false
		}
		clo, chi := shellBounds(c)
		if !boxInside(clo, chi, lo, hi) {
			return false
		}
	}
	return true
}

func shellBounds(s *Shell) (geom.Point, geom.Point) {
	var pts []geom.Point
	for _, f := range s.faces {
		pts = append(pts, f.outer...)
	}
	return geom.Bounds(pts)
}

func boxInside(lo, hi, outerLo, outerHi geom.Point) bool {
	return lo.X >= outerLo.X && lo.Y >= outerLo.Y && lo.Z >= outerLo.Z &&
		hi.X <= outerHi.X && hi.Y <= outerHi.Y && hi.Z <= outerHi.Z
}

// Volume returns the absolute volume enclosed by a solid's outer shell minus
// its cavities, or by a closed shell. Other shapes yield 0.
func Volume(shape Shape) float64 {
	switch s := shape.(type) {
	case *Solid:
		if s == nil {
			return 0
		}
		v := signedVolume(s.outer.faces)
		for _, c := range s.cavities {
			v += signedVolume(c.faces)
		}
		return math.Abs(v)
	case *Shell:
		if s == nil {
			return 0
		}
		return math.Abs(signedVolume(s.faces))
	default:
		return 0
	}
}
