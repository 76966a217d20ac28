package brep

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/citysolid/geom"
)

// Kind identifies the topological type of a Shape.
type Kind int

const (
	KindFace Kind = iota
	KindShell
	KindCompound
	KindSolid
)

func (k Kind) String() string {
	switch k {
	case KindFace:
		return "face"
	case KindShell:
		return "shell"
	case KindCompound:
		return "compound"
	case KindSolid:
		return "solid"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Shape is any face-bearing topological entity.
type Shape interface {
	Kind() Kind
	// Faces returns every face of the shape in a stable order.
	Faces() []*Face
}

// Wire is a closed polygon. The closing edge from the last point back to the
// first is implicit.
type Wire struct {
	points []geom.Point
}

// Points returns a copy of the wire's vertices.
func (w *Wire) Points() []geom.Point {
	return clonePoints(w.points)
}

// Len returns the number of vertices.
func (w *Wire) Len() int { return len(w.points) }

// Face is a planar region bounded by an outer loop and zero or more holes.
type Face struct {
	outer  []geom.Point
	holes  [][]geom.Point
	normal r3.Vec
	tol    float64
}

// Kind implements Shape.
func (f *Face) Kind() Kind { return KindFace }

// Faces implements Shape.
func (f *Face) Faces() []*Face { return []*Face{f} }

// Outer returns a copy of the outer loop.
func (f *Face) Outer() []geom.Point { return clonePoints(f.outer) }

// Holes returns copies of the hole loops.
func (f *Face) Holes() [][]geom.Point {
	out := make([][]geom.Point, len(f.holes))
	for i, h := range f.holes {
		out[i] = clonePoints(h)
	}
	return out
}

// HoleCount returns the number of hole loops.
func (f *Face) HoleCount() int { return len(f.holes) }

// Normal returns the unit normal of the outer loop.
func (f *Face) Normal() r3.Vec { return f.normal }

// Tolerance returns the face's geometric tolerance: the largest vertex
// deviation from the face plane the face accepts as valid.
func (f *Face) Tolerance() float64 { return f.tol }

// Plane returns the face plane through the centroid of the outer loop.
func (f *Face) Plane() (geom.Plane, error) {
	return geom.NewPlane(geom.Centroid(f.outer), f.normal)
}

// Reversed returns the face with every loop reversed.
func (f *Face) Reversed() *Face {
	holes := make([][]geom.Point, len(f.holes))
	for i, h := range f.holes {
		holes[i] = reversePoints(h)
	}
	return &Face{
		outer:  reversePoints(f.outer),
		holes:  holes,
		normal: r3.Scale(-1, f.normal),
		tol:    f.tol,
	}
}

// loops returns the outer loop followed by the holes, without copying.
func (f *Face) loops() [][]geom.Point {
	out := make([][]geom.Point, 0, 1+len(f.holes))
	out = append(out, f.outer)
	return append(out, f.holes...)
}

// Shell is a set of faces sewn along shared edges. It may be open or closed.
type Shell struct {
	faces []*Face
}

// NewShell wraps faces into a shell without sewing them.
func NewShell(faces ...*Face) *Shell {
	return &Shell{faces: append([]*Face(nil), faces...)}
}

// Kind implements Shape.
func (s *Shell) Kind() Kind { return KindShell }

// Faces implements Shape.
func (s *Shell) Faces() []*Face { return append([]*Face(nil), s.faces...) }

// Compound groups disconnected shells and loose faces.
type Compound struct {
	shells []*Shell
	loose  []*Face
}

// NewCompound builds a compound from shells and loose faces.
func NewCompound(shells []*Shell, loose []*Face) *Compound {
	return &Compound{
		shells: append([]*Shell(nil), shells...),
		loose:  append([]*Face(nil), loose...),
	}
}

// Kind implements Shape.
func (c *Compound) Kind() Kind { return KindCompound }

// Faces implements Shape: shell faces first, then loose faces.
func (c *Compound) Faces() []*Face {
	var out []*Face
	for _, s := range c.shells {
		out = append(out, s.faces...)
	}
	return append(out, c.loose...)
}

// Shells returns the compound's shells.
func (c *Compound) Shells() []*Shell { return append([]*Shell(nil), c.shells...) }

// Loose returns the faces that did not join any shell.
func (c *Compound) Loose() []*Face { return append([]*Face(nil), c.loose...) }

// Solid is a closed outer shell with optional cavity shells.
type Solid struct {
	outer    *Shell
	cavities []*Shell
}

// Kind implements Shape.
func (s *Solid) Kind() Kind { return KindSolid }

// Faces implements Shape: outer faces first, then each cavity's faces.
func (s *Solid) Faces() []*Face {
	out := s.outer.Faces()
	for _, c := range s.cavities {
		out = append(out, c.faces...)
	}
	return out
}

// Outer returns the outer shell.
func (s *Solid) Outer() *Shell { return s.outer }

// Cavities returns the interior shells.
func (s *Solid) Cavities() []*Shell { return append([]*Shell(nil), s.cavities...) }

// Shells returns the shells that make up shape: the shell itself, a
// compound's shells, or a solid's outer shell followed by its cavities.
// Faces and nil yield nil.
func Shells(shape Shape) []*Shell {
	switch s := shape.(type) {
	case *Shell:
		if s == nil {
			return nil
		}
		return []*Shell{s}
	case *Compound:
		if s == nil {
			return nil
		}
		return s.Shells()
	case *Solid:
		if s == nil {
			return nil
		}
		return append([]*Shell{s.outer}, s.cavities...)
	default:
		return nil
	}
}

// FaceCount returns the number of faces in shape (0 for nil).
func FaceCount(shape Shape) int {
	if isNil(shape) {
		return 0
	}
	return len(shape.Faces())
}

// isNil reports whether shape is nil or a typed nil pointer.
func isNil(shape Shape) bool {
	switch s := shape.(type) {
	case nil:
		return true
	case *Face:
		return s == nil
	case *Shell:
		return s == nil
	case *Compound:
		return s == nil
	case *Solid:
		return s == nil
	default:
		return false
	}
}

// IsNil reports whether shape is nil, including typed nil pointers.
func IsNil(shape Shape) bool { return isNil(shape) }

func clonePoints(pts []geom.Point) []geom.Point {
	return append([]geom.Point(nil), pts...)
}

func reversePoints(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
