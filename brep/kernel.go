package brep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/citysolid/geom"
	"github.com/katalvlaran/citysolid/repair"
)

// Kernel is the geometry-kernel surface the repair pipeline relies on.
// Implementations may panic on malformed input; callers wrap calls with Guard.
type Kernel interface {
	MakeWire(pts []geom.Point) (*Wire, error)
	MakeFace(w *Wire, onlyPlane bool) (*Face, error)
	AddHole(f *Face, w *Wire) (*Face, error)
	Sew(faces []*Face, tol float64) (*Compound, error)
	IsValid(shape Shape) bool
	IsClosed(shape Shape) bool
	FixFace(f *Face, p repair.Params) (*Face, error)
	FixShell(s *Shell, p repair.Params) (*Shell, error)
	FixSolid(s *Solid, p repair.Params) (*Solid, error)
	FixShape(shape Shape, p repair.Params) (Shape, error)
	Unify(shape Shape) (Shape, error)
	MakeSolid(outer *Shell, cavities []*Shell) (*Solid, error)
	Edges(shape Shape) int
	FreeEdges(shape Shape) int
}

const (
	// DefaultConfusion is the distance below which two points are the same.
	DefaultConfusion = 1e-7
	// DefaultSurfaceTolerance is the largest deviation MakeFace accepts when
	// not restricted to exact planes.
	DefaultSurfaceTolerance = 1e-4
	// DefaultFixMaxTolerance is the tolerance ceiling used by Fix* calls
	// given zero repair.Params.
	DefaultFixMaxTolerance = 1.0
)

// Options configures a Polygonal kernel.
type Options struct {
	Confusion        float64
	SurfaceTolerance float64
	FixMaxTolerance  float64
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the kernel defaults.
func DefaultOptions() Options {
	return Options{
		Confusion:        DefaultConfusion,
		SurfaceTolerance: DefaultSurfaceTolerance,
		FixMaxTolerance:  DefaultFixMaxTolerance,
	}
}

// WithConfusion sets the point-coincidence distance. Panics on c <= 0.
func WithConfusion(c float64) Option {
	if !(c > 0) {
		panic(fmt.Sprintf("brep: WithConfusion(%v): must be > 0", c))
	}
	return func(o *Options) { o.Confusion = c }
}

// WithSurfaceTolerance sets the non-strict planarity limit of MakeFace.
// Panics on t <= 0.
func WithSurfaceTolerance(t float64) Option {
	if !(t > 0) {
		panic(fmt.Sprintf("brep: WithSurfaceTolerance(%v): must be > 0", t))
	}
	return func(o *Options) { o.SurfaceTolerance = t }
}

// WithFixMaxTolerance sets the default tolerance ceiling of Fix* calls.
// Panics on t <= 0.
func WithFixMaxTolerance(t float64) Option {
	if !(t > 0) {
		panic(fmt.Sprintf("brep: WithFixMaxTolerance(%v): must be > 0", t))
	}
	return func(o *Options) { o.FixMaxTolerance = t }
}

// Polygonal is a Kernel for planar polygonal faces.
type Polygonal struct {
	opts Options
}

var _ Kernel = (*Polygonal)(nil)

// NewPolygonal returns a kernel configured by opts.
func NewPolygonal(opts ...Option) *Polygonal {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Polygonal{opts: o}
}

// Options returns the kernel configuration.
func (k *Polygonal) Options() Options { return k.opts }

// MakeWire builds a closed wire. A repeated closing point is dropped.
func (k *Polygonal) MakeWire(pts []geom.Point) (*Wire, error) {
	loop := dedupeLoop(geom.Ring(pts).Normalize(), 0)
	if len(loop) < 2 {
		return nil, fmt.Errorf("MakeWire: %d distinct points: %w", len(loop), ErrWireTooShort)
	}
	return &Wire{points: loop}, nil
}

// MakeFace builds a planar face bounded by w. With onlyPlane the vertices must
// lie on a plane within the confusion distance, otherwise within the surface
// tolerance. The face tolerance is the measured deviation (at least confusion).
func (k *Polygonal) MakeFace(w *Wire, onlyPlane bool) (*Face, error) {
	if w == nil {
		return nil, fmt.Errorf("MakeFace: %w", ErrNilShape)
	}
	if len(w.points) < geom.MinRingPoints {
		return nil, fmt.Errorf("MakeFace: %d points: %w", len(w.points), ErrDegenerateFace)
	}
	f, dev, err := k.newFace(w.points, nil, k.opts.Confusion)
	if err != nil {
		return nil, fmt.Errorf("MakeFace: %w", err)
	}
	limit := k.opts.SurfaceTolerance
	if onlyPlane {
		limit = k.opts.Confusion
	}
	if dev > limit {
		return nil, fmt.Errorf("MakeFace: deviation %g > %g: %w", dev, limit, ErrNotPlanar)
	}
	return f, nil
}

// AddHole returns f with w added as a hole loop, wound opposite to the outer loop.
func (k *Polygonal) AddHole(f *Face, w *Wire) (*Face, error) {
	if f == nil || w == nil {
		return nil, fmt.Errorf("AddHole: %w", ErrNilShape)
	}
	if len(w.points) < geom.MinRingPoints {
		return nil, fmt.Errorf("AddHole: %d points: %w", len(w.points), ErrWireTooShort)
	}
	hole := clonePoints(w.points)
	n := geom.NewellNormal(hole)
	if r3.Norm(n) <= k.areaEps() {
		return nil, fmt.Errorf("AddHole: %w", ErrDegenerateFace)
	}
	if r3.Dot(n, f.normal) > 0 {
		hole = reversePoints(hole)
	}
	holes := append(f.Holes(), hole)
	out, _, err := k.newFace(f.outer, holes, f.tol)
	if err != nil {
		return nil, fmt.Errorf("AddHole: %w", err)
	}
	return out, nil
}

// MakeSolid wraps an outer shell and cavities into a solid. Validity is not
// checked here; use IsValid.
func (k *Polygonal) MakeSolid(outer *Shell, cavities []*Shell) (*Solid, error) {
	if outer == nil {
		return nil, fmt.Errorf("MakeSolid: %w", ErrNilShape)
	}
	for i, c := range cavities {
		if c == nil {
			return nil, fmt.Errorf("MakeSolid: cavity %d: %w", i, ErrNilShape)
		}
	}
	return &Solid{outer: outer, cavities: append([]*Shell(nil), cavities...)}, nil
}

// newFace computes the normal of outer and returns a face whose tolerance is
// max(minTol, deviation) together with that deviation.
func (k *Polygonal) newFace(outer []geom.Point, holes [][]geom.Point, minTol float64) (*Face, float64, error) {
	n := geom.NewellNormal(outer)
	l := r3.Norm(n)
	if l <= k.areaEps() || math.IsNaN(l) || math.IsInf(l, 0) {
		return nil, 0, ErrDegenerateFace
	}
	f := &Face{
		outer:  clonePoints(outer),
		holes:  holes,
		normal: r3.Scale(1/l, n),
	}
	dev := deviation(f)
	f.tol = math.Max(math.Max(minTol, k.opts.Confusion), dev)
	return f, dev, nil
}

// areaEps is the smallest Newell-normal length accepted as a real area.
func (k *Polygonal) areaEps() float64 { return k.opts.Confusion * k.opts.Confusion }

// deviation returns the largest distance of any loop vertex from the face plane.
func deviation(f *Face) float64 {
	pl, err := f.Plane()
	if err != nil {
		return math.Inf(1)
	}
	var d float64
	for _, loop := range f.loops() {
		d = math.Max(d, pl.MaxDeviation(loop))
	}
	return d
}

// dedupeLoop removes consecutive points closer than eps (exact duplicates
// for eps == 0), including across the closing edge.
func dedupeLoop(loop []geom.Point, eps float64) []geom.Point {
	out := make([]geom.Point, 0, len(loop))
	for _, p := range loop {
		if len(out) > 0 && same(out[len(out)-1], p, eps) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && same(out[0], out[len(out)-1], eps) {
		out = out[:len(out)-1]
	}
	return out
}

func same(a, b geom.Point, eps float64) bool {
	if eps == 0 {
		return a == b
	}
	return geom.Dist(a, b) <= eps
}
