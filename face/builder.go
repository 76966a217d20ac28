package face

import (
	"fmt"

	"github.com/katalvlaran/citysolid/brep"
	"github.com/katalvlaran/citysolid/geom"
	"github.com/katalvlaran/citysolid/repair"
)

// Result is the outcome of one ladder run.
type Result struct {
	// Faces is never nil; empty when every rung failed.
	Faces []*brep.Face
	// Level is the rung that succeeded, or LevelFailed.
	Level Level
	// HolesSkipped counts hole rings that could not be attached.
	HolesSkipped int
}

// Builder runs the face ladder against a kernel.
type Builder struct {
	kernel brep.Kernel
	opts   Options
}

// NewBuilder returns a Builder over k; a nil k uses the polygonal kernel.
func NewBuilder(k brep.Kernel, opts ...Option) *Builder {
	if k == nil {
		k = brep.NewPolygonal()
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Builder{kernel: k, opts: o}
}

// rung is one ladder level. It reports the faces built and how many holes
// it had to skip.
type rung struct {
	level Level
	run   func(b *Builder, ext geom.Ring, holes []geom.Ring, tol float64) ([]*brep.Face, int, error)
}

var ladder = []rung{
	{LevelDirect, (*Builder).direct},
	{LevelProjected, (*Builder).projected},
	{LevelRepaired, (*Builder).repaired},
	{LevelTriangulated, (*Builder).triangulated},
}

// Build returns the faces for one surface. See BuildResult.
func (b *Builder) Build(ext geom.Ring, holes []geom.Ring, tol float64) []*brep.Face {
	return b.BuildResult(ext, holes, tol).Faces
}

// BuildResult runs the ladder and reports which rung succeeded.
func (b *Builder) BuildResult(ext geom.Ring, holes []geom.Ring, tol float64) Result {
	log := b.opts.Logger
	for _, r := range ladder {
		var (
			faces   []*brep.Face
			skipped int
		)
		err := brep.Guard(r.level.String(), func() error {
			var err error
			faces, skipped, err = r.run(b, ext, holes, tol)
			return err
		})
		if err != nil {
			log.Debugf("  face %s failed: %v", r.level, err)
			continue
		}
		if r.level > LevelDirect {
			log.Debugf("  face built at level %d (%s)", int(r.level), r.level)
		}
		b.opts.Recorder.IncFaceLevel(r.level.String())
		return Result{Faces: faces, Level: r.level, HolesSkipped: skipped}
	}
	log.Printf("  face: all levels failed for ring of %d points", len(ext))
	b.opts.Recorder.IncFaceLevel(LevelFailed.String())
	return Result{Faces: []*brep.Face{}, Level: LevelFailed}
}

func (b *Builder) direct(ext geom.Ring, holes []geom.Ring, _ float64) ([]*brep.Face, int, error) {
	f, err := b.planarFace(ext)
	if err != nil {
		return nil, 0, err
	}
	f, skipped := b.attachHoles(f, holes)
	return []*brep.Face{f}, skipped, nil
}

func (b *Builder) projected(ext geom.Ring, holes []geom.Ring, _ float64) ([]*brep.Face, int, error) {
	pts := ext.Normalize()
	if geom.Ring(pts).DistinctCount() < geom.MinRingPoints {
		return nil, 0, ErrTooFewPoints
	}
	proj, normal, err := geom.ProjectOntoBestFitPlane(pts)
	if err != nil {
		return nil, 0, err
	}
	b.opts.Logger.Debugf("  projected onto plane with normal (%.4f, %.4f, %.4f)", normal.X, normal.Y, normal.Z)
	f, err := b.planarFace(proj)
	if err != nil {
		return nil, 0, err
	}
	f, skipped := b.attachHoles(f, holes)
	return []*brep.Face{f}, skipped, nil
}

func (b *Builder) repaired(ext geom.Ring, _ []geom.Ring, tol float64) ([]*brep.Face, int, error) {
	f, err := b.planarFace(ext)
	if err != nil {
		return nil, 0, err
	}
	fixed, err := b.kernel.FixFace(f, repair.WithMax(tol, repair.FaceRepairMaxMultiplier))
	if err != nil {
		return nil, 0, err
	}
	return []*brep.Face{fixed}, 0, nil
}

func (b *Builder) triangulated(ext geom.Ring, holes []geom.Ring, _ float64) ([]*brep.Face, int, error) {
	var out []*brep.Face
	for _, tri := range geom.TriangulateFan(ext.Normalize()) {
		err := brep.Guard("triangle", func() error {
			w, err := b.kernel.MakeWire(tri)
			if err != nil {
				return err
			}
			f, err := b.kernel.MakeFace(w, false)
			if err != nil {
				return err
			}
			out = append(out, f)
			return nil
		})
		if err != nil {
			b.opts.Logger.Debugf("  triangle skipped: %v", err)
		}
	}
	if len(out) == 0 {
		return nil, 0, ErrNoTriangles
	}
	return out, len(holes), nil
}

// planarFace builds a face from ring without strict planarity.
func (b *Builder) planarFace(ring geom.Ring) (*brep.Face, error) {
	pts := ring.Normalize()
	if geom.Ring(pts).DistinctCount() < geom.MinRingPoints {
		return nil, fmt.Errorf("%d distinct points: %w", geom.Ring(pts).DistinctCount(), ErrTooFewPoints)
	}
	w, err := b.kernel.MakeWire(pts)
	if err != nil {
		return nil, err
	}
	return b.kernel.MakeFace(w, false)
}

// attachHoles adds every usable hole to f, skipping the ones that fail.
func (b *Builder) attachHoles(f *brep.Face, holes []geom.Ring) (*brep.Face, int) {
	skipped := 0
	for i, h := range holes {
		err := brep.Guard("hole", func() error {
			if !h.Usable() {
				return ErrTooFewPoints
			}
			w, err := b.kernel.MakeWire(h.Normalize())
			if err != nil {
				return err
			}
			nf, err := b.kernel.AddHole(f, w)
			if err != nil {
				return err
			}
			f = nf
			return nil
		})
		if err != nil {
			skipped++
			b.opts.Logger.Printf("  hole %d skipped: %v", i, err)
		}
	}
	return f, skipped
}

// ValidateAndFix returns f when valid, otherwise the result of one FixFace
// pass with precision tol and max tolerance tol×100 if that is valid, else nil.
func (b *Builder) ValidateAndFix(f *brep.Face, tol float64) *brep.Face {
	if f == nil {
		return nil
	}
	var out *brep.Face
	err := brep.Guard("ValidateAndFix", func() error {
		if b.kernel.IsValid(f) {
			out = f
			return nil
		}
		fixed, err := b.kernel.FixFace(f, repair.WithMax(tol, repair.ValidateMaxMultiplier))
		if err != nil {
			return err
		}
		if b.kernel.IsValid(fixed) {
			out = fixed
		}
		return nil
	})
	if err != nil {
		b.opts.Logger.Debugf("  face fix failed: %v", err)
		return nil
	}
	return out
}
