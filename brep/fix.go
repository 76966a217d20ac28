package brep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/citysolid/geom"
	"github.com/katalvlaran/citysolid/repair"
)

// params resolves zero fields of p to kernel defaults.
func (k *Polygonal) params(p repair.Params) (prec, maxTol float64) {
	prec, maxTol = p.Precision, p.MaxTolerance
	if !(prec > 0) {
		prec = k.opts.Confusion
	}
	if !(maxTol > 0) {
		maxTol = k.opts.FixMaxTolerance
	}
	return prec, math.Max(prec, maxTol)
}

// FixFace repairs a face:
//
//   - vertices closer than the precision to their predecessor are removed,
//     as are spikes (a, b, a);
//   - the tolerance grows to the measured plane deviation when that stays
//     within MaxTolerance;
//   - holes winding like the outer loop are reversed; holes with fewer than
//     3 vertices or lying outside the outer loop are dropped.
//
// The result may still be invalid (e.g. self-intersecting); callers check
// with IsValid. ErrDegenerateFace is returned when the outer loop collapses.
func (k *Polygonal) FixFace(f *Face, p repair.Params) (*Face, error) {
	if f == nil {
		return nil, fmt.Errorf("FixFace: %w", ErrNilShape)
	}
	prec, maxTol := k.params(p)

	outer := removeSpikes(dedupeLoop(f.outer, prec))
	if len(outer) < geom.MinRingPoints {
		return nil, fmt.Errorf("FixFace: outer loop collapsed: %w", ErrDegenerateFace)
	}
	base, _, err := k.newFace(outer, nil, f.tol)
	if err != nil {
		return nil, fmt.Errorf("FixFace: %w", err)
	}
	pl, err := base.Plane()
	if err != nil {
		return nil, fmt.Errorf("FixFace: %w", ErrDegenerateFace)
	}
	outer2D := pl.Loop2D(outer)

	var holes [][]geom.Point
	for _, h := range f.holes {
		h = removeSpikes(dedupeLoop(h, prec))
		if len(h) < geom.MinRingPoints {
			continue
		}
		n := geom.NewellNormal(h)
		if r3.Norm(n) <= k.areaEps() {
			continue
		}
		if r3.Dot(n, base.normal) > 0 {
			h = reversePoints(h)
		}
		if !ringInside(pl.Loop2D(h), outer2D) {
			continue
		}
		holes = append(holes, h)
	}

	out, dev, err := k.newFace(outer, holes, f.tol)
	if err != nil {
		return nil, fmt.Errorf("FixFace: %w", err)
	}
	// growth is capped; beyond the cap the face keeps its old tolerance and
	// stays invalid
	if dev > maxTol {
		out.tol = math.Max(f.tol, k.opts.Confusion)
	}
	return out, nil
}

// FixShell repairs every face of s, drops faces that collapse, and orients
// the remaining faces consistently; a closed shell is turned outward.
// ErrNoFaces is returned when nothing survives.
func (k *Polygonal) FixShell(s *Shell, p repair.Params) (*Shell, error) {
	if s == nil {
		return nil, fmt.Errorf("FixShell: %w", ErrNilShape)
	}
	faces := make([]*Face, 0, len(s.faces))
	for _, f := range s.faces {
		ff, err := k.FixFace(f, p)
		if err != nil {
			continue
		}
		faces = append(faces, ff)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("FixShell: %w", ErrNoFaces)
	}
	out := &Shell{faces: Orient(faces)}
	if shellClosed(out) && signedVolume(out.faces) < 0 {
		out = ReverseShell(out)
	}
	return out, nil
}

// FixSolid repairs the outer shell and cavities, turns the outer shell
// outward and cavities inward, and drops cavities that are not closed.
func (k *Polygonal) FixSolid(s *Solid, p repair.Params) (*Solid, error) {
	if s == nil || s.outer == nil {
		return nil, fmt.Errorf("FixSolid: %w", ErrNilShape)
	}
	outer, err := k.FixShell(s.outer, p)
	if err != nil {
		return nil, fmt.Errorf("FixSolid: outer: %w", err)
	}
	if signedVolume(outer.faces) < 0 {
		outer = ReverseShell(outer)
	}
	var cavities []*Shell
	for _, c := range s.cavities {
		fc, err := k.FixShell(c, p)
		if err != nil || !shellClosed(fc) {
			continue
		}
		if signedVolume(fc.faces) > 0 {
			fc = ReverseShell(fc)
		}
		cavities = append(cavities, fc)
	}
	return &Solid{outer: outer, cavities: cavities}, nil
}

// FixShape dispatches to the fixer for shape's kind. A compound is fixed
// shell by shell and face by face; parts that collapse are dropped.
func (k *Polygonal) FixShape(shape Shape, p repair.Params) (Shape, error) {
	if isNil(shape) {
		return nil, fmt.Errorf("FixShape: %w", ErrNilShape)
	}
	switch s := shape.(type) {
	case *Face:
		f, err := k.FixFace(s, p)
		if err != nil {
			return nil, err
		}
		return f, nil
	case *Shell:
		sh, err := k.FixShell(s, p)
		if err != nil {
			return nil, err
		}
		return sh, nil
	case *Solid:
		so, err := k.FixSolid(s, p)
		if err != nil {
			return nil, err
		}
		return so, nil
	case *Compound:
		out := &Compound{}
		for _, sh := range s.shells {
			if fs, err := k.FixShell(sh, p); err == nil {
				out.shells = append(out.shells, fs)
			}
		}
		for _, f := range s.loose {
			if ff, err := k.FixFace(f, p); err == nil {
				out.loose = append(out.loose, ff)
			}
		}
		if len(out.shells) == 0 && len(out.loose) == 0 {
			return nil, fmt.Errorf("FixShape: %w", ErrNoFaces)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("FixShape: %T: %w", shape, ErrUnsupportedShape)
	}
}

// ReverseShell returns s with every face reversed.
func ReverseShell(s *Shell) *Shell {
	out := &Shell{faces: make([]*Face, len(s.faces))}
	for i, f := range s.faces {
		out.faces[i] = f.Reversed()
	}
	return out
}

// Inward returns s wound so that it encloses a negative volume, as a cavity
// of a solid must be. Open shells are returned unchanged.
func Inward(s *Shell) *Shell {
	if s == nil || !shellClosed(s) || signedVolume(s.faces) < 0 {
		return s
	}
	return ReverseShell(s)
}
