package shell

import (
	"fmt"

	"github.com/katalvlaran/citysolid/brep"
	"github.com/katalvlaran/citysolid/face"
	"github.com/katalvlaran/citysolid/metrics"
	"github.com/katalvlaran/citysolid/repair"
)

// Branch names the reconciliation path that produced the result.
type Branch string

const (
	BranchNone              Branch = "none"
	BranchSingle            Branch = "single"
	BranchResewed           Branch = "resewed"
	BranchCompound          Branch = "compound"
	BranchLargestAcceptable Branch = "largest-acceptable"
	BranchRelaxed           Branch = "relaxed"
	BranchLargestOriginal   Branch = "largest-original"
)

// Report describes one assembly.
type Report struct {
	Level      repair.Level
	InputFaces int
	// FacesDropped counts faces removed by stage 1.
	FacesDropped int
	// SewTolerances lists every sewing tolerance applied, in order, including
	// reconciliation re-sews.
	SewTolerances []float64
	// FacesLost lists, per sewing pass, how many faces the pass consumed.
	FacesLost   []int
	ShellsFound int
	Branch      Branch
	// FinalFixed is set when the final validation ran a repair.
	FinalFixed bool
	// Err is the reason for a nil result.
	Err error
}

// Assembler sews faces into shells.
type Assembler struct {
	kernel brep.Kernel
	faces  *face.Builder
	opts   Options
}

// NewAssembler returns an Assembler over k; a nil k uses the polygonal kernel.
func NewAssembler(k brep.Kernel, opts ...Option) *Assembler {
	if k == nil {
		k = brep.NewPolygonal()
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Assembler{
		kernel: k,
		faces:  face.NewBuilder(k, face.WithLogger(o.Logger)),
		opts:   o,
	}
}

// Build returns a *brep.Shell, a *brep.Compound, or nil.
func (a *Assembler) Build(faces []*brep.Face, tol float64, level repair.Level) brep.Shape {
	shape, _ := a.BuildWithReport(faces, tol, level)
	return shape
}

// BuildWithReport is Build plus a description of what happened.
func (a *Assembler) BuildWithReport(faces []*brep.Face, tol float64, level repair.Level) (brep.Shape, Report) {
	rep := Report{Level: level, InputFaces: len(faces), Branch: BranchNone}
	shape, err := a.build(faces, tol, level, &rep)
	if err != nil {
		rep.Err = err
		a.opts.Logger.Printf("  shell build failed: %v", err)
		a.opts.Recorder.IncShellOutcome(metrics.OutcomeFailed)
		return nil, rep
	}
	if shape.Kind() == brep.KindCompound {
		a.opts.Recorder.IncShellOutcome(metrics.OutcomeCompound)
	} else {
		a.opts.Recorder.IncShellOutcome(metrics.OutcomeShell)
	}
	return shape, rep
}

func (a *Assembler) build(faces []*brep.Face, tol float64, level repair.Level, rep *Report) (brep.Shape, error) {
	log := a.opts.Logger
	if len(faces) == 0 {
		return nil, ErrNoFaces
	}

	if level.AtLeast(repair.Aggressive) {
		kept := make([]*brep.Face, 0, len(faces))
		for _, f := range faces {
			if ff := a.faces.ValidateAndFix(f, tol); ff != nil {
				kept = append(kept, ff)
			}
		}
		rep.FacesDropped = len(faces) - len(kept)
		if rep.FacesDropped > 0 {
			log.Debugf("  dropped %d unfixable faces", rep.FacesDropped)
		}
		if len(kept) == 0 {
			return nil, fmt.Errorf("all %d faces invalid: %w", len(faces), ErrNoFaces)
		}
		faces = kept
	}
	if level.AtLeast(repair.Standard) {
		faces = a.cleanup("orientation", a.opts.Orientation, faces, tol)
	}
	if level.AtLeast(repair.Aggressive) {
		faces = a.cleanup("dedup", a.opts.Dedup, faces, tol)
	}
	if len(faces) == 0 {
		return nil, ErrNoFaces
	}

	sewn, err := a.sewStage(faces, tol, level, rep)
	if err != nil {
		return nil, err
	}
	var shape brep.Shape = sewn

	if p, ok := repair.ShellFixParams(level, tol); ok {
		err := brep.Guard("FixShape", func() error {
			fixed, err := a.kernel.FixShape(sewn, p)
			if err != nil {
				return err
			}
			shape = fixed
			return nil
		})
		if err != nil {
			log.Debugf("  shape fix skipped: %v", err)
		}
	}

	shells := brep.Shells(shape)
	rep.ShellsFound = len(shells)
	log.Printf("  sewing produced %d shell(s)", len(shells))
	var result brep.Shape
	switch len(shells) {
	case 0:
		return nil, ErrNoShells
	case 1:
		rep.Branch = BranchSingle
		result = shells[0]
	default:
		result = a.reconcile(shells, tol, rep)
	}
	return a.finalize(result, tol, level, rep), nil
}

// cleanup runs a strategy slot; a panicking strategy leaves the faces as they were.
func (a *Assembler) cleanup(name string, c face.Cleanup, faces []*brep.Face, tol float64) []*brep.Face {
	out := faces
	err := brep.Guard(name, func() error {
		out = c.Apply(faces, tol)
		return nil
	})
	if err != nil {
		a.opts.Logger.Debugf("  %s cleanup failed: %v", name, err)
		return faces
	}
	return out
}

// sewStage runs stage 4.
func (a *Assembler) sewStage(faces []*brep.Face, tol float64, level repair.Level, rep *Report) (*brep.Compound, error) {
	if level != repair.Ultra {
		return a.sew(faces, tol, rep)
	}
	var sewn *brep.Compound
	muls := repair.UltraSewingMultipliers()
	for i, m := range muls {
		var err error
		sewn, err = a.sew(faces, tol*m, rep)
		if err != nil {
			return nil, err
		}
		if i < len(muls)-1 {
			faces = sewn.Faces()
		}
	}
	return sewn, nil
}

func (a *Assembler) sew(faces []*brep.Face, tol float64, rep *Report) (*brep.Compound, error) {
	rep.SewTolerances = append(rep.SewTolerances, tol)
	if a.opts.OnSew != nil {
		a.opts.OnSew(tol)
	}
	a.opts.Logger.Debugf("  sewing %d faces at tolerance %.6g", len(faces), tol)
	var sewn *brep.Compound
	err := brep.Guard("Sew", func() error {
		var err error
		sewn, err = a.kernel.Sew(faces, tol)
		return err
	})
	if err != nil {
		rep.FacesLost = append(rep.FacesLost, len(faces))
		return nil, err
	}
	lost := len(faces) - len(sewn.Faces())
	rep.FacesLost = append(rep.FacesLost, lost)
	if lost > 0 {
		a.opts.Logger.Debugf("  sewing consumed %d face(s)", lost)
	}
	return sewn, nil
}

// reconcile implements stage 6 for several shells.
func (a *Assembler) reconcile(shells []*brep.Shell, tol float64, rep *Report) brep.Shape {
	log := a.opts.Logger
	var (
		acceptable []*brep.Shell
		collected  []*brep.Face
	)
	for i, sh := range shells {
		faces := sh.Faces()
		valid, invalid := a.shellHealth(sh)
		ratio := float64(len(invalid)) / float64(len(faces))
		if !valid && ratio >= a.opts.InvalidFaceRatio {
			log.Debugf("  shell %d rejected: %d/%d invalid faces", i, len(invalid), len(faces))
			continue
		}
		acceptable = append(acceptable, sh)
		if valid {
			collected = append(collected, faces...)
			continue
		}
		bad := make(map[int]bool, len(invalid))
		for _, j := range invalid {
			bad[j] = true
		}
		for j, f := range faces {
			if !bad[j] {
				collected = append(collected, f)
			}
		}
	}

	if len(acceptable) == 0 {
		var all []*brep.Face
		for _, sh := range shells {
			all = append(all, sh.Faces()...)
		}
		if sewn, err := a.sew(all, tol*a.opts.RelaxMultiplier, rep); err == nil {
			if best := largest(brep.Shells(sewn)); best != nil {
				rep.Branch = BranchRelaxed
				return best
			}
		}
		rep.Branch = BranchLargestOriginal
		return largest(shells)
	}

	if len(collected) > 0 {
		if sewn, err := a.sew(collected, tol, rep); err == nil {
			resewn := brep.Shells(sewn)
			switch {
			case len(resewn) == 1:
				rep.Branch = BranchResewed
				return resewn[0]
			case len(resewn) > 1:
				rep.Branch = BranchCompound
				log.Printf("  keeping %d disconnected shells as a compound", len(resewn))
				return brep.NewCompound(resewn, nil)
			}
		}
	}
	rep.Branch = BranchLargestAcceptable
	return largest(acceptable)
}

// shellHealth reports shell validity and the indices of invalid faces.
// A kernel panic counts the whole shell as invalid.
func (a *Assembler) shellHealth(sh *brep.Shell) (bool, []int) {
	faces := sh.Faces()
	var (
		valid   bool
		invalid []int
	)
	err := brep.Guard("IsValid", func() error {
		valid = a.kernel.IsValid(sh)
		for i, f := range faces {
			if !a.kernel.IsValid(f) {
				invalid = append(invalid, i)
			}
		}
		return nil
	})
	if err != nil {
		invalid = invalid[:0]
		for i := range faces {
			invalid = append(invalid, i)
		}
		return false, invalid
	}
	return valid, invalid
}

// finalize applies the best-effort repair of an invalid result. The repaired
// shape is kept whether or not it validates.
func (a *Assembler) finalize(shape brep.Shape, tol float64, level repair.Level, rep *Report) brep.Shape {
	p := repair.Params{}
	if level == repair.Ultra {
		p = repair.WithMax(tol, repair.UltraShellFixMaxMultiplier)
	}
	fix := func(sh *brep.Shell) *brep.Shell {
		out := sh
		err := brep.Guard("FixShell", func() error {
			if a.kernel.IsValid(sh) {
				return nil
			}
			fixed, err := a.kernel.FixShell(sh, p)
			if err != nil {
				return err
			}
			rep.FinalFixed = true
			out = fixed
			return nil
		})
		if err != nil {
			a.opts.Logger.Debugf("  final shell fix failed: %v", err)
		}
		return out
	}

	switch s := shape.(type) {
	case *brep.Shell:
		return fix(s)
	case *brep.Compound:
		shells := s.Shells()
		for i, sh := range shells {
			shells[i] = fix(sh)
		}
		return brep.NewCompound(shells, s.Loose())
	default:
		return shape
	}
}

// largest returns the shell with most faces, the first one on ties.
func largest(shells []*brep.Shell) *brep.Shell {
	var best *brep.Shell
	for _, sh := range shells {
		if best == nil || len(sh.Faces()) > len(best.Faces()) {
			best = sh
		}
	}
	return best
}
