package solid

import (
	"strings"

	"github.com/katalvlaran/citysolid/brep"
	"github.com/katalvlaran/citysolid/geom"
	"github.com/katalvlaran/citysolid/metrics"
	"github.com/katalvlaran/citysolid/repair"
	"github.com/katalvlaran/citysolid/shell"
	"github.com/katalvlaran/citysolid/tolerance"
)

// Kind is the kind of shape a build produced.
type Kind string

const (
	KindNone     Kind = "none"
	KindSolid    Kind = "solid"
	KindShell    Kind = "shell"
	KindCompound Kind = "compound"
)

// Strategy names the step that produced a solid.
type Strategy string

const (
	StrategyNone           Strategy = ""
	StrategyInitial        Strategy = "initial"
	StrategySolidFix       Strategy = "solid-fix"
	StrategyUnify          Strategy = "unify"
	StrategyRelaxedRebuild Strategy = "relaxed-rebuild"
	StrategyShapeFix       Strategy = "shape-fix"
)

// Input is one building's geometry.
type Input struct {
	Exterior []*brep.Face
	// Interiors holds one face group per cavity.
	Interiors [][]*brep.Face
	// Tolerance is the sewing tolerance; zero or negative derives it from the
	// exterior vertices under Precision.
	Tolerance float64
	Precision tolerance.Mode
	// Level is the shell cleanup level and the start of escalation.
	Level repair.Level
}

// Result is the outcome of Build.
type Result struct {
	// Shape is a *brep.Solid, *brep.Shell, *brep.Compound, or nil.
	Shape     brep.Shape
	Kind      Kind
	Tolerance float64
	// LevelsTried lists the escalation levels entered; empty when the first
	// solid was valid or no solid was attempted.
	LevelsTried []repair.Level
	// Strategy is the step that produced the solid, StrategyNone otherwise.
	Strategy Strategy
	// Cavities counts the closed interior shells attached to the solid.
	Cavities int
	// Diagnosis describes the first invalid solid, if any.
	Diagnosis *Diagnosis
}

// Builder builds solids with a kernel.
type Builder struct {
	kernel brep.Kernel
	shells *shell.Assembler
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
	so := append([]shell.Option{shell.WithLogger(o.Logger), shell.WithRecorder(o.Recorder)}, o.ShellOptions...)
	return &Builder{
		kernel: k,
		shells: shell.NewAssembler(k, so...),
		opts:   o,
	}
}

// Tolerance derives the sewing tolerance from the vertices of faces.
func Tolerance(faces []*brep.Face, m tolerance.Mode) float64 {
	var pts []geom.Point
	for _, f := range faces {
		if f == nil {
			continue
		}
		pts = append(pts, f.Outer()...)
		for _, h := range f.Holes() {
			pts = append(pts, h...)
		}
	}
	return tolerance.FromPoints(pts, m)
}

// Build never panics. See the package documentation for the steps.
func (b *Builder) Build(in Input) Result {
	res := b.build(in)
	outcome := string(res.Kind)
	if res.Kind == KindNone {
		outcome = metrics.OutcomeFailed
	}
	b.opts.Recorder.IncSolidOutcome(outcome)
	return res
}

func (b *Builder) build(in Input) Result {
	log := b.opts.Logger
	tol := in.Tolerance
	if tol <= 0 {
		tol = Tolerance(in.Exterior, in.Precision)
		log.Debugf("auto-computed tolerance: %.6f (precision mode: %s)", tol, in.Precision)
	}
	res := Result{Kind: KindNone, Tolerance: tol}

	log.Debugf("building exterior shell from %d faces", len(in.Exterior))
	ext := b.shells.Build(in.Exterior, tol, in.Level)
	if ext == nil {
		log.Printf("exterior shell failed")
		return res
	}
	exterior, ok := ext.(*brep.Shell)
	if !ok {
		log.Printf("exterior is a %s of %d shells, returned as is", ext.Kind(), len(brep.Shells(ext)))
		res.Shape, res.Kind = ext, KindCompound
		return res
	}
	res.Shape, res.Kind = exterior, KindShell

	if !b.closed(exterior) {
		log.Printf("exterior shell is not closed, returning shell")
		return res
	}

	cavities := b.cavities(in.Interiors, tol, in.Level)

	var (
		solid *brep.Solid
		valid bool
	)
	err := brep.Guard("MakeSolid", func() error {
		var err error
		solid, err = b.kernel.MakeSolid(exterior, cavities)
		if err != nil {
			return err
		}
		valid = b.kernel.IsValid(solid)
		return nil
	})
	if err != nil {
		log.Printf("solid creation failed: %v, returning shell", err)
		return res
	}
	if valid {
		log.Printf("initial solid is valid (%d cavities)", len(cavities))
		return b.solidResult(res, solid, StrategyInitial, len(cavities))
	}

	log.Printf("initial solid is invalid")
	d := Diagnose(b.kernel, solid)
	res.Diagnosis = &d
	for _, line := range d.Lines() {
		log.Debugf("  %s", line)
	}

	att := &attempt{input: in, tol: tol, solid: solid, cavities: cavities}
	path := repair.Escalation(in.Level)
	log.Printf("auto-escalation: %s", joinLevels(path))
	for i, level := range path {
		res.LevelsTried = append(res.LevelsTried, level)
		if b.opts.OnLevel != nil {
			b.opts.OnLevel(level)
		}
		if i > 0 {
			log.Printf("escalating to %s", level)
		}
		if shape, name, ok := b.runLevel(att, level); ok {
			log.Printf("%s succeeded at level %s", name, level)
			return b.solidResult(res, shape, name, len(cavities))
		}
		log.Debugf("all strategies failed at level %s", level)
	}

	log.Printf("repair exhausted after %s, returning shell", joinLevels(path))
	return res
}

// closed reports shell closure; a kernel fault counts as open.
func (b *Builder) closed(sh *brep.Shell) bool {
	var closed bool
	err := brep.Guard("IsClosed", func() error {
		closed = b.kernel.IsClosed(sh)
		return nil
	})
	if err != nil {
		b.opts.Logger.Debugf("closure check failed: %v", err)
		return false
	}
	return closed
}

// cavities assembles each interior group and keeps the closed shells,
// wound inward.
func (b *Builder) cavities(groups [][]*brep.Face, tol float64, level repair.Level) []*brep.Shell {
	log := b.opts.Logger
	var out []*brep.Shell
	for i, faces := range groups {
		shape := b.shells.Build(faces, tol, level)
		sh, ok := shape.(*brep.Shell)
		if !ok || sh == nil {
			log.Debugf("interior shell %d skipped: no single shell", i+1)
			continue
		}
		if !b.closed(sh) {
			log.Debugf("interior shell %d is not closed, skipping", i+1)
			continue
		}
		out = append(out, brep.Inward(sh))
		log.Debugf("added interior shell %d", i+1)
	}
	return out
}

func (b *Builder) solidResult(res Result, shape brep.Shape, name Strategy, cavities int) Result {
	res.Shape = shape
	res.Strategy = name
	switch shape.Kind() {
	case brep.KindSolid:
		res.Kind = KindSolid
		res.Cavities = cavities
		if s, ok := shape.(*brep.Solid); ok {
			res.Cavities = len(s.Cavities())
		}
	case brep.KindCompound:
		res.Kind = KindCompound
	default:
		res.Kind = KindShell
	}
	return res
}

func joinLevels(path []repair.Level) string {
	names := make([]string, len(path))
	for i, l := range path {
		names[i] = l.String()
	}
	return strings.Join(names, " -> ")
}
