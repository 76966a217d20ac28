package solid

import (
	"fmt"

	"github.com/katalvlaran/citysolid/brep"
	"github.com/katalvlaran/citysolid/repair"
)

// attempt is the state carried across escalation levels.
type attempt struct {
	input    Input
	tol      float64
	solid    *brep.Solid
	cavities []*brep.Shell
}

// strategy is one escalation step, available from level min upward.
type strategy struct {
	name Strategy
	min  repair.Level
	run  func(b *Builder, a *attempt, level repair.Level) (brep.Shape, error)
}

var strategies = []strategy{
	{StrategySolidFix, repair.Minimal, (*Builder).solidFix},
	{StrategyUnify, repair.Standard, (*Builder).unify},
	{StrategyRelaxedRebuild, repair.Aggressive, (*Builder).relaxedRebuild},
	{StrategyShapeFix, repair.Ultra, (*Builder).shapeFix},
}

// runLevel tries every strategy level unlocks and returns the first valid shape.
func (b *Builder) runLevel(a *attempt, level repair.Level) (brep.Shape, Strategy, bool) {
	for _, s := range strategies {
		if !level.AtLeast(s.min) {
			continue
		}
		var shape brep.Shape
		err := brep.Guard(string(s.name), func() error {
			var err error
			shape, err = s.run(b, a, level)
			return err
		})
		b.opts.Recorder.IncEscalation(level.String(), string(s.name), err == nil)
		if err == nil {
			return shape, s.name, true
		}
		b.opts.Logger.Debugf("  %s failed at %s: %v", s.name, level, err)
	}
	return nil, StrategyNone, false
}

func (b *Builder) validated(shape brep.Shape) (brep.Shape, error) {
	if !b.kernel.IsValid(shape) {
		return nil, ErrStillInvalid
	}
	return shape, nil
}

// solidFix keeps its partially repaired output for the later strategies.
func (b *Builder) solidFix(a *attempt, _ repair.Level) (brep.Shape, error) {
	fixed, err := b.kernel.FixSolid(a.solid, repair.WithMax(a.tol, repair.SolidRepairMaxMultiplier))
	if err != nil {
		return nil, err
	}
	if b.kernel.IsValid(fixed) {
		return fixed, nil
	}
	a.solid = fixed
	return nil, ErrStillInvalid
}

func (b *Builder) unify(a *attempt, _ repair.Level) (brep.Shape, error) {
	shape, err := b.kernel.Unify(a.solid)
	if err != nil {
		return nil, err
	}
	return b.validated(shape)
}

// relaxedRebuild sews the original exterior faces again at a looser
// tolerance, with the current level's cleanup.
func (b *Builder) relaxedRebuild(a *attempt, level repair.Level) (brep.Shape, error) {
	relaxed := a.tol * repair.RelaxedRebuildMultiplier
	b.opts.Logger.Debugf("  rebuilding exterior at tolerance %.6f", relaxed)
	sh, ok := b.shells.Build(a.input.Exterior, relaxed, level).(*brep.Shell)
	if !ok || sh == nil || !b.kernel.IsClosed(sh) {
		return nil, ErrRebuildOpen
	}
	s, err := b.kernel.MakeSolid(sh, a.cavities)
	if err != nil {
		return nil, fmt.Errorf("relaxed rebuild: %w", err)
	}
	return b.validated(s)
}

func (b *Builder) shapeFix(a *attempt, _ repair.Level) (brep.Shape, error) {
	fixed, err := b.kernel.FixShape(a.solid, repair.WithMax(a.tol, repair.ShapeRepairMaxMultiplier))
	if err != nil {
		return nil, err
	}
	return b.validated(fixed)
}
