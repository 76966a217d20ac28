package repair

// Params configures a kernel repair call. The zero value asks the kernel to
// use its own defaults.
type Params struct {
	// Precision is the basic geometric precision the fixer works at.
	Precision float64
	// MaxTolerance caps how far the fixer may grow tolerances.
	MaxTolerance float64
}

// IsZero reports whether p requests kernel defaults.
func (p Params) IsZero() bool {
	return p.Precision == 0 && p.MaxTolerance == 0
}

// Tuned multipliers applied to the building tolerance at each call site.
const (
	// FaceRepairMaxMultiplier bounds face repair in the face builder's third rung.
	FaceRepairMaxMultiplier = 1000.0
	// ValidateMaxMultiplier bounds the single repair pass of ValidateAndFix.
	ValidateMaxMultiplier = 100.0
	// SolidRepairMaxMultiplier bounds the solid-level fix at every escalation level.
	SolidRepairMaxMultiplier = 10.0
	// ShapeRepairMaxMultiplier bounds the whole-shape fix reserved for Ultra.
	ShapeRepairMaxMultiplier = 100.0
	// RelaxedRebuildMultiplier scales the tolerance of the Aggressive+ shell rebuild.
	RelaxedRebuildMultiplier = 2.0
	// UltraShellFixMaxMultiplier bounds the final shell fix in Ultra.
	UltraShellFixMaxMultiplier = 1000.0
)

// UltraSewingMultipliers is the fixed sewing schedule for Ultra: a loose pass,
// a tighter pass, then the target tolerance. The order must not change.
func UltraSewingMultipliers() []float64 {
	return []float64{10.0, 5.0, 1.0}
}

// WithMax returns Params{tol, tol*maxMul}.
func WithMax(tol, maxMul float64) Params {
	return Params{Precision: tol, MaxTolerance: tol * maxMul}
}

// ShellFixParams returns the whole-shape repair parameters applied after
// sewing. ok is false for Minimal, which skips the pass.
func ShellFixParams(l Level, tol float64) (p Params, ok bool) {
	switch l {
	case Standard:
		return Params{Precision: tol, MaxTolerance: tol * 10}, true
	case Aggressive:
		return Params{Precision: tol * 10, MaxTolerance: tol * 100}, true
	case Ultra:
		return Params{Precision: tol, MaxTolerance: tol * 1000}, true
	default:
		return Params{}, false
	}
}
