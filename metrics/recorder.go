package metrics

import "time"

// Outcome labels shared by the shell and solid counters.
const (
	OutcomeSolid    = "solid"
	OutcomeShell    = "shell"
	OutcomeCompound = "compound"
	OutcomeFailed   = "failed"
)

// Recorder defines the observability hooks of the conversion pipeline.
type Recorder interface {
	// IncFaceLevel counts a face-builder ladder outcome ("direct", ..., "failed").
	IncFaceLevel(level string)
	// IncShellOutcome counts a shell assembly outcome.
	IncShellOutcome(outcome string)
	// IncSolidOutcome counts the final shape kind of a solid build.
	IncSolidOutcome(outcome string)
	// IncEscalation counts one escalation strategy attempt at a repair level.
	IncEscalation(level, strategy string, success bool)
	// ObserveBuildDuration records the wall time of one building conversion.
	ObserveBuildDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncFaceLevel(string)                {}
func (NoopRecorder) IncShellOutcome(string)             {}
func (NoopRecorder) IncSolidOutcome(string)             {}
func (NoopRecorder) IncEscalation(string, string, bool) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration) {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
