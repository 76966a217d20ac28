package shell

import (
	"fmt"

	"github.com/katalvlaran/citysolid/face"
	"github.com/katalvlaran/citysolid/logsink"
	"github.com/katalvlaran/citysolid/metrics"
)

const (
	// InvalidFaceRatioThreshold is the invalid-face fraction below which a
	// partially valid shell is still used during reconciliation.
	InvalidFaceRatioThreshold = 0.5
	// ResewRelaxMultiplier scales the tolerance of the last-chance re-sew
	// when no shell is acceptable.
	ResewRelaxMultiplier = 10.0
)

// Options configures an Assembler.
type Options struct {
	Logger   logsink.Logger
	Recorder metrics.Recorder

	InvalidFaceRatio float64
	RelaxMultiplier  float64

	// Orientation runs at stage 2, Dedup at stage 3.
	Orientation face.Cleanup
	Dedup       face.Cleanup

	// OnSew observes every sewing tolerance, in order.
	OnSew func(tol float64)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the tuned constants and no-op cleanup slots.
func DefaultOptions() Options {
	return Options{
		Recorder:         metrics.NoopRecorder{},
		InvalidFaceRatio: InvalidFaceRatioThreshold,
		RelaxMultiplier:  ResewRelaxMultiplier,
		Orientation:      face.Identity{},
		Dedup:            face.Identity{},
	}
}

// WithLogger sets the logger.
func WithLogger(l logsink.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithRecorder sets the metrics recorder. Panics on nil.
func WithRecorder(r metrics.Recorder) Option {
	if r == nil {
		panic("shell: WithRecorder(nil)")
	}
	return func(o *Options) { o.Recorder = r }
}

// WithInvalidFaceRatio overrides InvalidFaceRatioThreshold. Panics unless
// 0 < r <= 1.
func WithInvalidFaceRatio(r float64) Option {
	if !(r > 0 && r <= 1) {
		panic(fmt.Sprintf("shell: WithInvalidFaceRatio(%v): want (0,1]", r))
	}
	return func(o *Options) { o.InvalidFaceRatio = r }
}

// WithRelaxMultiplier overrides ResewRelaxMultiplier. Panics unless m > 1.
func WithRelaxMultiplier(m float64) Option {
	if !(m > 1) {
		panic(fmt.Sprintf("shell: WithRelaxMultiplier(%v): want > 1", m))
	}
	return func(o *Options) { o.RelaxMultiplier = m }
}

// WithOrientation sets the stage-2 cleanup. Panics on nil.
func WithOrientation(c face.Cleanup) Option {
	if c == nil {
		panic("shell: WithOrientation(nil)")
	}
	return func(o *Options) { o.Orientation = c }
}

// WithDedup sets the stage-3 cleanup. Panics on nil.
func WithDedup(c face.Cleanup) Option {
	if c == nil {
		panic("shell: WithDedup(nil)")
	}
	return func(o *Options) { o.Dedup = c }
}

// WithOnSew installs a hook called with every sewing tolerance.
func WithOnSew(fn func(tol float64)) Option {
	return func(o *Options) { o.OnSew = fn }
}
