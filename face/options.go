package face

import (
	"github.com/katalvlaran/citysolid/logsink"
	"github.com/katalvlaran/citysolid/metrics"
)

// Options configures a Builder.
type Options struct {
	Logger   logsink.Logger
	Recorder metrics.Recorder
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions logs to the process-wide sink and records nothing.
func DefaultOptions() Options {
	return Options{Recorder: metrics.NoopRecorder{}}
}

// WithLogger sets the logger.
func WithLogger(l logsink.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithRecorder sets the metrics recorder. Panics on nil.
func WithRecorder(r metrics.Recorder) Option {
	if r == nil {
		panic("face: WithRecorder(nil)")
	}
	return func(o *Options) { o.Recorder = r }
}
