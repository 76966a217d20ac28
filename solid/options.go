package solid

import (
	"github.com/katalvlaran/citysolid/logsink"
	"github.com/katalvlaran/citysolid/metrics"
	"github.com/katalvlaran/citysolid/repair"
	"github.com/katalvlaran/citysolid/shell"
)

// Options configures a Builder.
type Options struct {
	Logger   logsink.Logger
	Recorder metrics.Recorder

	// ShellOptions are passed to the shell assembler after the logger and
	// recorder above.
	ShellOptions []shell.Option

	// OnLevel observes every escalation level entered, in order.
	OnLevel func(level repair.Level)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions logs to the process-wide sink and records nothing.
func DefaultOptions() Options {
	return Options{Recorder: metrics.NoopRecorder{}}
}

// WithLogger sets the logger shared with the shell assembler.
func WithLogger(l logsink.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithRecorder sets the metrics recorder. Panics on nil.
func WithRecorder(r metrics.Recorder) Option {
	if r == nil {
		panic("solid: WithRecorder(nil)")
	}
	return func(o *Options) { o.Recorder = r }
}

// WithShellOptions appends options for the internal shell assembler.
func WithShellOptions(opts ...shell.Option) Option {
	return func(o *Options) { o.ShellOptions = append(o.ShellOptions, opts...) }
}

// WithOnLevel installs a hook called for each escalation level entered.
func WithOnLevel(fn func(level repair.Level)) Option {
	return func(o *Options) { o.OnLevel = fn }
}
