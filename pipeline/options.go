package pipeline

import (
	"fmt"

	"github.com/katalvlaran/citysolid/brep"
	"github.com/katalvlaran/citysolid/config"
	"github.com/katalvlaran/citysolid/logsink"
	"github.com/katalvlaran/citysolid/metrics"
	"github.com/katalvlaran/citysolid/repair"
	"github.com/katalvlaran/citysolid/shell"
	"github.com/katalvlaran/citysolid/tolerance"
)

// Options configures a Converter.
type Options struct {
	Kernel   brep.Kernel
	Logger   logsink.Logger
	Recorder metrics.Recorder

	Level     repair.Level
	Precision tolerance.Mode
	// SewTolerance overrides the derived tolerance when positive.
	SewTolerance float64
	// Workers bounds ConvertAll; 0 uses GOMAXPROCS.
	Workers int

	ShellOptions []shell.Option
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions uses the polygonal kernel, standard precision and the
// standard shape fix level.
func DefaultOptions() Options {
	return Options{
		Recorder:  metrics.NoopRecorder{},
		Level:     repair.Standard,
		Precision: tolerance.Standard,
	}
}

// WithKernel sets the B-rep kernel. Panics on nil.
func WithKernel(k brep.Kernel) Option {
	if k == nil {
		panic("pipeline: WithKernel(nil)")
	}
	return func(o *Options) { o.Kernel = k }
}

// WithLogger sets the logger for every stage.
func WithLogger(l logsink.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithRecorder sets the metrics recorder. Panics on nil.
func WithRecorder(r metrics.Recorder) Option {
	if r == nil {
		panic("pipeline: WithRecorder(nil)")
	}
	return func(o *Options) { o.Recorder = r }
}

// WithLevel sets the shape fix level. Panics on an undefined level.
func WithLevel(l repair.Level) Option {
	if !l.Valid() {
		panic(fmt.Sprintf("pipeline: WithLevel(%d): undefined level", int(l)))
	}
	return func(o *Options) { o.Level = l }
}

// WithPrecision sets the precision mode used to derive tolerances.
func WithPrecision(m tolerance.Mode) Option {
	return func(o *Options) { o.Precision = m }
}

// WithSewTolerance fixes the sewing tolerance. Panics on negative values.
func WithSewTolerance(tol float64) Option {
	if tol < 0 {
		panic(fmt.Sprintf("pipeline: WithSewTolerance(%v): negative", tol))
	}
	return func(o *Options) { o.SewTolerance = tol }
}

// WithWorkers bounds ConvertAll concurrency. Panics on negative values.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("pipeline: WithWorkers(%d): negative", n))
	}
	return func(o *Options) { o.Workers = n }
}

// WithShellOptions appends options for the shell assembler.
func WithShellOptions(opts ...shell.Option) Option {
	return func(o *Options) { o.ShellOptions = append(o.ShellOptions, opts...) }
}

// WithConfig applies the conversion settings of cfg. The logger, log file
// and metrics are left to the caller; see Open.
func WithConfig(cfg *config.Config) Option {
	return func(o *Options) {
		if cfg == nil {
			return
		}
		o.Level = cfg.Level()
		o.Precision = cfg.Mode()
		o.SewTolerance = cfg.SewTolerance
		o.Workers = cfg.Workers
		if cfg.InvalidFaceRatio > 0 && cfg.InvalidFaceRatio <= 1 {
			o.ShellOptions = append(o.ShellOptions, shell.WithInvalidFaceRatio(cfg.InvalidFaceRatio))
		}
		if cfg.ResewRelaxMultiplier > 1 {
			o.ShellOptions = append(o.ShellOptions, shell.WithRelaxMultiplier(cfg.ResewRelaxMultiplier))
		}
	}
}
