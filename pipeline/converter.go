package pipeline

import (
	"context"
	"errors"
	"io"
	"runtime"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/citysolid/brep"
	"github.com/katalvlaran/citysolid/config"
	"github.com/katalvlaran/citysolid/face"
	"github.com/katalvlaran/citysolid/logsink"
	"github.com/katalvlaran/citysolid/metrics"
	"github.com/katalvlaran/citysolid/solid"
	"github.com/katalvlaran/citysolid/tolerance"
)

// Converter runs buildings through the face and solid builders.
type Converter struct {
	faces  *face.Builder
	solids *solid.Builder
	opts   Options

	closers []io.Closer
}

// NewConverter returns a Converter configured by opts.
func NewConverter(opts ...Option) *Converter {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Kernel == nil {
		o.Kernel = brep.NewPolygonal()
	}
	return &Converter{
		faces: face.NewBuilder(o.Kernel, face.WithLogger(o.Logger), face.WithRecorder(o.Recorder)),
		solids: solid.NewBuilder(o.Kernel,
			solid.WithLogger(o.Logger),
			solid.WithRecorder(o.Recorder),
			solid.WithShellOptions(o.ShellOptions...),
		),
		opts: o,
	}
}

// Open builds a Converter from cfg: a rotating log file when cfg.LogFile is
// set (else the process-wide sink), and Prometheus metrics registered on reg
// when reg is not nil. Close releases the log file.
func Open(cfg *config.Config, reg *prom.Registry, opts ...Option) (*Converter, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var (
		sink    logsink.Sink
		closers []io.Closer
	)
	if cfg.LogFile != "" {
		f := logsink.NewFile(cfg.LogFile)
		sink = f
		closers = append(closers, f)
	}
	base := []Option{WithConfig(cfg), WithLogger(logsink.New(sink, cfg.Debug))}
	if reg != nil {
		base = append(base, WithRecorder(metrics.NewPrometheusRecorder(reg, cfg.MetricsNamespace)))
	}
	c := NewConverter(append(base, opts...)...)
	c.closers = closers
	return c, nil
}

// Close releases resources acquired by Open.
func (c *Converter) Close() error {
	var errs []error
	for _, cl := range c.closers {
		errs = append(errs, cl.Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}

// Tolerance returns the tolerance used for b.
func (c *Converter) Tolerance(b Building) float64 {
	if c.opts.SewTolerance > 0 {
		return c.opts.SewTolerance
	}
	return tolerance.FromRings(c.opts.Precision, b.Rings()...)
}

// Convert runs one building. It never panics and never fails: a failed
// building has Solid.Kind == solid.KindNone.
func (c *Converter) Convert(b Building) Result {
	start := time.Now()
	log := c.opts.Logger
	id := b.ID
	if id == "" {
		id = uuid.NewString()
	}
	res := Result{ID: id}

	tol := c.Tolerance(b)
	log.Printf("building %s: %d exterior polygons, %d interiors, tolerance %.6g",
		id, len(b.Exterior), len(b.Interiors), tol)

	exterior := c.buildFaces(b.Exterior, tol, &res.PolygonsFailed)
	res.Faces = len(exterior)

	var interiors [][]*brep.Face
	for _, group := range b.Interiors {
		var failed int
		if fs := c.buildFaces(group, tol, &failed); len(fs) > 0 {
			interiors = append(interiors, fs)
		}
	}

	res.Solid = c.solids.Build(solid.Input{
		Exterior:  exterior,
		Interiors: interiors,
		Tolerance: tol,
		Precision: c.opts.Precision,
		Level:     c.opts.Level,
	})
	res.Duration = time.Since(start)
	c.opts.Recorder.ObserveBuildDuration(res.Duration)
	log.Printf("building %s: %s in %s", id, res.Solid.Kind, res.Duration)
	return res
}

// buildFaces builds every polygon; polygons with no face are counted in failed.
func (c *Converter) buildFaces(polys []Polygon, tol float64, failed *int) []*brep.Face {
	var out []*brep.Face
	for _, p := range polys {
		fs := c.faces.Build(p.Exterior, p.Holes, tol)
		if len(fs) == 0 {
			*failed++
			continue
		}
		out = append(out, fs...)
	}
	return out
}

// ConvertAll converts buildings concurrently. Results keep the input order.
// When ctx is cancelled no new building is started and ctx's error is
// returned with the results finished so far; unstarted entries are zero.
func (c *Converter) ConvertAll(ctx context.Context, buildings []Building) ([]Result, error) {
	workers := c.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(buildings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range buildings {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.Convert(buildings[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
