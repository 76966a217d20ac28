package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "citysolid"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	faceLevels    *prom.CounterVec
	shellOutcomes *prom.CounterVec
	solidOutcomes *prom.CounterVec
	escalations   *prom.CounterVec
	buildDuration prom.Histogram
}

// NewPrometheusRecorder constructs the metrics and registers them on reg
// (a fresh registry when nil). An empty namespace uses DefaultNamespace.
// Registering twice on the same registry panics, as prom.MustRegister does.
func NewPrometheusRecorder(reg *prom.Registry, namespace string) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	pr := &PrometheusRecorder{
		faceLevels: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "face_builds_total",
			Help:      "Face builds by the ladder level that succeeded",
		}, []string{"level"}),
		shellOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "shell_builds_total",
			Help:      "Shell assemblies by outcome",
		}, []string{"outcome"}),
		solidOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "solid_builds_total",
			Help:      "Solid builds by resulting shape kind",
		}, []string{"outcome"}),
		escalations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "escalation_attempts_total",
			Help:      "Escalation strategy attempts by level, strategy and result",
		}, []string{"level", "strategy", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "building_duration_seconds",
			Help:      "Wall time of one building conversion",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.faceLevels, pr.shellOutcomes, pr.solidOutcomes, pr.escalations, pr.buildDuration)
	return pr
}

func (p *PrometheusRecorder) IncFaceLevel(level string) {
	if p == nil || p.faceLevels == nil {
		return
	}
	p.faceLevels.WithLabelValues(level).Inc()
}

func (p *PrometheusRecorder) IncShellOutcome(outcome string) {
	if p == nil || p.shellOutcomes == nil {
		return
	}
	p.shellOutcomes.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncSolidOutcome(outcome string) {
	if p == nil || p.solidOutcomes == nil {
		return
	}
	p.solidOutcomes.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncEscalation(level, strategy string, success bool) {
	if p == nil || p.escalations == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.escalations.WithLabelValues(level, strategy, res).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}
