// Package metrics records benchmark runs as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cwbudde/algo-bench/bench"
)

const namespace = "ewbench"

// Metrics holds the collectors of one process. It satisfies suite.Observer.
type Metrics struct {
	registry *prometheus.Registry

	RunDuration   *prometheus.HistogramVec
	RunsTotal     *prometheus.CounterVec
	FailuresTotal *prometheus.CounterVec
	ElementsTotal prometheus.Counter
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the timed transform loop in seconds",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 16),
		},
		[]string{"case", "transform", "strategy", "impl"},
	)

	m.RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of measured runs",
		},
		[]string{"case"},
	)

	m.FailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Total number of failed cases by error kind",
		},
		[]string{"case", "kind"},
	)

	m.ElementsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_total",
			Help:      "Total number of elements transformed in measured runs",
		},
	)

	m.registry.MustRegister(m.RunDuration, m.RunsTotal, m.FailuresTotal, m.ElementsTotal)

	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one measured run.
func (m *Metrics) Observe(caseName string, res bench.Result) {
	m.RunDuration.WithLabelValues(caseName, res.Transform, res.Strategy.String(), res.Impl).Observe(res.Seconds())
	m.RunsTotal.WithLabelValues(caseName).Inc()
	m.ElementsTotal.Add(float64(res.Size))
}

// Failed records a failed case.
func (m *Metrics) Failed(caseName string, err error) {
	kind := bench.Kind(err)
	if kind == "" {
		kind = "other"
	}
	m.FailuresTotal.WithLabelValues(caseName, kind).Inc()
}

// WriteTextfile writes the metrics in the text exposition format for the
// node exporter's textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}
	return nil
}
