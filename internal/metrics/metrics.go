// Package metrics exposes Prometheus collectors for scenario runs and
// session lifecycle.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector bundles the service's Prometheus metrics.
type Collector struct {
	RunsTotal      prometheus.Counter
	RunFailures    *prometheus.CounterVec
	RunDuration    prometheus.Histogram
	ActiveSessions prometheus.Gauge
}

// NewCollector registers the collectors against reg, falling back to the
// default registerer when reg is nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scenario_runs_total",
			Help: "Cumulative number of scenario runs recorded.",
		}),
		RunFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenario_run_failures_total",
			Help: "Scenario runs aborted before being recorded, by error code.",
		}, []string{"code"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scenario_run_duration_seconds",
			Help:    "Wall time of one scenario run, engine call included.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Number of live user sessions.",
		}),
	}

	for _, col := range []prometheus.Collector{c.RunsTotal, c.RunFailures, c.RunDuration, c.ActiveSessions} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}
