package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the Prometheus counters and gauges for one generator run.
// A batch job has no scrape endpoint, so the metrics live on a private
// registry and are pushed to a Pushgateway when the run ends.
type Metrics struct {
	MunicipalitiesProcessed prometheus.Counter
	FilesWritten            prometheus.Counter
	QueryFailures           *prometheus.CounterVec // labels: query={municipalities,deposits,works}
	NotifyFailures          prometheus.Counter

	RunDuration prometheus.Gauge
	LastSuccess prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates all generator metrics and registers them with a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MunicipalitiesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eiel_forms",
			Name:      "municipalities_processed_total",
			Help:      "Municipalities whose two forms were written.",
		}),
		FilesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eiel_forms",
			Name:      "files_written_total",
			Help:      "HTML form files written to the output directory.",
		}),
		QueryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eiel_forms",
			Name:      "query_failures_total",
			Help:      "Database queries that failed and fell back to an empty result.",
		}, []string{"query"}),
		NotifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eiel_forms",
			Name:      "notify_failures_total",
			Help:      "Generation events that could not be published.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eiel_forms",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last generator run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eiel_forms",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time at which the last run completed without a fatal error.",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.MunicipalitiesProcessed,
		m.FilesWritten,
		m.QueryFailures,
		m.NotifyFailures,
		m.RunDuration,
		m.LastSuccess,
	)

	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Push sends every registered metric to the Pushgateway at url under the given job name.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
