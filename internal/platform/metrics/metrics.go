package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Audit outcomes used as the "outcome" label.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeUnreachable  = "unreachable"
	OutcomeTimeout      = "timeout"
	OutcomeError        = "error"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	AuditsTotal   *prometheus.CounterVec
	AuditDuration prometheus.Histogram
	LinkChecks    *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers all collectors, plus the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		AuditsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aeo_audits_total",
			Help: "Completed audits by outcome.",
		}, []string{"outcome"}),
		AuditDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aeo_audit_duration_seconds",
			Help:    "Wall time of one audit, fetch included.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		}),
		LinkChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aeo_link_checks_total",
			Help: "Broken-link probes by result.",
		}, []string{"result"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.AuditsTotal,
		m.AuditDuration,
		m.LinkChecks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
