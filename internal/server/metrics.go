package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Load outcomes, used as the "outcome" label.
const (
	outcomeOK       = "ok"
	outcomeDegraded = "degraded" // charted without driver names
	outcomeEmpty    = "empty"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

// Metrics counts pipeline loads on a private registry, so several servers
// can live in one process.
type Metrics struct {
	registry    *prometheus.Registry
	loads       *prometheus.CounterVec
	loadSeconds prometheus.Histogram
	responses   *prometheus.CounterVec
}

// NewMetrics registers the racepace collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "racepace",
			Name:      "loads_total",
			Help:      "Session loads by outcome.",
		}, []string{"outcome"}),
		loadSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "racepace",
			Name:      "load_duration_seconds",
			Help:      "Time to fetch and assemble one session.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 8),
		}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "racepace",
			Name:      "http_responses_total",
			Help:      "Responses served by status code class.",
		}, []string{"class"}),
	}
	m.registry.MustRegister(m.loads, m.loadSeconds, m.responses)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeLoad(outcome string, elapsed time.Duration) {
	m.loads.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		m.loadSeconds.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) observeStatus(code int) {
	class := "5xx"
	switch {
	case code < 300:
		class = "2xx"
	case code < 400:
		class = "3xx"
	case code < 500:
		class = "4xx"
	}
	m.responses.WithLabelValues(class).Inc()
}
