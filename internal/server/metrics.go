package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sant0-9/mindppt/internal/apierr"
)

// Metrics holds the Prometheus collectors for one server. Each instance owns
// its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	LLMCalls    *prometheus.CounterVec
	LLMDuration *prometheus.HistogramVec

	BreakerState *prometheus.GaugeVec
}

// NewMetrics creates and registers every collector under namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		LLMCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_calls_total",
				Help:      "Total number of model calls by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		LLMDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_call_duration_seconds",
				Help:      "Model call duration in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
			},
			[]string{"op"},
		),
		BreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "llm_breaker_state",
				Help:      "1 while the model circuit breaker is in the labelled state",
			},
			[]string{"name", "state"},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.LLMCalls,
		m.LLMDuration,
		m.BreakerState,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveLLM records one model call. It matches pipeline.Observer.
func (m *Metrics) ObserveLLM(op string, d time.Duration, err error) {
	m.LLMCalls.WithLabelValues(op, outcome(err)).Inc()
	m.LLMDuration.WithLabelValues(op).Observe(d.Seconds())
}

// BreakerChanged records a circuit breaker transition. It matches the
// llm.NewGuard callback.
func (m *Metrics) BreakerChanged(name, from, to string) {
	m.BreakerState.WithLabelValues(name, from).Set(0)
	m.BreakerState.WithLabelValues(name, to).Set(1)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return apierr.Classify(err, "").Kind.String()
}
