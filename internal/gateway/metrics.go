package gateway

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks gateway-level counters. Prometheus collectors back the
// /metrics endpoint; atomic counters back the /status snapshot so reading
// them never touches the Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
	tokens   prometheus.Counter

	completions  atomic.Int64
	messages     atomic.Int64
	errors       atomic.Int64
	totalTokens  atomic.Int64
	totalLatency atomic.Int64 // nanoseconds
}

// NewMetrics creates a Metrics with its own Prometheus registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "axtarchat",
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Chat requests handled, labeled by outcome.",
	}, []string{"outcome"})

	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "axtarchat",
		Subsystem: "gateway",
		Name:      "request_duration_seconds",
		Help:      "End-to-end chat request latency.",
		Buckets:   prometheus.DefBuckets,
	})

	tokens := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "axtarchat",
		Subsystem: "gateway",
		Name:      "completion_tokens_total",
		Help:      "Tokens consumed by completions.",
	})

	registry.MustRegister(requests, latency, tokens)

	return &Metrics{
		registry: registry,
		requests: requests,
		latency:  latency,
		tokens:   tokens,
	}
}

// Observe records one handled request with its outcome label.
func (m *Metrics) Observe(outcome string, latency time.Duration, tokens int) {
	m.requests.WithLabelValues(outcome).Inc()
	m.latency.Observe(latency.Seconds())

	m.messages.Add(1)
	if outcome == "ok" {
		m.completions.Add(1)
		m.tokens.Add(float64(tokens))
		m.totalTokens.Add(int64(tokens))
		m.totalLatency.Add(int64(latency))
	} else {
		m.errors.Add(1)
	}
}

// Handler returns the /metrics endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Snapshot returns a consistent point-in-time view of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	completions := m.completions.Load()
	snap := MetricsSnapshot{
		Completions: completions,
		Messages:    m.messages.Load(),
		Errors:      m.errors.Load(),
		TotalTokens: m.totalTokens.Load(),
	}
	if completions > 0 {
		snap.AvgLatency = time.Duration(m.totalLatency.Load() / completions)
	}
	return snap
}

// MetricsSnapshot is a serializable point-in-time metrics view.
type MetricsSnapshot struct {
	Completions int64         `json:"completions"`
	Messages    int64         `json:"messages"`
	Errors      int64         `json:"errors"`
	TotalTokens int64         `json:"total_tokens"`
	AvgLatency  time.Duration `json:"avg_latency_ns"`
}
