// Package metrics exposes Prometheus instrumentation for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for rate limiter outcomes.
const (
	RateLimitAllowed  = "allowed"
	RateLimitRejected = "rejected"
	RateLimitError    = "error"
)

// unmatchedRoute labels requests that did not match a registered pattern, so
// arbitrary paths cannot inflate label cardinality.
const unmatchedRoute = "unmatched"

// HTTP holds the collectors recorded by the HTTP middleware.
type HTTP struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	rateLimit *prometheus.CounterVec
}

// NewHTTP creates the HTTP collectors on a dedicated registry that also carries
// the Go runtime and process collectors.
func NewHTTP() *HTTP {
	reg := prometheus.NewRegistry()
	m := &HTTP{
		registry: reg,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		rateLimit: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_decisions_total",
				Help: "Rate limiter decisions on auth routes",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(
		m.requests,
		m.duration,
		m.rateLimit,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing these collectors.
func (m *HTTP) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *HTTP) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one completed request. route is the matched mux pattern.
func (m *HTTP) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = unmatchedRoute
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveRateLimit records a limiter outcome.
func (m *HTTP) ObserveRateLimit(result string) {
	if m == nil {
		return
	}
	m.rateLimit.WithLabelValues(result).Inc()
}
