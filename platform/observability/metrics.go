// Package observability exposes Prometheus collectors for the service.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors recorded by the profile pipeline and the HTTP layer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry          *prometheus.Registry
	providerRequests  *prometheus.CounterVec
	providerDuration  *prometheus.HistogramVec
	geocodeRequests   *prometheus.CounterVec
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Metric provider runs by provider and outcome.",
		}, []string{"provider", "outcome"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "provider_duration_seconds",
			Help:    "Metric provider latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		geocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geocode_requests_total",
			Help: "Geocoding lookups by outcome.",
		}, []string{"outcome"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.providerRequests,
		m.providerDuration,
		m.geocodeRequests,
		m.httpRequestsTotal,
		m.httpDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveProvider records one provider run.
func (m *Metrics) ObserveProvider(provider, outcome string, latency time.Duration) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(provider, outcome).Inc()
	m.providerDuration.WithLabelValues(provider).Observe(latency.Seconds())
}

// ObserveGeocode records one geocoding lookup.
func (m *Metrics) ObserveGeocode(outcome string) {
	if m == nil {
		return
	}
	m.geocodeRequests.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records a served request.
func (m *Metrics) ObserveHTTP(route string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(latency.Seconds())
}

// ProviderCount returns the provider_requests_total value for a label pair.
func (m *Metrics) ProviderCount(provider, outcome string) float64 {
	if m == nil {
		return 0
	}
	return counterValue(m.providerRequests.WithLabelValues(provider, outcome))
}

// GeocodeCount returns the geocode_requests_total value for an outcome.
func (m *Metrics) GeocodeCount(outcome string) float64 {
	if m == nil {
		return 0
	}
	return counterValue(m.geocodeRequests.WithLabelValues(outcome))
}
