// Package observability bundles the service's Prometheus metrics and the
// handler that exposes them.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters shared by the provider adapter, the route
// cache, and the orchestrator.
type Metrics struct {
	gatherer prometheus.Gatherer

	// ProviderCalls counts outbound routing calls by outcome (ok, error)
	ProviderCalls *prometheus.CounterVec

	// CacheHits and CacheMisses track the route cache
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Assessments counts completed risk assessments by tier
	Assessments *prometheus.CounterVec
}

// NewMetrics registers the service metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	m := &Metrics{
		gatherer: gatherer,
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "route_provider_calls_total",
			Help: "Outbound routing provider calls, labeled by outcome.",
		}, []string{"outcome"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_cache_hits_total",
			Help: "Route cache lookups served without a provider call.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_cache_misses_total",
			Help: "Route cache lookups that required a provider call.",
		}),
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "risk_assessments_total",
			Help: "Completed flood risk assessments, labeled by tier.",
		}, []string{"tier"}),
	}

	reg.MustRegister(m.ProviderCalls, m.CacheHits, m.CacheMisses, m.Assessments)
	return m
}

// Handler returns the HTTP handler serving the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
