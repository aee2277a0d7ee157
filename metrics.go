package geoguess

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the solver. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	computeDuration prometheus.Histogram
	searches        *prometheus.CounterVec
	iterations      prometheus.Histogram
	expansions      prometheus.Counter
	candidates      prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates the solver metrics on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geoguess_distance_cache_hits_total",
			Help: "Distance lookups answered from the pair cache",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geoguess_distance_cache_misses_total",
			Help: "Distance lookups that required a boundary scan",
		}),
		computeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "geoguess_distance_compute_seconds",
			Help:    "Time spent computing the minimum distance between two boundaries",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geoguess_searches_total",
			Help: "Candidate searches by outcome",
		}, []string{"outcome"}),
		iterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "geoguess_search_iterations",
			Help:    "Margin values evaluated per search",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),
		expansions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geoguess_margin_expansions_total",
			Help: "Times the search margin was widened",
		}),
		candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "geoguess_search_candidates",
			Help:    "Candidates returned per search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		registry: registry,
	}

	registry.MustRegister(
		m.cacheHits,
		m.cacheMisses,
		m.computeDuration,
		m.searches,
		m.iterations,
		m.expansions,
		m.candidates,
	)
	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) cacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

func (m *Metrics) cacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

func (m *Metrics) observeCompute(d time.Duration) {
	if m != nil {
		m.computeDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) observeExpansion() {
	if m != nil {
		m.expansions.Inc()
	}
}

func (m *Metrics) observeSearch(r Result) {
	if m == nil {
		return
	}
	outcome := "found"
	if r.Exhausted() {
		outcome = "exhausted"
	}
	m.searches.WithLabelValues(outcome).Inc()
	m.iterations.Observe(float64(r.Iterations))
	m.candidates.Observe(float64(len(r.Candidates)))
}
