package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all the application metrics
type Metrics struct {
	// HTTP request metrics
	HTTPRequestTotal    *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Dataset fetch metrics
	StoreFetchTotal    *prometheus.CounterVec
	StoreFetchDuration *prometheus.HistogramVec

	// Response cache metrics
	CacheEventTotal *prometheus.CounterVec

	// Ranking metrics
	RankDuration     *prometheus.HistogramVec
	SearchCandidates prometheus.Histogram
}

// Global metrics instance with mutex for thread safety
var (
	globalMetrics *Metrics
	metricsMutex  sync.Mutex
)

// NewMetrics creates a new Metrics instance with all required metrics
func NewMetrics() *Metrics {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()

	// Return existing instance if already created
	if globalMetrics != nil {
		return globalMetrics
	}

	m := &Metrics{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),

		StoreFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "store_fetch_total",
			Help: "Total number of dataset document fetches",
		}, []string{"doc", "outcome"}),

		StoreFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "store_fetch_duration_seconds",
			Help:    "Dataset document fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"doc", "outcome"}),

		CacheEventTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "response_cache_events_total",
			Help: "Total number of response cache hits, misses and bypasses",
		}, []string{"event"}),

		RankDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rank_duration_seconds",
			Help:    "Relevance ranking duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),

		SearchCandidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "search_candidate_pool_size",
			Help:    "Number of deduplicated candidates considered per search",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 2500},
		}),
	}

	// Register metrics with the default registry
	registerMetrics(m)

	// Store as global instance
	globalMetrics = m

	return m
}

// registerMetrics registers all metrics with the default registry
func registerMetrics(m *Metrics) {
	// Try to register each metric, ignore if already registered
	registerOrGet(m.HTTPRequestTotal)
	registerOrGet(m.HTTPRequestDuration)
	registerOrGet(m.StoreFetchTotal)
	registerOrGet(m.StoreFetchDuration)
	registerOrGet(m.CacheEventTotal)
	registerOrGet(m.RankDuration)
	registerOrGet(m.SearchCandidates)
}

// registerOrGet tries to register a metric, returns the existing one if already registered
func registerOrGet(c prometheus.Collector) prometheus.Collector {
	if err := prometheus.Register(c); err != nil {
		// If already registered, return the existing collector
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
	}
	return c
}
