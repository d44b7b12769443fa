package service

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storeMutations  *prometheus.CounterVec
	filterDuration  prometheus.Observer
	cacheLatency    prometheus.Observer
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	refreshTotal    *prometheus.CounterVec
}

// NewMetricsService registers the core collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	storeMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_mutations_total",
		Help: "Event store operations by type and outcome",
	}, []string{"op", "outcome"})

	filterDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "filter_apply_duration_seconds",
		Help:    "Latency of filter evaluation over event collections",
		Buckets: prometheus.DefBuckets,
	})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	refreshTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_refresh_total",
		Help: "Owner directory refresh attempts by outcome",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeMutations, filterDuration, cacheLatency, cacheHits, cacheMisses, refreshTotal, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storeMutations:  storeMutations,
		filterDuration:  filterDuration,
		cacheLatency:    cacheLatency,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		refreshTotal:    refreshTotal,
	}
}

// Handler serves the Prometheus exposition endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// RecordHTTPRequest observes a completed request.
func (s *MetricsService) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	s.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordStoreMutation counts one event store operation.
func (s *MetricsService) RecordStoreMutation(op string, ok bool) {
	s.storeMutations.WithLabelValues(op, outcome(ok)).Inc()
}

// ObserveFilter records the latency of one filter evaluation.
func (s *MetricsService) ObserveFilter(duration time.Duration) {
	s.filterDuration.Observe(duration.Seconds())
}

// RecordCacheOperation tracks a cache lookup outcome.
func (s *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	s.cacheLatency.Observe(duration.Seconds())
	if hit {
		s.cacheHits.Inc()
		return
	}
	s.cacheMisses.Inc()
}

// RecordDirectoryRefresh counts a roster refresh attempt.
func (s *MetricsService) RecordDirectoryRefresh(ok bool) {
	s.refreshTotal.WithLabelValues(outcome(ok)).Inc()
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
