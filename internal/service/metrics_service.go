package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and the
// generation engine.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	generationDuration prometheus.Observer
	generationCoverage prometheus.Histogram
	generationTotal    prometheus.Counter
	availabilityHits   prometheus.Counter
	availabilityMisses prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
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

	generationDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_generation_duration_seconds",
		Help:    "Duration of timetable generation runs",
		Buckets: prometheus.DefBuckets,
	})

	generationCoverage := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_generation_coverage_percent",
		Help:    "Coverage percentage achieved by generation runs",
		Buckets: []float64{25, 50, 75, 90, 95, 99, 100},
	})

	generationTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_generations_total",
		Help: "Total timetable generation runs",
	})

	availabilityHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "availability_cache_hits_total",
		Help: "Availability oracle memo hits",
	})

	availabilityMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "availability_cache_misses_total",
		Help: "Availability oracle memo misses",
	})

	registry.MustRegister(requestDuration, requestTotal, generationDuration, generationCoverage, generationTotal, availabilityHits, availabilityMisses)

	return &MetricsService{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		generationDuration: generationDuration,
		generationCoverage: generationCoverage,
		generationTotal:    generationTotal,
		availabilityHits:   availabilityHits,
		availabilityMisses: availabilityMisses,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveGeneration records one generation run.
func (s *MetricsService) ObserveGeneration(duration time.Duration, coverage int) {
	s.generationTotal.Inc()
	s.generationDuration.Observe(duration.Seconds())
	s.generationCoverage.Observe(float64(coverage))
}

// ObserveAvailabilityCache records memo effectiveness for one run.
func (s *MetricsService) ObserveAvailabilityCache(hits, misses int) {
	s.availabilityHits.Add(float64(hits))
	s.availabilityMisses.Add(float64(misses))
}
