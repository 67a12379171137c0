package providers

import (
	"luckypick/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(view string)
	IncCacheMisses(view string)
	ObservePersistenceDuration(duration time.Duration)
	IncStorageErrors(op string)
	AddGenerated(kind string, sets int)
	IncSaves(outcome string)
	SetSavedTotal(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	storageErrors       *prometheus.CounterVec
	generatedTotal      *prometheus.CounterVec
	savesTotal          *prometheus.CounterVec
	savedTotal          prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(view string) {
	m.cacheHits.WithLabelValues(view).Inc()
}

func (m *MetricsProvider) IncCacheMisses(view string) {
	m.cacheMisses.WithLabelValues(view).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStorageErrors(op string) {
	m.storageErrors.WithLabelValues(op).Inc()
}

func (m *MetricsProvider) AddGenerated(kind string, sets int) {
	m.generatedTotal.WithLabelValues(kind).Add(float64(sets))
}

func (m *MetricsProvider) IncSaves(outcome string) {
	m.savesTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) SetSavedTotal(count int) {
	m.savedTotal.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "luckypick_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "luckypick_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "luckypick_cache_hits_total",
			Help: "Cache hits by view",
		}, []string{"view"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "luckypick_cache_misses_total",
			Help: "Cache misses by view",
		}, []string{"view"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "luckypick_persistence_duration_seconds",
			Help:    "Duration of key writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		storageErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "luckypick_storage_errors_total",
			Help: "Storage failures by operation",
		}, []string{"op"}),

		generatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "luckypick_generated_sets_total",
			Help: "Generated number sets by lottery type",
		}, []string{"type"}),

		savesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "luckypick_saves_total",
			Help: "Save attempts by outcome",
		}, []string{"outcome"}),

		savedTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "luckypick_saved_results",
			Help: "Number of saved results",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits(_ string)                            {}
func (n *noopMetrics) IncCacheMisses(_ string)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncStorageErrors(_ string)                        {}
func (n *noopMetrics) AddGenerated(_ string, _ int)                     {}
func (n *noopMetrics) IncSaves(_ string)                                {}
func (n *noopMetrics) SetSavedTotal(_ int)                              {}
