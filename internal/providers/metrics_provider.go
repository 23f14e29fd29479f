package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"prayertrack/internal/structures"
)

type MetricsProviderInterface interface {
	IncMomentsRecorded(platform string)
	IncMomentsDeclined()
	IncSyncRuns(trigger string)
	IncSyncMerges()
	IncStorageErrors(backend string)
	IncCacheHits()
	IncCacheMisses()
	SetPersistenceDegraded(degraded bool)
	ObserveReconcileDuration(duration time.Duration)
}

type MetricsProvider struct {
	momentsRecorded     *prometheus.CounterVec
	momentsDeclined     prometheus.Counter
	syncRuns            *prometheus.CounterVec
	syncMerges          prometheus.Counter
	storageErrors       *prometheus.CounterVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDegraded prometheus.Gauge
	reconcileDuration   prometheus.Histogram
}

func (m *MetricsProvider) IncMomentsRecorded(platform string) {
	m.momentsRecorded.WithLabelValues(platform).Inc()
}

func (m *MetricsProvider) IncMomentsDeclined() {
	m.momentsDeclined.Inc()
}

func (m *MetricsProvider) IncSyncRuns(trigger string) {
	m.syncRuns.WithLabelValues(trigger).Inc()
}

func (m *MetricsProvider) IncSyncMerges() {
	m.syncMerges.Inc()
}

func (m *MetricsProvider) IncStorageErrors(backend string) {
	m.storageErrors.WithLabelValues(backend).Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) SetPersistenceDegraded(degraded bool) {
	if degraded {
		m.persistenceDegraded.Set(1)
	} else {
		m.persistenceDegraded.Set(0)
	}
}

func (m *MetricsProvider) ObserveReconcileDuration(duration time.Duration) {
	m.reconcileDuration.Observe(duration.Seconds())
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		momentsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prayertrack_moments_recorded_total",
			Help: "Total number of prayer moments recorded",
		}, []string{"platform"}),

		momentsDeclined: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prayertrack_moments_declined_total",
			Help: "Total number of record attempts declined by the daily cap",
		}),

		syncRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prayertrack_sync_runs_total",
			Help: "Total number of reconciliation runs per trigger",
		}, []string{"trigger"}),

		syncMerges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prayertrack_sync_merges_total",
			Help: "Total number of reconciliations that required a merge",
		}),

		storageErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prayertrack_storage_errors_total",
			Help: "Total number of swallowed storage errors per backend",
		}, []string{"backend"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prayertrack_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prayertrack_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDegraded: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "prayertrack_persistence_degraded",
			Help: "1 when a storage backend is unavailable and the app runs degraded",
		}),

		reconcileDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "prayertrack_reconcile_duration_seconds",
			Help:    "Duration of store reconciliation runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncMomentsRecorded(_ string)              {}
func (n *noopMetrics) IncMomentsDeclined()                      {}
func (n *noopMetrics) IncSyncRuns(_ string)                     {}
func (n *noopMetrics) IncSyncMerges()                           {}
func (n *noopMetrics) IncStorageErrors(_ string)                {}
func (n *noopMetrics) IncCacheHits()                            {}
func (n *noopMetrics) IncCacheMisses()                          {}
func (n *noopMetrics) SetPersistenceDegraded(_ bool)            {}
func (n *noopMetrics) ObserveReconcileDuration(_ time.Duration) {}
