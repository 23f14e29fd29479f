package providers

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prayertrack/internal/structures"
)

func TestNewMetricsProviderDisabledIsNoop(t *testing.T) {
	conf := &structures.Config{}
	m := NewMetricsProvider(conf)

	// Every method must be safe on the noop implementation.
	m.IncMomentsRecorded("web")
	m.IncMomentsDeclined()
	m.IncSyncRuns("manual")
	m.IncSyncMerges()
	m.IncStorageErrors("primary")
	m.IncCacheHits()
	m.IncCacheMisses()
	m.SetPersistenceDegraded(true)
	m.ObserveReconcileDuration(time.Second)
}

func TestNewMetricsProviderCounters(t *testing.T) {
	// The default prometheus registry forbids duplicate registration, so
	// the real provider is constructed exactly once across the package.
	conf := &structures.Config{}
	conf.Metrics.Enabled = true
	m := NewMetricsProvider(conf)

	provider, ok := m.(*MetricsProvider)
	require.True(t, ok)

	m.IncMomentsRecorded("web")
	m.IncMomentsRecorded("web")
	m.IncMomentsRecorded("ios")
	m.IncMomentsDeclined()
	m.IncSyncRuns("start")
	m.IncSyncMerges()
	m.IncStorageErrors("primary")
	m.IncCacheHits()
	m.IncCacheMisses()
	m.SetPersistenceDegraded(true)
	m.ObserveReconcileDuration(50 * time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(provider.momentsRecorded.WithLabelValues("web")))
	assert.Equal(t, float64(1), testutil.ToFloat64(provider.momentsRecorded.WithLabelValues("ios")))
	assert.Equal(t, float64(1), testutil.ToFloat64(provider.momentsDeclined))
	assert.Equal(t, float64(1), testutil.ToFloat64(provider.syncRuns.WithLabelValues("start")))
	assert.Equal(t, float64(1), testutil.ToFloat64(provider.syncMerges))
	assert.Equal(t, float64(1), testutil.ToFloat64(provider.storageErrors.WithLabelValues("primary")))
	assert.Equal(t, float64(1), testutil.ToFloat64(provider.cacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(provider.cacheMisses))
	assert.Equal(t, float64(1), testutil.ToFloat64(provider.persistenceDegraded))

	m.SetPersistenceDegraded(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(provider.persistenceDegraded))
}
