package testutil

import (
	"errors"
	"sync"
	"time"

	"prayertrack/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasLevel reports whether any entry was recorded at the given level.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// calls.
type MockMetrics struct {
	mu              sync.Mutex
	Recorded        map[string]int
	Declined        int
	SyncRuns        map[string]int
	Merges          int
	StorageErrors   map[string]int
	CacheHits       int
	CacheMisses     int
	DegradedSignals []bool
}

func (m *MockMetrics) IncMomentsRecorded(platform string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Recorded == nil {
		m.Recorded = map[string]int{}
	}
	m.Recorded[platform]++
}

func (m *MockMetrics) IncMomentsDeclined() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Declined++
}

func (m *MockMetrics) IncSyncRuns(trigger string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SyncRuns == nil {
		m.SyncRuns = map[string]int{}
	}
	m.SyncRuns[trigger]++
}

// SyncRunCount reads a trigger's run counter under the lock, for
// assertions racing a scheduler goroutine.
func (m *MockMetrics) SyncRunCount(trigger string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SyncRuns[trigger]
}

func (m *MockMetrics) IncSyncMerges() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Merges++
}

func (m *MockMetrics) IncStorageErrors(backend string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StorageErrors == nil {
		m.StorageErrors = map[string]int{}
	}
	m.StorageErrors[backend]++
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) SetPersistenceDegraded(degraded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DegradedSignals = append(m.DegradedSignals, degraded)
}

func (m *MockMetrics) ObserveReconcileDuration(_ time.Duration) {}

// MockCache is a map-backed providers.CacheProviderInterface without
// TTL or size limits.
type MockCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func (c *MockCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.entries[key]
	return val, ok
}

func (c *MockCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string][]byte{}
	}
	c.entries[key] = append([]byte(nil), value...)
}

func (c *MockCache) Del(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *MockCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

// MockCompressor is a passthrough codec with optional injected errors.
type MockCompressor struct {
	CompressErr   error
	DecompressErr error
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressErr != nil {
		return nil, m.CompressErr
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressErr != nil {
		return nil, m.DecompressErr
	}
	return val, nil
}

func (m *MockCompressor) Close() {}

// ErrBoom is a reusable sentinel for failure-injection tests.
var ErrBoom = errors.New("boom")
