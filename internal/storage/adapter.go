package storage

import (
	"sync"

	"go.uber.org/atomic"

	"prayertrack/internal/providers"
)

// MigrationSentinelKey marks a completed fallback→primary migration in
// the primary store. Double-underscore keys never migrate themselves.
const MigrationSentinelKey = "__migration_done__"

// Adapter unifies the primary and fallback backends behind one logical
// key-value API. Writes commit to the fallback first and reach the
// primary through a tracked write-behind goroutine; reads consult an
// in-memory overlay of the newest written values before either
// backend, so a read always observes the latest write of this process
// even while a primary write-behind is still in flight. Backend
// unavailability degrades service instead of failing the caller.
type Adapter struct {
	primary  Backend
	fallback Backend
	cache    providers.CacheProviderInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface

	ready        atomic.Bool
	usingPrimary atomic.Bool
	degraded     atomic.Bool

	// overlay holds the latest value written per key. Unlike the
	// optional read cache it is never disabled and never expires; it
	// only shrinks through Remove and Clear.
	overlayMu sync.RWMutex
	overlay   map[string]string

	keyLocks sync.Map // key -> *sync.Mutex, serializes primary writes per key

	initMu sync.Mutex
	wg     sync.WaitGroup
}

func NewAdapter(primary *SQLiteStore, fallback *FileStore, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Adapter {
	return &Adapter{
		primary:  primary,
		fallback: fallback,
		cache:    cache,
		logger:   logger,
		metrics:  metrics,
		overlay:  map[string]string{},
	}
}

// Initialize probes both backends and runs the one-time fallback→
// primary migration. Repeat calls are no-ops. A failed primary probe
// is not an error: the adapter comes up ready on the fallback alone
// and reports degraded persistence.
func (a *Adapter) Initialize() error {
	a.initMu.Lock()
	defer a.initMu.Unlock()

	if a.ready.Load() {
		return nil
	}

	if err := a.fallback.Probe(); err != nil {
		a.logger.Errorf(providers.TypeStore, "Fallback store unavailable: %s", err)
		a.metrics.IncStorageErrors(a.fallback.Name())
		a.markDegraded()
	}

	if err := a.primary.Probe(); err != nil {
		a.logger.Warnf(providers.TypeStore, "Primary store unavailable, continuing fallback-only: %s", err)
		a.metrics.IncStorageErrors(a.primary.Name())
		a.markDegraded()
		a.ready.Store(true)
		return nil
	}

	a.usingPrimary.Store(true)
	a.migrate()
	a.ready.Store(true)
	return nil
}

// migrate copies every fallback key into the primary store once,
// guarded by a sentinel value in the primary. Individual copy failures
// are logged and skipped; migration is not retried later.
func (a *Adapter) migrate() {
	if _, ok, err := a.primary.Get(MigrationSentinelKey); err == nil && ok {
		return
	}

	keys, err := a.fallback.Keys()
	if err != nil {
		a.logger.Errorf(providers.TypeStore, "Migration aborted, cannot list fallback keys: %s", err)
		a.metrics.IncStorageErrors(a.fallback.Name())
		return
	}

	migrated := 0
	for _, key := range keys {
		if len(key) >= 2 && key[:2] == "__" {
			continue
		}
		value, ok, err := a.fallback.Get(key)
		if err != nil || !ok {
			continue
		}
		if err := a.primary.Set(key, value); err != nil {
			a.logger.Errorf(providers.TypeStore, "Migration of %s failed: %s", key, err)
			a.metrics.IncStorageErrors(a.primary.Name())
			continue
		}
		migrated++
	}

	if err := a.primary.Set(MigrationSentinelKey, "true"); err != nil {
		a.logger.Errorf(providers.TypeStore, "Cannot write migration sentinel: %s", err)
		a.metrics.IncStorageErrors(a.primary.Name())
		return
	}

	if migrated > 0 {
		a.logger.Infof(providers.TypeStore, "Migrated %d keys from fallback to primary", migrated)
	}
}

// Read returns the stored value for key: overlay first, then cache,
// then primary, then fallback. Primary read errors are swallowed and
// treated as a miss.
func (a *Adapter) Read(key string) (string, bool) {
	a.overlayMu.RLock()
	if value, ok := a.overlay[key]; ok {
		a.overlayMu.RUnlock()
		return value, true
	}
	a.overlayMu.RUnlock()

	if value, ok := a.cache.Get(key); ok {
		a.metrics.IncCacheHits()
		return string(value), true
	}
	a.metrics.IncCacheMisses()

	if a.usingPrimary.Load() {
		if value, ok, err := a.primary.Get(key); err == nil && ok {
			a.cache.Set(key, []byte(value))
			return value, true
		} else if err != nil {
			a.logger.Warnf(providers.TypeStore, "Primary read of %s failed: %s", key, err)
			a.metrics.IncStorageErrors(a.primary.Name())
		}
	}

	value, ok, err := a.fallback.Get(key)
	if err != nil {
		a.logger.Warnf(providers.TypeStore, "Fallback read of %s failed: %s", key, err)
		a.metrics.IncStorageErrors(a.fallback.Name())
		return "", false
	}
	if ok {
		a.cache.Set(key, []byte(value))
	}
	return value, ok
}

// Write records the value in the overlay and commits it to the
// fallback synchronously so a read in the same tick sees the new
// value, then hands the primary copy to a tracked background write.
// The write is "at least committed to fallback": a primary failure is
// logged, never surfaced.
func (a *Adapter) Write(key, value string) {
	a.overlayMu.Lock()
	a.overlay[key] = value
	a.overlayMu.Unlock()

	if err := a.fallback.Set(key, value); err != nil {
		a.logger.Errorf(providers.TypeStore, "Fallback write of %s failed: %s", key, err)
		a.metrics.IncStorageErrors(a.fallback.Name())
		a.markDegraded()
	}

	a.cache.Set(key, []byte(value))

	if !a.usingPrimary.Load() {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.flushKey(key)
	}()
}

func (a *Adapter) keyLock(key string) *sync.Mutex {
	lock, _ := a.keyLocks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// flushKey copies the newest overlay value for key into the primary.
// Flushes are serialized per key and always re-read the overlay under
// the lock, so an older in-flight write can never clobber a newer one.
// A key removed since the write was queued is skipped.
func (a *Adapter) flushKey(key string) {
	mu := a.keyLock(key)
	mu.Lock()
	defer mu.Unlock()

	a.overlayMu.RLock()
	value, ok := a.overlay[key]
	a.overlayMu.RUnlock()
	if !ok {
		return
	}

	if err := a.primary.Set(key, value); err != nil {
		a.logger.Errorf(providers.TypeStore, "Primary write of %s failed: %s", key, err)
		a.metrics.IncStorageErrors(a.primary.Name())
	}
}

// Remove deletes key from both backends. A key absent on either side
// is not an error.
func (a *Adapter) Remove(key string) {
	a.overlayMu.Lock()
	delete(a.overlay, key)
	a.overlayMu.Unlock()

	a.cache.Del(key)

	if err := a.fallback.Delete(key); err != nil {
		a.logger.Warnf(providers.TypeStore, "Fallback delete of %s failed: %s", key, err)
		a.metrics.IncStorageErrors(a.fallback.Name())
	}
	if a.usingPrimary.Load() {
		// Taking the key lock fences out any write-behind still holding
		// the pre-removal value.
		mu := a.keyLock(key)
		mu.Lock()
		err := a.primary.Delete(key)
		mu.Unlock()
		if err != nil {
			a.logger.Warnf(providers.TypeStore, "Primary delete of %s failed: %s", key, err)
			a.metrics.IncStorageErrors(a.primary.Name())
		}
	}
}

// Clear wipes the overlay, both backends and the cache. Used by the
// global reset.
func (a *Adapter) Clear() {
	a.overlayMu.Lock()
	a.overlay = map[string]string{}
	a.overlayMu.Unlock()

	// Emptying the overlay turns pending write-behinds into no-ops;
	// wait them out so none lands after the primary wipe.
	a.Flush()

	a.cache.Clear()

	if err := a.fallback.Clear(); err != nil {
		a.logger.Warnf(providers.TypeStore, "Fallback clear failed: %s", err)
		a.metrics.IncStorageErrors(a.fallback.Name())
	}
	if a.usingPrimary.Load() {
		if err := a.primary.Clear(); err != nil {
			a.logger.Warnf(providers.TypeStore, "Primary clear failed: %s", err)
			a.metrics.IncStorageErrors(a.primary.Name())
		}
	}
}

// ReadSync is the compatibility shim for call sites that cannot wait
// on the primary: it consults the fallback only.
func (a *Adapter) ReadSync(key string) (string, bool) {
	value, ok, err := a.fallback.Get(key)
	if err != nil {
		a.logger.Warnf(providers.TypeStore, "Fallback read of %s failed: %s", key, err)
		a.metrics.IncStorageErrors(a.fallback.Name())
		return "", false
	}
	return value, ok
}

// WriteSync commits to the fallback immediately and fires the primary
// write in the background, same as Write.
func (a *Adapter) WriteSync(key, value string) {
	a.Write(key, value)
}

// Flush blocks until all in-flight primary writes have completed.
func (a *Adapter) Flush() {
	a.wg.Wait()
}

// Ready reports whether Initialize has completed.
func (a *Adapter) Ready() bool { return a.ready.Load() }

// UsingPrimary reports whether the primary backend survived its probe.
func (a *Adapter) UsingPrimary() bool { return a.usingPrimary.Load() }

// Degraded reports whether any backend has been lost. Callers may use
// it to surface a "persistence degraded" state; the adapter itself
// keeps serving from whatever remains.
func (a *Adapter) Degraded() bool { return a.degraded.Load() }

func (a *Adapter) markDegraded() {
	if a.degraded.CompareAndSwap(false, true) {
		a.metrics.SetPersistenceDegraded(true)
	}
}

// Close flushes pending writes and closes both backends.
func (a *Adapter) Close() {
	a.Flush()
	if err := a.primary.Close(); err != nil {
		a.logger.Warnf(providers.TypeStore, "Primary close failed: %s", err)
	}
	if err := a.fallback.Close(); err != nil {
		a.logger.Warnf(providers.TypeStore, "Fallback close failed: %s", err)
	}
}
