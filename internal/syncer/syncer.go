package syncer

import (
	"errors"
	"sync"

	"prayertrack/internal/models"
	"prayertrack/internal/providers"
	"prayertrack/internal/storage"
	"prayertrack/internal/structures"
)

// Precedence names which side wins when both replicas hold conflicting
// data for the same day key. This is an explicit product choice, not a
// hardcoded tie-break.
type Precedence string

const (
	PrecedenceChannel  Precedence = "channel"
	PrecedenceFallback Precedence = "fallback"
)

// Synchronizer keeps the fallback store and the secondary channel
// store eventually consistent. Best-effort convergent replication, not
// a CRDT: disjoint day keys always merge cleanly, conflicting copies
// of the same day lose the non-preferred side's moments.
//
// Fallback-side writes go through the adapter, so its overlay and
// read cache pick up reconciled payloads immediately.
type Synchronizer struct {
	adapter    *storage.Adapter
	fallback   storage.Backend
	channel    storage.Backend
	precedence Precedence
	cap        int
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface

	mu sync.Mutex // one reconciliation at a time
}

func NewSynchronizer(adapter *storage.Adapter, fallback *storage.FileStore, channel *storage.ChannelStore, conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) *Synchronizer {
	return &Synchronizer{
		adapter:    adapter,
		fallback:   fallback,
		channel:    channel,
		precedence: Precedence(conf.Sync.Precedence),
		cap:        conf.Prayer.MaxMomentsPerDay,
		logger:     logger,
		metrics:    metrics,
	}
}

// Reconcile converges the two replicas of the day map. One-sided data
// is copied across; differing payloads are merged by day key with the
// configured precedence and written back to both sides. A decode
// failure on the preferred side blindly propagates the other side's
// raw payload, favoring availability over a partial merge.
func (s *Synchronizer) Reconcile() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fallbackRaw, fallbackOK, err := s.fallback.Get(models.KeyPrayerData)
	if err != nil {
		s.metrics.IncStorageErrors(s.fallback.Name())
		return err
	}
	channelRaw, channelOK, err := s.channel.Get(models.KeyPrayerData)
	if err != nil {
		s.metrics.IncStorageErrors(s.channel.Name())
		return err
	}

	switch {
	case !fallbackOK && !channelOK:
		return nil

	case fallbackOK && !channelOK:
		s.propagate(fallbackRaw)
		return nil

	case !fallbackOK && channelOK:
		s.adapter.WriteSync(models.KeyPrayerData, channelRaw)
		return nil
	}

	if fallbackRaw == channelRaw {
		return nil
	}

	preferredRaw, otherRaw := channelRaw, fallbackRaw
	if s.precedence == PrecedenceFallback {
		preferredRaw, otherRaw = fallbackRaw, channelRaw
	}

	preferred, err := models.DecodeDayRecords(preferredRaw, s.cap)
	if err != nil {
		s.logger.Warnf(providers.TypeSync, "Preferred side unreadable, propagating other side verbatim: %s", err)
		s.writeBoth(otherRaw)
		return nil
	}
	other, err := models.DecodeDayRecords(otherRaw, s.cap)
	if err != nil {
		s.logger.Warnf(providers.TypeSync, "Non-preferred side unreadable, propagating preferred side verbatim: %s", err)
		s.writeBoth(preferredRaw)
		return nil
	}

	// Shallow merge keyed by day: whole days are atomic units, the
	// preferred side's copy wins for overlapping keys.
	merged := other.Clone()
	for key, rec := range preferred {
		merged[key] = rec.Clone()
	}

	encoded, err := models.EncodeDayRecords(merged)
	if err != nil {
		return err
	}
	s.writeBoth(encoded)
	s.metrics.IncSyncMerges()
	s.logger.Infof(providers.TypeSync, "Merged %d fallback and %d channel days into %d", len(other), len(preferred), len(merged))
	return nil
}

func (s *Synchronizer) writeBoth(raw string) {
	s.adapter.WriteSync(models.KeyPrayerData, raw)
	s.propagate(raw)
}

// propagate copies a raw payload into the channel store. A capacity
// overflow is an accepted limitation: the payload simply does not
// travel through this channel.
func (s *Synchronizer) propagate(raw string) {
	if err := s.channel.Set(models.KeyPrayerData, raw); err != nil {
		if errors.Is(err, storage.ErrCapacity) {
			s.logger.Warnf(providers.TypeSync, "Payload too large for %s store, skipping propagation: %s", s.channel.Name(), err)
			return
		}
		s.logger.Errorf(providers.TypeSync, "Propagation to %s failed: %s", s.channel.Name(), err)
		s.metrics.IncStorageErrors(s.channel.Name())
	}
}
