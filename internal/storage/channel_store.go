package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"prayertrack/internal/structures"
)

// channelEntry is one stored value with its expiry, the analogue of a
// cookie's expiration date. Expired entries read as absent and are
// dropped on the next write.
type channelEntry struct {
	Value     string `json:"value"`
	ExpiresAt int64  `json:"expires_at,omitempty"` // unix seconds, 0 = no expiry
}

type channelFile struct {
	Entries map[string]*channelEntry `json:"entries"`
}

// ChannelStore is the secondary channel backend: a single small file
// with a hard per-value byte ceiling. Oversized values fail with
// ErrCapacity and are simply not propagated through this channel;
// the fallback copy remains authoritative.
type ChannelStore struct {
	path     string
	maxBytes int
	ttl      time.Duration
	now      func() time.Time
}

func NewChannelStore(conf *structures.Config) *ChannelStore {
	return &ChannelStore{
		path:     conf.Storage.ChannelPath,
		maxBytes: conf.Storage.ChannelLimit,
		ttl:      conf.Storage.ChannelTTL,
		now:      time.Now,
	}
}

func (s *ChannelStore) Name() string { return "channel" }

func (s *ChannelStore) Probe() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	return nil
}

func (s *ChannelStore) load() (*channelFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &channelFile{Entries: map[string]*channelEntry{}}, nil
		}
		return nil, err
	}

	var cf channelFile
	if err := json.Unmarshal(data, &cf); err != nil {
		// A corrupt channel file is not worth failing over; start fresh.
		return &channelFile{Entries: map[string]*channelEntry{}}, nil
	}
	if cf.Entries == nil {
		cf.Entries = map[string]*channelEntry{}
	}
	return &cf, nil
}

func (s *ChannelStore) save(cf *channelFile) error {
	data, err := json.Marshal(cf)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpFile, s.path)
}

func (s *ChannelStore) expired(e *channelEntry) bool {
	return e.ExpiresAt > 0 && s.now().Unix() >= e.ExpiresAt
}

func (s *ChannelStore) Get(key string) (string, bool, error) {
	cf, err := s.load()
	if err != nil {
		return "", false, err
	}

	entry, ok := cf.Entries[key]
	if !ok || s.expired(entry) {
		return "", false, nil
	}
	return entry.Value, true, nil
}

func (s *ChannelStore) Set(key, value string) error {
	if s.maxBytes > 0 && len(value) > s.maxBytes {
		return fmt.Errorf("%w: %d bytes for %s (limit %d)", ErrCapacity, len(value), key, s.maxBytes)
	}

	cf, err := s.load()
	if err != nil {
		return err
	}

	for k, e := range cf.Entries {
		if s.expired(e) {
			delete(cf.Entries, k)
		}
	}

	entry := &channelEntry{Value: value}
	if s.ttl > 0 {
		entry.ExpiresAt = s.now().Add(s.ttl).Unix()
	}
	cf.Entries[key] = entry

	return s.save(cf)
}

func (s *ChannelStore) Delete(key string) error {
	cf, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := cf.Entries[key]; !ok {
		return nil
	}
	delete(cf.Entries, key)
	return s.save(cf)
}

func (s *ChannelStore) Keys() ([]string, error) {
	cf, err := s.load()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(cf.Entries))
	for k, e := range cf.Entries {
		if !s.expired(e) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (s *ChannelStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *ChannelStore) Close() error { return nil }
