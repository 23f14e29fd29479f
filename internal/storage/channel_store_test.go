package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prayertrack/internal/structures"
)

func newChannelStore(t *testing.T, limit int, ttl time.Duration) *ChannelStore {
	t.Helper()
	conf := &structures.Config{}
	conf.Storage.ChannelPath = filepath.Join(t.TempDir(), "channel.json")
	conf.Storage.ChannelLimit = limit
	conf.Storage.ChannelTTL = ttl
	return NewChannelStore(conf)
}

func TestChannelStoreRoundTrip(t *testing.T) {
	store := newChannelStore(t, 4096, 0)
	require.NoError(t, store.Probe())

	_, ok, err := store.Get("prayer_data")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("prayer_data", "payload"))

	value, ok, err := store.Get("prayer_data")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "payload", value)
}

func TestChannelStoreCapacity(t *testing.T) {
	store := newChannelStore(t, 16, 0)

	require.NoError(t, store.Set("small", "ok"))

	err := store.Set("big", strings.Repeat("x", 17))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapacity)

	// The oversized value was dropped, not truncated.
	_, ok, err := store.Get("big")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChannelStoreTTL(t *testing.T) {
	store := newChannelStore(t, 4096, time.Hour)

	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set("prayer_data", "payload"))

	_, ok, err := store.Get("prayer_data")
	require.NoError(t, err)
	assert.True(t, ok)

	// Past the expiry the entry reads as absent.
	now = now.Add(2 * time.Hour)
	_, ok, err = store.Get("prayer_data")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	// The next write prunes the expired entry from the file.
	require.NoError(t, store.Set("other", "v"))
	keys, err = store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, keys)
}

func TestChannelStoreCorruptFileStartsFresh(t *testing.T) {
	store := newChannelStore(t, 4096, 0)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.path), 0700))
	require.NoError(t, os.WriteFile(store.path, []byte("{broken"), 0600))

	_, ok, err := store.Get("prayer_data")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("prayer_data", "fresh"))
	value, ok, err := store.Get("prayer_data")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fresh", value)
}

func TestChannelStoreDeleteAndClear(t *testing.T) {
	store := newChannelStore(t, 4096, 0)
	require.NoError(t, store.Set("a", "1"))
	require.NoError(t, store.Set("b", "2"))

	require.NoError(t, store.Delete("a"))
	_, ok, _ := store.Get("a")
	assert.False(t, ok)
	assert.NoError(t, store.Delete("a"))

	require.NoError(t, store.Clear())
	_, err := os.Stat(store.path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already empty store is fine.
	assert.NoError(t, store.Clear())
}
