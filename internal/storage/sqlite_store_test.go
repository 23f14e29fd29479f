package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prayertrack/internal/structures"
	"prayertrack/internal/testutil"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	conf := &structures.Config{}
	conf.Storage.PrimaryPath = filepath.Join(t.TempDir(), "prayertrack.db")
	store := NewSQLiteStore(conf, &testutil.MockCompressor{})
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreUnavailableBeforeProbe(t *testing.T) {
	store := newSQLiteStore(t)

	_, _, err := store.Get("prayer_data")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, store.Set("prayer_data", "v"), ErrUnavailable)
	assert.ErrorIs(t, store.Delete("prayer_data"), ErrUnavailable)
	assert.ErrorIs(t, store.Clear(), ErrUnavailable)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.Probe())

	_, ok, err := store.Get("prayer_data")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("prayer_data", "v1"))
	require.NoError(t, store.Set("prayer_data", "v2"))

	value, ok, err := store.Get("prayer_data")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)
}

func TestSQLiteStoreKeysDeleteClear(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.Probe())

	require.NoError(t, store.Set("b", "2"))
	require.NoError(t, store.Set("a", "1"))

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, store.Delete("a"))
	_, ok, err := store.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Clear())
	keys, err = store.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSQLiteStoreReopen(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{}
	conf.Storage.PrimaryPath = filepath.Join(dir, "prayertrack.db")

	store := NewSQLiteStore(conf, &testutil.MockCompressor{})
	require.NoError(t, store.Probe())
	require.NoError(t, store.Set("prayer_data", "persisted"))
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore(conf, &testutil.MockCompressor{})
	require.NoError(t, reopened.Probe())
	defer reopened.Close()

	value, ok, err := reopened.Get("prayer_data")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)
}

func TestSQLiteStoreProbeFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	conf := &structures.Config{}
	conf.Storage.PrimaryPath = filepath.Join(blocker, "nested", "prayertrack.db")

	err := NewSQLiteStore(conf, &testutil.MockCompressor{}).Probe()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestZstdCompressorRoundTrip(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	payload := []byte(`{"version":1,"days":{}}`)
	compressed, err := comp.Compress(payload)
	require.NoError(t, err)

	restored, err := comp.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)

	_, err = comp.Decompress([]byte("not a zstd frame"))
	assert.Error(t, err)
}
