package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prayertrack/internal/structures"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	conf := &structures.Config{}
	conf.Storage.FallbackDir = filepath.Join(t.TempDir(), "fallback")
	return NewFileStore(conf)
}

func TestFileStoreProbe(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, store.Probe())

	// Probe must not leave its marker behind.
	entries, err := os.ReadDir(store.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStoreProbeFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	conf := &structures.Config{}
	conf.Storage.FallbackDir = filepath.Join(blocker, "fallback")

	err := NewFileStore(conf).Probe()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, store.Probe())

	_, ok, err := store.Get("prayer_data")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("prayer_data", `{"version":1}`))

	value, ok, err := store.Get("prayer_data")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"version":1}`, value)

	// Overwrite replaces, never appends.
	require.NoError(t, store.Set("prayer_data", "v2"))
	value, _, _ = store.Get("prayer_data")
	assert.Equal(t, "v2", value)
}

func TestFileStoreSetLeavesNoTempFile(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, store.Probe())
	require.NoError(t, store.Set("prayer_data", "value"))

	entries, err := os.ReadDir(store.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "prayer_data.json", entries[0].Name())
}

func TestFileStoreDelete(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, store.Probe())
	require.NoError(t, store.Set("prayer_data", "value"))

	require.NoError(t, store.Delete("prayer_data"))
	_, ok, err := store.Get("prayer_data")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete("prayer_data"))
}

func TestFileStoreKeysAndClear(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, store.Probe())
	require.NoError(t, store.Set("prayer_data", "a"))
	require.NoError(t, store.Set("platform_info", "b"))

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"prayer_data", "platform_info"}, keys)

	require.NoError(t, store.Clear())
	keys, err = store.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStoreFlattensPathSeparators(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, store.Probe())
	require.NoError(t, store.Set("../escape", "value"))

	// The key stays inside the store directory.
	_, err := os.Stat(filepath.Join(store.dir, ".._escape.json"))
	assert.NoError(t, err)
}
