package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prayertrack/internal/structures"
)

func loggerConf(dir string) *structures.Config {
	conf := &structures.Config{}
	conf.Logger.Level = "debug"
	conf.Logger.Mode = 0644
	conf.Logger.Dir = dir
	return conf
}

func TestNewLogProviderCreatesChannelFiles(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogProvider(loggerConf(dir))
	require.NoError(t, err)

	logger.Infof(TypeApp, "app message %d", 1)
	logger.Warnf(TypeStore, "store message")
	logger.Errorf(TypeSync, "sync message")
	logger.Close()

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(app), "app message 1")
	assert.NotContains(t, string(app), "store message")

	store, err := os.ReadFile(filepath.Join(dir, "store.log"))
	require.NoError(t, err)
	assert.Contains(t, string(store), "store message")

	syn, err := os.ReadFile(filepath.Join(dir, "sync.log"))
	require.NoError(t, err)
	assert.Contains(t, string(syn), "sync message")
}

func TestNewLogProviderLevelFilter(t *testing.T) {
	dir := t.TempDir()
	conf := loggerConf(dir)
	conf.Logger.Level = "error"

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeApp, "filtered out")
	logger.Errorf(TypeApp, "kept")
	logger.Close()

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(app), "filtered out")
	assert.Contains(t, string(app), "kept")
}

func TestNewLogProviderBadLevel(t *testing.T) {
	conf := loggerConf(t.TempDir())
	conf.Logger.Level = "chatty"

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProviderBadDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := NewLogProvider(loggerConf(filepath.Join(blocker, "logs")))
	assert.Error(t, err)
}
