package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"prayertrack/internal/structures"
)

// NewConfigProvider builds the runtime configuration. A missing config
// file is not an error for this client: the app must come up with
// defaults on a fresh device. An explicitly passed path that cannot be
// read still fails.
func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	conf := defaultConfig()

	path := flags.ConfigPath
	if path == "" {
		path = filepath.Join(defaultBaseDir(), "config.yaml")
	}

	v := viper.New()
	filename := filepath.Base(path)
	v.AddConfigPath(filepath.Dir(path))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "PRAYERTRACK_LOG_LEVEL")
	v.BindEnv("sync.interval", "PRAYERTRACK_SYNC_INTERVAL")
	v.BindEnv("sync.precedence", "PRAYERTRACK_SYNC_PRECEDENCE")
	v.BindEnv("cache.enabled", "PRAYERTRACK_CACHE_ENABLED")
	v.BindEnv("cache.size", "PRAYERTRACK_CACHE_SIZE")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || flags.ConfigPath != "" {
			return nil, err
		}
	} else {
		if err := v.Unmarshal(&conf); err != nil {
			return nil, fmt.Errorf("unable to decode into config struct: %w", err)
		}
	}

	cnfValidator := NewCnfValidator(&conf)
	if err := cnfValidator.Validate(); err != nil {
		return nil, err
	}

	conf.AppName = "prayertrack"
	conf.Path = path
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// defaultBaseDir is the per-user data root, ~/.config/prayertrack on
// most systems.
func defaultBaseDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "prayertrack")
}

func defaultConfig() structures.Config {
	base := defaultBaseDir()
	return structures.Config{
		Prayer: structures.PrayerConfig{
			MaxMomentsPerDay: 7,
			TimerDuration:    60 * time.Second,
			Timezone:         "Europe/Paris",
		},
		Storage: structures.StorageConfig{
			PrimaryPath:  filepath.Join(base, "prayertrack.db"),
			FallbackDir:  filepath.Join(base, "fallback"),
			ChannelPath:  filepath.Join(base, "channel.json"),
			ChannelLimit: 4096,
			ChannelTTL:   365 * 24 * time.Hour,
		},
		Sync: structures.SyncConfig{
			Interval:   30 * time.Second,
			Precedence: "channel",
		},
		Daemon: structures.Server{
			Host: "127.0.0.1",
			Port: 7777,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   base,
		},
		Cache: structures.CacheConfig{
			Enabled: true,
			Size:    8,
		},
		Metrics: structures.MetricsConfig{
			Enabled: false,
		},
	}
}
