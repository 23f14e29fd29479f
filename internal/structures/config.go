package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	PrimaryPath  string        `yaml:"primaryPath" validate:"required|unixPath"`
	FallbackDir  string        `yaml:"fallbackDir" validate:"required|unixPath"`
	ChannelPath  string        `yaml:"channelPath" validate:"required|unixPath"`
	ChannelLimit int           `yaml:"channelLimit" validate:"required|min:1"` // bytes per value
	ChannelTTL   time.Duration `yaml:"channelTTL"`
}

type SyncConfig struct {
	Interval   time.Duration `yaml:"interval" validate:"required|min:1"`
	Precedence string        `yaml:"precedence" validate:"required|in:channel,fallback"`
}

type PrayerConfig struct {
	MaxMomentsPerDay int           `yaml:"maxMomentsPerDay" validate:"required|min:1"`
	TimerDuration    time.Duration `yaml:"timerDuration" validate:"required|min:1"`
	Timezone         string        `yaml:"timezone"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"` // MB
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName string
	Debug   bool
	Path    string
	Prayer  PrayerConfig  `yaml:"prayer"`
	Storage StorageConfig `yaml:"storage"`
	Sync    SyncConfig    `yaml:"sync"`
	Daemon  Server        `yaml:"daemon"`
	Logger  LoggerConfig  `yaml:"logger"`
	Cache   CacheConfig   `yaml:"cache"`
	Metrics MetricsConfig `yaml:"metrics"`
}
