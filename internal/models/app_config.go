package models

import (
	json "github.com/goccy/go-json"
)

// AppConfig is the stored application configuration under app_config.
// The key is reserved: defaults are used when it is absent and it is
// never required to be written.
type AppConfig struct {
	MaxMomentsPerDay int    `json:"maxMomentsPerDay"`
	TimerDuration    int    `json:"timerDuration"` // seconds
	Timezone         string `json:"timezone"`
}

// DefaultAppConfig returns the compiled-in defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		MaxMomentsPerDay: DefaultMomentCap,
		TimerDuration:    60,
		Timezone:         "Europe/Paris",
	}
}

// DecodeAppConfig parses an app_config payload, overlaying stored
// values on top of the given defaults. Zero or negative stored values
// keep the default.
func DecodeAppConfig(raw string, defaults AppConfig) (AppConfig, error) {
	var stored AppConfig
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return defaults, &DecodeError{Key: KeyAppConfig, Err: err}
	}
	cfg := defaults
	if stored.MaxMomentsPerDay > 0 {
		cfg.MaxMomentsPerDay = stored.MaxMomentsPerDay
	}
	if stored.TimerDuration > 0 {
		cfg.TimerDuration = stored.TimerDuration
	}
	if stored.Timezone != "" {
		cfg.Timezone = stored.Timezone
	}
	return cfg, nil
}
