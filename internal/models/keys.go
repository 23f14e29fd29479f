package models

// Storage keys shared by the repository, the adapter migration and the
// synchronizer. These are the logical names of the persisted payloads,
// independent of any backend's layout.
const (
	KeyPrayerData   = "prayer_data"
	KeyPlatformInfo = "platform_info"
	KeyAppConfig    = "app_config"
)
