package models

// Platform identifies the runtime environment a moment was recorded on.
// The value is produced by the UI layer's platform classifier and stored
// verbatim; the core never interprets it beyond validation.
type Platform string

const (
	PlatformIOS      Platform = "ios"
	PlatformAndroid  Platform = "android"
	PlatformTelegram Platform = "telegram"
	PlatformWeb      Platform = "web"
	PlatformUnknown  Platform = "unknown"
)

// ParsePlatform maps an arbitrary string onto the closed platform
// enumeration. Anything unrecognized collapses to PlatformUnknown.
func ParsePlatform(s string) Platform {
	switch Platform(s) {
	case PlatformIOS, PlatformAndroid, PlatformTelegram, PlatformWeb, PlatformUnknown:
		return Platform(s)
	default:
		return PlatformUnknown
	}
}

// Valid reports whether p is one of the five known platforms.
func (p Platform) Valid() bool {
	return ParsePlatform(string(p)) == p
}

// PlatformInfo is the persisted result of the one-shot platform
// detection. Write-once: it is only overwritten when no prior value
// exists.
type PlatformInfo struct {
	Platform   Platform `json:"platform"`
	DetectedAt int64    `json:"detectedAt"`
	UserAgent  string   `json:"userAgent"`
}
