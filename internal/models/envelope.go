package models

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// SchemaVersion is the current prayer_data envelope version.
const SchemaVersion = 1

// DecodeError marks a stored payload that is not valid for its key.
// Callers treat the value as absent (or propagate the other replica
// unmerged) instead of failing.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// dayRecordEnvelope is the versioned on-disk format for prayer_data.
type dayRecordEnvelope struct {
	Version int          `json:"version"`
	Days    DayRecordMap `json:"days"`
}

// EncodeDayRecords serializes the full day map under the current
// envelope version.
func EncodeDayRecords(m DayRecordMap) (string, error) {
	data, err := json.Marshal(dayRecordEnvelope{Version: SchemaVersion, Days: m})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeDayRecords parses a prayer_data payload. The current versioned
// envelope is tried first; a bare day-key map (the pre-envelope format)
// is accepted as a legacy fallback. Entries with invalid day keys are
// dropped and derived counters are recomputed, so the returned map
// always satisfies the count/completed invariants.
func DecodeDayRecords(raw string, cap int) (DayRecordMap, error) {
	if raw == "" {
		return DayRecordMap{}, nil
	}

	var env dayRecordEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.Days != nil {
		if env.Version > SchemaVersion {
			return nil, &DecodeError{Key: KeyPrayerData, Err: fmt.Errorf("unsupported schema version %d", env.Version)}
		}
		env.Days.normalize(cap)
		return env.Days, nil
	}

	// Legacy format: the map at the top level, no version field.
	var legacy DayRecordMap
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		return nil, &DecodeError{Key: KeyPrayerData, Err: err}
	}
	if legacy == nil {
		legacy = DayRecordMap{}
	}
	legacy.normalize(cap)
	return legacy, nil
}

// DecodePlatformInfo parses a platform_info payload.
func DecodePlatformInfo(raw string) (*PlatformInfo, error) {
	var info PlatformInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, &DecodeError{Key: KeyPlatformInfo, Err: err}
	}
	if !info.Platform.Valid() {
		info.Platform = PlatformUnknown
	}
	return &info, nil
}

// EncodePlatformInfo serializes a platform_info payload.
func EncodePlatformInfo(info *PlatformInfo) (string, error) {
	data, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
