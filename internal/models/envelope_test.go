package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeDayRecords(t *testing.T) {
	rec := NewDayRecord("2025-10-14")
	rec.Append(Moment{Timestamp: 1760400000000, Platform: PlatformIOS, Duration: 60}, DefaultMomentCap)
	m := DayRecordMap{"2025-10-14": rec}

	raw, err := EncodeDayRecords(m)
	require.NoError(t, err)

	decoded, err := DecodeDayRecords(raw, DefaultMomentCap)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	got := decoded["2025-10-14"]
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, PlatformIOS, got.Moments[0].Platform)
}

func TestDecodeDayRecordsEmpty(t *testing.T) {
	m, err := DecodeDayRecords("", DefaultMomentCap)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestDecodeDayRecordsLegacyFormat(t *testing.T) {
	// Pre-envelope payloads are the bare day map at the top level.
	raw := `{"2025-10-14":{"date":"2025-10-14","moments":[{"timestamp":1,"platform":"web","duration":60}],"count":1,"completed":false}}`

	m, err := DecodeDayRecords(raw, DefaultMomentCap)
	require.NoError(t, err)
	require.Len(t, m, 1)
	assert.Equal(t, 1, m["2025-10-14"].Count)
}

func TestDecodeDayRecordsRecomputesDerivedFields(t *testing.T) {
	// A tampered count/completed pair is corrected on decode.
	raw := `{"version":1,"days":{"2025-10-14":{"date":"","moments":[{"timestamp":1,"platform":"web","duration":60}],"count":99,"completed":true}}}`

	m, err := DecodeDayRecords(raw, DefaultMomentCap)
	require.NoError(t, err)
	rec := m["2025-10-14"]
	require.NotNil(t, rec)
	assert.Equal(t, 1, rec.Count)
	assert.False(t, rec.Completed)
	assert.Equal(t, "2025-10-14", rec.Date)
}

func TestDecodeDayRecordsDropsInvalidKeys(t *testing.T) {
	raw := `{"version":1,"days":{"2025-10-14":{"moments":[]},"not-a-day":{"moments":[]}}}`

	m, err := DecodeDayRecords(raw, DefaultMomentCap)
	require.NoError(t, err)
	assert.Len(t, m, 1)
	assert.Contains(t, m, "2025-10-14")
	assert.NotContains(t, m, "not-a-day")
}

func TestDecodeDayRecordsUnsupportedVersion(t *testing.T) {
	raw := `{"version":2,"days":{}}`

	_, err := DecodeDayRecords(raw, DefaultMomentCap)
	require.Error(t, err)
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, KeyPrayerData, decodeErr.Key)
}

func TestDecodeDayRecordsGarbage(t *testing.T) {
	_, err := DecodeDayRecords("{not json", DefaultMomentCap)
	require.Error(t, err)
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestPlatformInfoRoundTrip(t *testing.T) {
	info := &PlatformInfo{Platform: PlatformTelegram, DetectedAt: 1760400000000, UserAgent: "linux/amd64"}

	raw, err := EncodePlatformInfo(info)
	require.NoError(t, err)

	decoded, err := DecodePlatformInfo(raw)
	require.NoError(t, err)
	assert.Equal(t, info, decoded)
}

func TestDecodePlatformInfoUnknownPlatform(t *testing.T) {
	decoded, err := DecodePlatformInfo(`{"platform":"blackberry","detectedAt":1,"userAgent":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, PlatformUnknown, decoded.Platform)
}

func TestDecodeAppConfigOverlay(t *testing.T) {
	defaults := DefaultAppConfig()

	cfg, err := DecodeAppConfig(`{"maxMomentsPerDay":5}`, defaults)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxMomentsPerDay)
	assert.Equal(t, defaults.TimerDuration, cfg.TimerDuration)
	assert.Equal(t, defaults.Timezone, cfg.Timezone)

	// Zero or negative values keep the default.
	cfg, err = DecodeAppConfig(`{"maxMomentsPerDay":0,"timerDuration":-1}`, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, cfg)

	_, err = DecodeAppConfig(`nope`, defaults)
	assert.Error(t, err)
}

func TestParsePlatform(t *testing.T) {
	assert.Equal(t, PlatformIOS, ParsePlatform("ios"))
	assert.Equal(t, PlatformAndroid, ParsePlatform("android"))
	assert.Equal(t, PlatformUnknown, ParsePlatform("IOS"))
	assert.Equal(t, PlatformUnknown, ParsePlatform(""))
	assert.True(t, PlatformWeb.Valid())
	assert.False(t, Platform("desktop").Valid())
}
