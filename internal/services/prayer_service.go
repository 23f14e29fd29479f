package services

import (
	"sync"

	"prayertrack/internal/dateutil"
	"prayertrack/internal/models"
	"prayertrack/internal/providers"
	"prayertrack/internal/storage"
	"prayertrack/internal/structures"
)

// PrayerServiceInterface is the single authoritative API for recording
// and querying prayer activity. All other components read through it
// or request mutations through it; none hold a private copy of the day
// map across calls.
type PrayerServiceInterface interface {
	RecordMoment(platform models.Platform) bool
	GetDay(dateKey string) *models.DayRecord
	GetMonth(year, month0 int) *models.MonthView
	GetTodayCount() int
	IsTodayCompleted() bool
	SavePlatformInfo(platform models.Platform, userAgent string)
	GetPlatformInfo() *models.PlatformInfo
	Snapshot() models.DayRecordMap
	TodayKey() string
	ClearAll()
}

type PrayerService struct {
	adapter *storage.Adapter
	channel storage.Backend
	conf    *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	clock   Clock

	mu sync.Mutex // serializes the read-modify-write of prayer_data

	cfgMu  sync.Mutex
	appCfg *models.AppConfig // lazily resolved, dropped again on ClearAll
}

func NewPrayerService(adapter *storage.Adapter, channel *storage.ChannelStore, conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, clock Clock) PrayerServiceInterface {
	return &PrayerService{
		adapter: adapter,
		channel: channel,
		conf:    conf,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

// appConfig resolves the effective app configuration: compiled
// defaults from the runtime config, overlaid with the stored
// app_config payload when one exists. The result is memoized until
// ClearAll drops it.
func (s *PrayerService) appConfig() models.AppConfig {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()

	if s.appCfg != nil {
		return *s.appCfg
	}

	cfg := models.AppConfig{
		MaxMomentsPerDay: s.conf.Prayer.MaxMomentsPerDay,
		TimerDuration:    int(s.conf.Prayer.TimerDuration.Seconds()),
		Timezone:         s.conf.Prayer.Timezone,
	}

	if raw, ok := s.adapter.Read(models.KeyAppConfig); ok {
		stored, err := models.DecodeAppConfig(raw, cfg)
		if err != nil {
			s.logger.Warnf(providers.TypeApp, "Stored app config unreadable, using defaults: %s", err)
		} else {
			cfg = stored
		}
	}

	s.appCfg = &cfg
	return cfg
}

// loadMap reads and decodes the full day map. Any storage or decode
// failure yields an empty map; the scan never aborts the caller.
func (s *PrayerService) loadMap() models.DayRecordMap {
	raw, ok := s.adapter.Read(models.KeyPrayerData)
	if !ok {
		return models.DayRecordMap{}
	}

	m, err := models.DecodeDayRecords(raw, s.appConfig().MaxMomentsPerDay)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Stored prayer data unreadable, treating as empty: %s", err)
		return models.DayRecordMap{}
	}
	return m
}

func (s *PrayerService) TodayKey() string {
	return dateutil.DayKey(s.clock())
}

// RecordMoment appends a moment to today's record and rewrites the
// whole map. Returns false when today already holds the maximum number
// of moments; the record is left untouched and no error is raised;
// callers are expected to pre-check IsTodayCompleted.
func (s *PrayerService) RecordMoment(platform models.Platform) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.appConfig()
	now := s.clock()
	today := dateutil.DayKey(now)

	all := s.loadMap()
	rec, ok := all[today]
	if !ok {
		rec = models.NewDayRecord(today)
	}

	moment := models.Moment{
		Timestamp: now.UnixMilli(),
		Platform:  platform,
		Duration:  cfg.TimerDuration,
	}
	if !rec.Append(moment, cfg.MaxMomentsPerDay) {
		s.logger.Warnf(providers.TypeApp, "Daily limit of %d moments reached for %s", cfg.MaxMomentsPerDay, today)
		s.metrics.IncMomentsDeclined()
		return false
	}
	all[today] = rec

	encoded, err := models.EncodeDayRecords(all)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Cannot serialize prayer data: %s", err)
		return false
	}
	s.adapter.Write(models.KeyPrayerData, encoded)

	s.metrics.IncMomentsRecorded(string(platform))
	s.logger.Infof(providers.TypeApp, "Prayer moment saved: %d/%d", rec.Count, cfg.MaxMomentsPerDay)
	return true
}

// GetDay returns the stored record for the day, or an empty record
// when the day is absent. Absence is never an error.
func (s *PrayerService) GetDay(dateKey string) *models.DayRecord {
	if rec, ok := s.loadMap()[dateKey]; ok {
		return rec.Clone()
	}
	return models.NewDayRecord(dateKey)
}

// GetMonth assembles the 6-week grid projection for a 0-based month.
// Cells are de-duplicated by day key before resolution.
func (s *PrayerService) GetMonth(year, month0 int) *models.MonthView {
	all := s.loadMap()

	seen := make(map[string]struct{}, dateutil.GridCells)
	days := make([]*models.DayRecord, 0, dateutil.GridCells)
	for _, cell := range dateutil.MonthGrid(year, month0) {
		key := dateutil.DayKey(cell)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if rec, ok := all[key]; ok {
			days = append(days, rec.Clone())
		} else {
			days = append(days, models.NewDayRecord(key))
		}
	}

	return &models.MonthView{Year: year, Month: month0, Days: days}
}

func (s *PrayerService) GetTodayCount() int {
	return s.GetDay(s.TodayKey()).Count
}

func (s *PrayerService) IsTodayCompleted() bool {
	return s.GetDay(s.TodayKey()).Completed
}

// SavePlatformInfo persists the detection result once. An existing
// value is kept; detection re-runs only fill a missing record.
func (s *PrayerService) SavePlatformInfo(platform models.Platform, userAgent string) {
	if s.GetPlatformInfo() != nil {
		return
	}

	info := &models.PlatformInfo{
		Platform:   models.ParsePlatform(string(platform)),
		DetectedAt: s.clock().UnixMilli(),
		UserAgent:  userAgent,
	}
	encoded, err := models.EncodePlatformInfo(info)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Cannot serialize platform info: %s", err)
		return
	}
	s.adapter.Write(models.KeyPlatformInfo, encoded)
}

// GetPlatformInfo returns the stored detection result, or nil when
// none exists or the payload is unreadable.
func (s *PrayerService) GetPlatformInfo() *models.PlatformInfo {
	raw, ok := s.adapter.Read(models.KeyPlatformInfo)
	if !ok {
		return nil
	}
	info, err := models.DecodePlatformInfo(raw)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Stored platform info unreadable: %s", err)
		return nil
	}
	return info
}

// Snapshot returns a deep copy of the full day map for read-only
// consumers such as the statistics engine.
func (s *PrayerService) Snapshot() models.DayRecordMap {
	return s.loadMap().Clone()
}

// ClearAll erases the day map, platform info and cached config from
// every backing store, including the secondary channel. Irreversible.
func (s *PrayerService) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{models.KeyPrayerData, models.KeyPlatformInfo, models.KeyAppConfig} {
		s.adapter.Remove(key)
	}

	if s.channel != nil {
		if err := s.channel.Clear(); err != nil {
			s.logger.Warnf(providers.TypeStore, "Channel clear failed: %s", err)
			s.metrics.IncStorageErrors(s.channel.Name())
		}
	}

	// The stored overrides are gone; forget the memoized resolution so
	// the next operation falls back to the compiled defaults.
	s.cfgMu.Lock()
	s.appCfg = nil
	s.cfgMu.Unlock()

	s.logger.Infof(providers.TypeApp, "All data cleared")
}
