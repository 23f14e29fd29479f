package services

import (
	"prayertrack/internal/dateutil"
	"prayertrack/internal/models"
)

type StatsServiceInterface interface {
	ComputeStats() *models.StatsSnapshot
}

// StatsService derives aggregate metrics from the day map without
// mutating it.
type StatsService struct {
	prayer PrayerServiceInterface
	clock  Clock
}

func NewStatsService(prayer PrayerServiceInterface, clock Clock) StatsServiceInterface {
	return &StatsService{prayer: prayer, clock: clock}
}

// ComputeStats scans the trailing 365-day window, today first.
//
// The streak is a genuine consecutive run: it starts at today and
// stops at the first non-completed day, so an incomplete today always
// yields 0. An unreadable day counts as a zero-value day and the scan
// continues.
func (s *StatsService) ComputeStats() *models.StatsSnapshot {
	snapshot := s.prayer.Snapshot()
	today := s.clock()

	stats := &models.StatsSnapshot{}
	streakAlive := true

	for offset := 0; offset < models.StatsWindowDays; offset++ {
		key := dateutil.DayKey(dateutil.AddDays(today, -offset))
		rec := snapshot.Day(key)

		stats.TotalMoments += rec.Count
		if rec.Completed {
			stats.DaysCompleted++
		}

		if streakAlive {
			if rec.Completed {
				stats.CurrentStreak++
			} else {
				streakAlive = false
			}
		}

		if stats.LastActivity == nil && rec.Count > 0 {
			k := key
			stats.LastActivity = &k
		}
	}

	return stats
}
