package models

// StatsWindowDays is the trailing window the statistics engine scans.
const StatsWindowDays = 365

// StatsSnapshot is the derived, non-persisted aggregate view over the
// trailing stats window.
type StatsSnapshot struct {
	TotalMoments  int     `json:"totalMoments"`
	CurrentStreak int     `json:"currentStreak"`
	DaysCompleted int     `json:"daysCompleted"`
	LastActivity  *string `json:"lastActivity"` // day key, nil when no activity in window
}
