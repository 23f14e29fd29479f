package cli

import (
	"fmt"
	"time"

	"prayertrack/internal"
	"prayertrack/internal/dateutil"
)

// Context is passed to every command by the kong dispatcher.
type Context struct {
	App *internal.App
}

// resolveDayKey accepts "today" or a literal YYYY-MM-DD key.
func resolveDayKey(s string, now func() time.Time) (string, error) {
	if s == "" || s == "today" {
		return dateutil.DayKey(now()), nil
	}
	if !dateutil.IsDayKey(s) {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD or 'today'", s)
	}
	return s, nil
}
