package dateutil

import (
	"fmt"
	"time"
)

// DayKeyLayout is the canonical day key format. Keys always use the
// local calendar date, never UTC conversion.
const DayKeyLayout = "2006-01-02"

// GridCells is the size of a month grid: 6 weeks of 7 days.
const GridCells = 42

// DayKey formats a time as its canonical YYYY-MM-DD day key.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a canonical day key into a local-time midnight value.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	// time.Parse accepts non-padded variants depending on input length;
	// round-trip to reject anything that is not strictly YYYY-MM-DD.
	if t.Format(DayKeyLayout) != key {
		return time.Time{}, fmt.Errorf("invalid day key %q", key)
	}
	return t, nil
}

// IsDayKey reports whether key is a syntactically valid day key.
func IsDayKey(key string) bool {
	_, err := ParseDayKey(key)
	return err == nil
}

// AddDays returns t shifted by n calendar days in local time.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// MonthStart returns local midnight on the 1st of the given month.
// month0 is 0-based (0 = January) to match the stored month projection.
func MonthStart(year, month0 int) time.Time {
	return time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.Local)
}

// DaysInMonth returns the number of days in the given 0-based month.
func DaysInMonth(year, month0 int) int {
	return time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.Local).Day()
}

// MonthGrid returns the 42 cells of the 6-week calendar grid for the
// given 0-based month. The first cell is the Sunday on or before the
// 1st of the month.
func MonthGrid(year, month0 int) []time.Time {
	first := MonthStart(year, month0)
	start := AddDays(first, -int(first.Weekday()))

	cells := make([]time.Time, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		cells = append(cells, AddDays(start, i))
	}
	return cells
}
