package models

import (
	"sort"

	"prayertrack/internal/dateutil"
)

// DefaultMomentCap is the absorbing per-day ceiling on recorded moments.
const DefaultMomentCap = 7

// Moment is a single recorded prayer event. Immutable once created.
type Moment struct {
	Timestamp int64    `json:"timestamp"` // milliseconds since epoch
	Platform  Platform `json:"platform"`
	Duration  int      `json:"duration"` // configured timer length, seconds
}

// DayRecord aggregates the moments of one calendar day. Count and
// Completed are derived from Moments and recomputed on every mutation
// and on decode, so a tampered payload cannot desynchronize them.
type DayRecord struct {
	Date      string   `json:"date"`
	Moments   []Moment `json:"moments"`
	Count     int      `json:"count"`
	Completed bool     `json:"completed"`
}

// NewDayRecord returns an empty record for the given day key.
func NewDayRecord(date string) *DayRecord {
	return &DayRecord{
		Date:    date,
		Moments: []Moment{},
	}
}

// Append adds a moment unless the record already holds cap moments.
// Returns false when the cap has been reached and the record is left
// untouched.
func (d *DayRecord) Append(m Moment, cap int) bool {
	if cap <= 0 {
		cap = DefaultMomentCap
	}
	if len(d.Moments) >= cap {
		return false
	}
	d.Moments = append(d.Moments, m)
	d.normalize(cap)
	return true
}

// normalize recomputes the derived counters from the moments slice.
func (d *DayRecord) normalize(cap int) {
	if cap <= 0 {
		cap = DefaultMomentCap
	}
	if d.Moments == nil {
		d.Moments = []Moment{}
	}
	d.Count = len(d.Moments)
	d.Completed = d.Count >= cap
}

// Clone returns a deep copy.
func (d *DayRecord) Clone() *DayRecord {
	c := *d
	c.Moments = make([]Moment, len(d.Moments))
	copy(c.Moments, d.Moments)
	return &c
}

// DayRecordMap is the entire persisted day history, keyed by day key.
type DayRecordMap map[string]*DayRecord

// Day returns the stored record for key, or an empty zero-value record
// when the day is absent. Absence is never an error.
func (m DayRecordMap) Day(key string) *DayRecord {
	if rec, ok := m[key]; ok && rec != nil {
		return rec
	}
	return NewDayRecord(key)
}

// Keys returns all day keys in chronological order.
func (m DayRecordMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the map.
func (m DayRecordMap) Clone() DayRecordMap {
	c := make(DayRecordMap, len(m))
	for k, v := range m {
		if v != nil {
			c[k] = v.Clone()
		}
	}
	return c
}

// normalize drops entries with invalid day keys, backfills the Date
// field from the map key and recomputes derived counters.
func (m DayRecordMap) normalize(cap int) {
	for k, rec := range m {
		if rec == nil || !dateutil.IsDayKey(k) {
			delete(m, k)
			continue
		}
		rec.Date = k
		rec.normalize(cap)
	}
}

// MonthView is a read-only 6-week projection of one month. Month is
// 0-based (0 = January), mirroring the stored payload convention.
type MonthView struct {
	Year  int          `json:"year"`
	Month int          `json:"month"`
	Days  []*DayRecord `json:"days"`
}
