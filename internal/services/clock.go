package services

import "time"

// Clock supplies the local time used to derive day keys. Injected so
// tests can pin "today".
type Clock func() time.Time

func NewClock() Clock {
	return time.Now
}
