package storage

import "errors"

// ErrUnavailable marks a backend whose capability probe failed or that
// was never probed. The adapter degrades to the other backend instead
// of surfacing it.
var ErrUnavailable = errors.New("storage backend unavailable")

// ErrCapacity marks a value that exceeds a size-limited store's
// per-value ceiling. Oversized payloads are dropped, not truncated.
var ErrCapacity = errors.New("value exceeds store capacity")

// Backend is the capability set every physical store implements.
// Values are serialized strings; typed decoding happens above this
// seam. New backends plug in here without touching the repository.
type Backend interface {
	Name() string
	Probe() error
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)
	Clear() error
	Close() error
}
