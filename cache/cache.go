package cache

import (
	"errors"

	"github.com/jonwraymond/simcache/clock"
)

// Sentinel errors for cache operations.
var (
	ErrNilSource        = errors.New("cache: clock source is nil")
	ErrNilPolicy        = errors.New("cache: policy is nil")
	ErrNilKeyFunc       = errors.New("cache: key function is nil")
	ErrNegativeInterval = errors.New("cache: interval ticks must not be negative")
	ErrInvalidCapacity  = errors.New("cache: capacity must be positive")
)

// Entry is a cached value and the tick after which it is stale.
type Entry[V any] struct {
	Value     V
	ExpiresAt clock.Tick
	// Permanent entries were stored with a zero interval and never go stale.
	Permanent bool
}

// NewEntry stamps value at now with the given refresh interval.
func NewEntry[V any](value V, now clock.Tick, intervalTicks int) Entry[V] {
	return Entry[V]{
		Value:     value,
		ExpiresAt: now + clock.Tick(intervalTicks),
		Permanent: intervalTicks == 0,
	}
}

// Fresh reports whether the entry may still be returned at now.
func (e Entry[V]) Fresh(now clock.Tick) bool {
	return e.Permanent || now <= e.ExpiresAt
}

// Slot is a single time-bounded value.
//
// Contract:
//   - Concurrency: single simulation thread only.
//   - Errors: none; behavior is fully determined by the clock.
type Slot[V any] struct {
	src   clock.Source
	entry Entry[V]
	set   bool
}

// NewSlot creates an empty slot reading time from src.
func NewSlot[V any](src clock.Source) *Slot[V] {
	return &Slot[V]{src: src}
}

// Get returns the stored value and whether it is fresh. An empty slot
// returns the zero value and false.
func (s *Slot[V]) Get() (V, bool) {
	if !s.set {
		var zero V
		return zero, false
	}
	return s.entry.Value, s.entry.Fresh(s.src.Now())
}

// Set stores value with expiry at now + intervalTicks.
func (s *Slot[V]) Set(value V, intervalTicks int) {
	s.entry = NewEntry(value, s.src.Now(), intervalTicks)
	s.set = true
}

// ExpiresAt returns the expiry tick of the stored value.
func (s *Slot[V]) ExpiresAt() clock.Tick {
	return s.entry.ExpiresAt
}

// Reset empties the slot.
func (s *Slot[V]) Reset() {
	var zero Entry[V]
	s.entry = zero
	s.set = false
}
