package cache

import (
	"sync/atomic"

	"github.com/jonwraymond/simcache/clock"
)

// Stats is a snapshot of a table's counters.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Stale         uint64
	Bypassed      uint64
	Stores        uint64
	Invalidations uint64
	Clears        uint64

	// Entries is the number of stored entries at snapshot time.
	Entries int64
}

// counters are atomic so telemetry can read them off the simulation thread.
type counters struct {
	hits          atomic.Uint64
	misses        atomic.Uint64
	stale         atomic.Uint64
	bypassed      atomic.Uint64
	stores        atomic.Uint64
	invalidations atomic.Uint64
	clears        atomic.Uint64
	entries       atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Stale:         c.stale.Load(),
		Bypassed:      c.bypassed.Load(),
		Stores:        c.stores.Load(),
		Invalidations: c.invalidations.Load(),
		Clears:        c.clears.Load(),
		Entries:       c.entries.Load(),
	}
}

// Table maps keys to time-bounded entries for one cached operation.
//
// Contract:
//   - Concurrency: not safe for concurrent mutation; the simulation thread
//     owns the table. Stats may be read from any goroutine.
//   - Expiry: entries are replaced on the next store, never evicted by age.
//   - Keys: K must have value equality covering every argument that affects
//     the result.
type Table[K comparable, V any] struct {
	src     clock.Source
	entries map[K]Entry[V]
	stats   counters
}

// NewTable creates an empty table reading time from src.
func NewTable[K comparable, V any](src clock.Source) *Table[K, V] {
	return &Table[K, V]{
		src:     src,
		entries: make(map[K]Entry[V]),
	}
}

// Source returns the clock the table stamps entries with.
func (t *Table[K, V]) Source() clock.Source {
	return t.src
}

// TryGetFresh returns the value for key if present and fresh at the
// current tick.
func (t *Table[K, V]) TryGetFresh(key K) (V, bool) {
	e, ok := t.entries[key]
	if !ok {
		t.stats.misses.Add(1)
		var zero V
		return zero, false
	}
	if !e.Fresh(t.src.Now()) {
		t.stats.stale.Add(1)
		var zero V
		return zero, false
	}
	t.stats.hits.Add(1)
	return e.Value, true
}

// Store inserts or replaces the entry for key. The expiry is computed from
// the tick at which Store runs, not the tick of the preceding lookup.
func (t *Table[K, V]) Store(key K, value V, intervalTicks int) {
	if _, ok := t.entries[key]; !ok {
		t.stats.entries.Add(1)
	}
	t.entries[key] = NewEntry(value, t.src.Now(), intervalTicks)
	t.stats.stores.Add(1)
}

// FetchOrCompute returns a fresh cached value or computes, stores and
// returns a new one. A disabled policy calls compute without reading or
// writing the table.
func (t *Table[K, V]) FetchOrCompute(key K, compute func() V, policy Policy) V {
	if !policy.ShouldCache() {
		t.stats.bypassed.Add(1)
		return compute()
	}
	if v, ok := t.TryGetFresh(key); ok {
		return v
	}
	v := compute()
	t.Store(key, v, policy.IntervalTicks)
	return v
}

// FetchOrComputeE is FetchOrCompute for fallible computations. Errors are
// returned to the caller and never stored.
func (t *Table[K, V]) FetchOrComputeE(key K, compute func() (V, error), policy Policy) (V, error) {
	if !policy.ShouldCache() {
		t.stats.bypassed.Add(1)
		return compute()
	}
	if v, ok := t.TryGetFresh(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	t.Store(key, v, policy.IntervalTicks)
	return v, nil
}

// Invalidate removes the entry for key. Idempotent.
func (t *Table[K, V]) Invalidate(key K) {
	if _, ok := t.entries[key]; ok {
		delete(t.entries, key)
		t.stats.invalidations.Add(1)
		t.stats.entries.Add(-1)
	}
}

// Clear removes every entry.
func (t *Table[K, V]) Clear() {
	clear(t.entries)
	t.stats.clears.Add(1)
	t.stats.entries.Store(0)
}

// Len returns the number of stored entries, fresh or stale.
func (t *Table[K, V]) Len() int {
	return len(t.entries)
}

// Stats returns a snapshot of the table's counters.
func (t *Table[K, V]) Stats() Stats {
	return t.stats.snapshot()
}

// Prune removes entries that are stale at the current tick and returns how
// many were dropped.
func (t *Table[K, V]) Prune() int {
	now := t.src.Now()
	n := 0
	for k, e := range t.entries {
		if !e.Fresh(now) {
			delete(t.entries, k)
			n++
		}
	}
	t.stats.entries.Add(-int64(n))
	return n
}
