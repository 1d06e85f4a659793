package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Identity memoizes values that never expire. Absence is cached like any
// other answer: store the zero value with ok=false to remember that a
// lookup found nothing.
//
// Contract:
//   - Concurrency: single simulation thread only.
//   - Lifetime: entries live until Invalidate or Clear.
type Identity[K comparable, V any] struct {
	entries map[K]lookup[V]
	stats   counters
}

type lookup[V any] struct {
	value V
	found bool
}

// NewIdentity creates an empty identity memo.
func NewIdentity[K comparable, V any]() *Identity[K, V] {
	return &Identity[K, V]{entries: make(map[K]lookup[V])}
}

// Get returns the memoized answer for key. cached reports whether an
// answer, positive or negative, is present; found is the stored answer.
func (m *Identity[K, V]) Get(key K) (value V, found, cached bool) {
	l, ok := m.entries[key]
	if !ok {
		m.stats.misses.Add(1)
		return value, false, false
	}
	m.stats.hits.Add(1)
	return l.value, l.found, true
}

// Put stores an answer for key.
func (m *Identity[K, V]) Put(key K, value V, found bool) {
	if _, ok := m.entries[key]; !ok {
		m.stats.entries.Add(1)
	}
	m.entries[key] = lookup[V]{value: value, found: found}
	m.stats.stores.Add(1)
}

// Resolve returns the memoized answer for key, calling fn on first use.
func (m *Identity[K, V]) Resolve(key K, fn func() (V, bool)) (V, bool) {
	if v, found, cached := m.Get(key); cached {
		return v, found
	}
	v, found := fn()
	m.Put(key, v, found)
	return v, found
}

// Invalidate forgets the answer for key.
func (m *Identity[K, V]) Invalidate(key K) {
	if _, ok := m.entries[key]; ok {
		delete(m.entries, key)
		m.stats.invalidations.Add(1)
		m.stats.entries.Add(-1)
	}
}

// Clear forgets every answer.
func (m *Identity[K, V]) Clear() {
	clear(m.entries)
	m.stats.clears.Add(1)
	m.stats.entries.Store(0)
}

// Len returns the number of memoized answers.
func (m *Identity[K, V]) Len() int {
	return len(m.entries)
}

// Stats returns a snapshot of the memo's counters.
func (m *Identity[K, V]) Stats() Stats {
	return m.stats.snapshot()
}

// BoundedIdentity is an Identity memo capped at a fixed number of keys.
// Least recently used answers are evicted first. It suits lookups keyed by
// short-lived objects where an unbounded map would grow for a whole session.
type BoundedIdentity[K comparable, V any] struct {
	lru       *lru.Cache[K, lookup[V]]
	stats     counters
	evictions atomic.Uint64
}

// NewBoundedIdentity creates a bounded memo holding at most size answers.
func NewBoundedIdentity[K comparable, V any](size int) (*BoundedIdentity[K, V], error) {
	if size <= 0 {
		return nil, ErrInvalidCapacity
	}
	c, err := lru.New[K, lookup[V]](size)
	if err != nil {
		return nil, err
	}
	return &BoundedIdentity[K, V]{lru: c}, nil
}

// Get returns the memoized answer for key.
func (m *BoundedIdentity[K, V]) Get(key K) (value V, found, cached bool) {
	l, ok := m.lru.Get(key)
	if !ok {
		m.stats.misses.Add(1)
		return value, false, false
	}
	m.stats.hits.Add(1)
	return l.value, l.found, true
}

// Put stores an answer for key, evicting the oldest answer when full.
func (m *BoundedIdentity[K, V]) Put(key K, value V, found bool) {
	if m.lru.Add(key, lookup[V]{value: value, found: found}) {
		m.evictions.Add(1)
	}
	m.stats.stores.Add(1)
	m.stats.entries.Store(int64(m.lru.Len()))
}

// Resolve returns the memoized answer for key, calling fn on first use.
func (m *BoundedIdentity[K, V]) Resolve(key K, fn func() (V, bool)) (V, bool) {
	if v, found, cached := m.Get(key); cached {
		return v, found
	}
	v, found := fn()
	m.Put(key, v, found)
	return v, found
}

// Invalidate forgets the answer for key.
func (m *BoundedIdentity[K, V]) Invalidate(key K) {
	if m.lru.Remove(key) {
		m.stats.invalidations.Add(1)
		m.stats.entries.Store(int64(m.lru.Len()))
	}
}

// Clear forgets every answer. Purged answers are not counted as evictions.
func (m *BoundedIdentity[K, V]) Clear() {
	m.lru.Purge()
	m.stats.clears.Add(1)
	m.stats.entries.Store(0)
}

// Len returns the number of memoized answers.
func (m *BoundedIdentity[K, V]) Len() int {
	return m.lru.Len()
}

// Evictions returns how many answers were dropped for capacity.
func (m *BoundedIdentity[K, V]) Evictions() uint64 {
	return m.evictions.Load()
}

// Stats returns a snapshot of the memo's counters.
func (m *BoundedIdentity[K, V]) Stats() Stats {
	return m.stats.snapshot()
}
