package component

import (
	"reflect"
	"sync/atomic"

	"github.com/jonwraymond/simcache/cache"
)

type tableKey struct {
	cat Category
	typ reflect.Type
}

// store is the type-erased view of one per-type table.
type store interface {
	clear()
	size() int
	forget(key any)
}

type identityStore[K comparable, T any] struct {
	memo *cache.Identity[K, T]
}

func (s identityStore[K, T]) clear() {
	s.memo.Clear()
}

func (s identityStore[K, T]) size() int {
	return s.memo.Len()
}

func (s identityStore[K, T]) forget(key any) {
	if k, ok := key.(K); ok && hashable(k) {
		s.memo.Invalidate(k)
	}
}

// singleton remembers one answer for the currently active owner.
type singleton[T any] struct {
	owner Owner
	value T
	found bool
}

func (s *singleton[T]) clear() {
	*s = singleton[T]{}
}

func (s *singleton[T]) size() int {
	if s.owner == nil {
		return 0
	}
	return 1
}

func (s *singleton[T]) forget(key any) {
	if o, ok := key.(Owner); ok && hashable(o) && o == s.owner {
		s.clear()
	}
}

// Stats is a snapshot of lookup counters.
type Stats struct {
	Lookups uint64
	Scans   uint64
	Tables  int
	Entries int
}

// Cache holds one table per (category, component type).
//
// Contract:
//   - Concurrency: single simulation thread only; Lookups and Scans counters
//     may be read from any goroutine through Stats.
//   - Negative caching: an owner without a matching component is scanned
//     once and answered "absent" from then on.
//   - Invalidation: ClearAll drops every table; Invalidate drops one owner
//     from every table of a category.
type Cache struct {
	tables   map[tableKey]store
	disabled bool

	lookups atomic.Uint64
	scans   atomic.Uint64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{tables: make(map[tableKey]store)}
}

// SetEnabled turns caching on or off. A disabled cache scans on every
// lookup and keeps no answers.
func (c *Cache) SetEnabled(on bool) {
	c.disabled = !on
	if !on {
		c.ClearAll()
	}
}

// Enabled reports whether answers are cached.
func (c *Cache) Enabled() bool {
	return !c.disabled
}

// ClearAll drops every table. Call it on session boundaries and whenever
// the set of component types may have changed.
func (c *Cache) ClearAll() {
	clear(c.tables)
}

// Invalidate forgets every cached answer for one owner of category cat.
// key is the owner's id for entities, conditions and world objects, and the
// owner itself for maps, games and worlds.
func (c *Cache) Invalidate(cat Category, key any) {
	for k, s := range c.tables {
		if k.cat == cat {
			s.forget(key)
		}
	}
}

// Len returns the number of cached answers across all tables.
func (c *Cache) Len() int {
	n := 0
	for _, s := range c.tables {
		n += s.size()
	}
	return n
}

// Stats returns a snapshot of the cache's counters. Tables and Entries
// are read from the owning thread's maps and are only exact there.
func (c *Cache) Stats() Stats {
	return Stats{
		Lookups: c.lookups.Load(),
		Scans:   c.scans.Load(),
		Tables:  len(c.tables),
		Entries: c.Len(),
	}
}

// Scans returns how many owner collections have been scanned.
func (c *Cache) Scans() uint64 {
	return c.scans.Load()
}

func identityTable[K comparable, T any](c *Cache, cat Category) *cache.Identity[K, T] {
	k := tableKey{cat: cat, typ: reflect.TypeFor[T]()}
	if s, ok := c.tables[k]; ok {
		return s.(identityStore[K, T]).memo
	}
	memo := cache.NewIdentity[K, T]()
	c.tables[k] = identityStore[K, T]{memo: memo}
	return memo
}

func singletonSlot[T any](c *Cache, cat Category) *singleton[T] {
	k := tableKey{cat: cat, typ: reflect.TypeFor[T]()}
	if s, ok := c.tables[k]; ok {
		return s.(*singleton[T])
	}
	s := &singleton[T]{}
	c.tables[k] = s
	return s
}

func lookup[K comparable, T any](c *Cache, cat Category, key K, o Owner) (T, bool) {
	c.lookups.Add(1)
	if c.disabled {
		c.scans.Add(1)
		return scan[T](o)
	}
	return identityTable[K, T](c, cat).Resolve(key, func() (T, bool) {
		c.scans.Add(1)
		return scan[T](o)
	})
}

// EntityComp returns e's component of type T, keyed by e's id.
func EntityComp[T any](c *Cache, e Entity) (T, bool) {
	return lookup[int, T](c, CategoryEntity, e.ID(), e)
}

// TryEntityComp is EntityComp for values that may not be entities. Values
// that are not are answered absent without touching the cache.
func TryEntityComp[T any](c *Cache, thing any) (T, bool) {
	e, ok := thing.(Entity)
	if !ok {
		var zero T
		return zero, false
	}
	return EntityComp[T](c, e)
}

// ConditionComp returns cond's component of type T, keyed by its load id.
// Conditions that carry no components are remembered as absent.
func ConditionComp[T any](c *Cache, cond Condition) (T, bool) {
	o, ok := cond.(Owner)
	if !ok {
		o = noComponents{}
	}
	return lookup[int, T](c, CategoryCondition, cond.LoadID(), o)
}

// WorldObjectComp returns w's component of type T, keyed by w's id.
func WorldObjectComp[T any](c *Cache, w WorldObject) (T, bool) {
	return lookup[int, T](c, CategoryWorldObject, w.ID(), w)
}

// MapComp returns m's component of type T, keyed by m itself. Maps whose
// dynamic type is not comparable are scanned on every call.
func MapComp[T any](c *Cache, m Owner) (T, bool) {
	if !hashable(m) {
		return uncached[T](c, m)
	}
	return lookup[Owner, T](c, CategoryMapObject, m, m)
}

// GameComp returns the active game's component of type T. The answer is
// re-resolved when game differs from the last game asked about, and never
// remembered when game's dynamic type is not comparable.
func GameComp[T any](c *Cache, game Owner) (T, bool) {
	return singletonLookup[T](c, CategoryGame, game)
}

// WorldComp returns the active world's component of type T. The answer is
// re-resolved when world differs from the last world asked about. WorldComp
// shares GameComp's rule for owners that are not comparable.
func WorldComp[T any](c *Cache, world Owner) (T, bool) {
	return singletonLookup[T](c, CategoryWorld, world)
}

func singletonLookup[T any](c *Cache, cat Category, o Owner) (T, bool) {
	if !hashable(o) {
		return uncached[T](c, o)
	}
	c.lookups.Add(1)
	if c.disabled {
		c.scans.Add(1)
		return scan[T](o)
	}
	s := singletonSlot[T](c, cat)
	if s.owner == nil || s.owner != o {
		c.scans.Add(1)
		s.value, s.found = scan[T](o)
		s.owner = o
	}
	return s.value, s.found
}

// uncached answers a lookup for an owner that cannot be used as a key.
func uncached[T any](c *Cache, o Owner) (T, bool) {
	c.lookups.Add(1)
	c.scans.Add(1)
	return scan[T](o)
}

// hashable reports whether v can be a map key or compared with ==.
func hashable(v any) bool {
	t := reflect.TypeOf(v)
	return t == nil || t.Comparable()
}

type noComponents struct{}

func (noComponents) Components() []any { return nil }
