package cache

import (
	"errors"
	"testing"
)

func TestIdentity_NegativeCaching(t *testing.T) {
	m := NewIdentity[string, int]()
	scans := 0
	scan := func() (int, bool) {
		scans++
		return 0, false
	}

	for i := 0; i < 2; i++ {
		if _, found := m.Resolve("wall", scan); found {
			t.Errorf("Resolve() found = true, want false")
		}
	}
	if scans != 1 {
		t.Errorf("scans = %d, want 1", scans)
	}
	if _, found, cached := m.Get("wall"); !cached || found {
		t.Errorf("Get() = (found %v, cached %v), want (false, true)", found, cached)
	}
}

func TestIdentity_PositiveAndInvalidate(t *testing.T) {
	m := NewIdentity[string, int]()
	m.Put("bed", 3, true)

	if v, found, cached := m.Get("bed"); !cached || !found || v != 3 {
		t.Errorf("Get() = (%d, %v, %v), want (3, true, true)", v, found, cached)
	}
	m.Invalidate("bed")
	if _, _, cached := m.Get("bed"); cached {
		t.Error("Get() after Invalidate reported cached")
	}
	m.Put("a", 1, true)
	m.Put("b", 2, true)
	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	s := m.Stats()
	if s.Invalidations != 1 || s.Clears != 1 || s.Entries != 0 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestBoundedIdentity_Evicts(t *testing.T) {
	m, err := NewBoundedIdentity[int, string](2)
	if err != nil {
		t.Fatalf("NewBoundedIdentity() error = %v", err)
	}
	m.Put(1, "one", true)
	m.Put(2, "two", true)
	m.Get(1)
	m.Put(3, "", false)

	if _, _, cached := m.Get(2); cached {
		t.Error("least recently used key was not evicted")
	}
	if v, found, cached := m.Get(1); !cached || !found || v != "one" {
		t.Errorf("Get(1) = (%q, %v, %v), want (one, true, true)", v, found, cached)
	}
	if _, found, cached := m.Get(3); !cached || found {
		t.Errorf("Get(3) = (found %v, cached %v), want negative hit", found, cached)
	}
	if m.Evictions() != 1 {
		t.Errorf("Evictions() = %d, want 1", m.Evictions())
	}

	m.Invalidate(1)
	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	if m.Evictions() != 1 {
		t.Errorf("Evictions() after Clear = %d, want 1", m.Evictions())
	}
}

func TestBoundedIdentity_Resolve(t *testing.T) {
	m, err := NewBoundedIdentity[int, int](8)
	if err != nil {
		t.Fatalf("NewBoundedIdentity() error = %v", err)
	}
	calls := 0
	fn := func() (int, bool) {
		calls++
		return 10, true
	}
	m.Resolve(1, fn)
	v, found := m.Resolve(1, fn)
	if v != 10 || !found || calls != 1 {
		t.Errorf("Resolve() = (%d, %v) with %d calls, want (10, true) with 1", v, found, calls)
	}
}

func TestBoundedIdentity_InvalidCapacity(t *testing.T) {
	if _, err := NewBoundedIdentity[int, int](0); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("NewBoundedIdentity(0) error = %v, want ErrInvalidCapacity", err)
	}
}
