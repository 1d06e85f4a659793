package cache

import (
	"github.com/jonwraymond/simcache/clock"
	"github.com/jonwraymond/simcache/intercept"
)

// Ticket records that a Before call owes a store. The zero Ticket owes
// nothing.
type Ticket[K comparable] struct {
	key   K
	owing bool
}

// Owing reports whether After must store the computed result.
func (t Ticket[K]) Owing() bool {
	return t.owing
}

// Key returns the key derived by Before.
func (t Ticket[K]) Key() K {
	return t.key
}

// Memoizer caches one operation's results keyed by its arguments.
//
// A call runs in two phases. Before derives the key and either returns a
// fresh cached result (handled) or a Ticket; After stores the real result
// under the ticket's key, stamped with the tick at which After runs.
//
// Contract:
//   - Concurrency: single simulation thread only.
//   - Policy: read on every call, so changes apply to the next invocation.
//   - Disabled: Before never handles and never reads the table; After never
//     writes. The operation behaves as if no cache existed.
type Memoizer[A any, K comparable, V any] struct {
	name   string
	table  *Table[K, V]
	policy *Policy
	key    func(A) K
}

// NewMemoizer creates a memoizer for the named operation.
func NewMemoizer[A any, K comparable, V any](name string, src clock.Source, policy *Policy, key func(A) K) (*Memoizer[A, K, V], error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if policy == nil {
		return nil, ErrNilPolicy
	}
	if key == nil {
		return nil, ErrNilKeyFunc
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Memoizer[A, K, V]{
		name:   name,
		table:  NewTable[K, V](src),
		policy: policy,
		key:    key,
	}, nil
}

// Name returns the operation name.
func (m *Memoizer[A, K, V]) Name() string {
	return m.name
}

// Table returns the backing table.
func (m *Memoizer[A, K, V]) Table() *Table[K, V] {
	return m.table
}

// Policy returns the live policy.
func (m *Memoizer[A, K, V]) Policy() *Policy {
	return m.policy
}

// Before looks up the result for args. handled is true when a fresh value
// was found and the real computation must be skipped.
func (m *Memoizer[A, K, V]) Before(args A) (result V, ticket Ticket[K], handled bool) {
	if !m.policy.ShouldCache() {
		m.table.stats.bypassed.Add(1)
		return result, ticket, false
	}
	k := m.key(args)
	if v, ok := m.table.TryGetFresh(k); ok {
		return v, ticket, true
	}
	return result, Ticket[K]{key: k, owing: true}, false
}

// After stores result if the ticket owes a store.
func (m *Memoizer[A, K, V]) After(ticket Ticket[K], result V) {
	if !ticket.owing {
		return
	}
	m.table.Store(ticket.key, result, m.policy.IntervalTicks)
}

// Wrap returns fn with memoization applied.
func (m *Memoizer[A, K, V]) Wrap(fn func(A) V) func(A) V {
	return func(args A) V {
		v, ticket, handled := m.Before(args)
		if handled {
			return v
		}
		v = fn(args)
		m.After(ticket, v)
		return v
	}
}

// WrapE returns fn with memoization applied. Failed calls are not stored.
func (m *Memoizer[A, K, V]) WrapE(fn func(A) (V, error)) func(A) (V, error) {
	return func(args A) (V, error) {
		v, ticket, handled := m.Before(args)
		if handled {
			return v, nil
		}
		v, err := fn(args)
		if err != nil {
			return v, err
		}
		m.After(ticket, v)
		return v, nil
	}
}

// Invalidate drops the cached result for args.
func (m *Memoizer[A, K, V]) Invalidate(args A) {
	m.table.Invalidate(m.key(args))
}

// Clear drops every cached result.
func (m *Memoizer[A, K, V]) Clear() {
	m.table.Clear()
}

// Prune drops results that are stale at the current tick. Permanent
// policies never produce stale results, so their table is left alone.
func (m *Memoizer[A, K, V]) Prune() int {
	if m.policy.Permanent() {
		return 0
	}
	return m.table.Prune()
}

// Hook adapts the memoizer to an interception chain. Register it with
// Use(name, hook, BeforePriority, AfterPriority) so it gets the first chance
// to short-circuit and stores only after other observers have run.
func (m *Memoizer[A, K, V]) Hook() intercept.Hook[A, V] {
	return memoHook[A, K, V]{m: m}
}

// Priorities the memoizing hook is registered with.
const (
	BeforePriority = intercept.PriorityFirst
	AfterPriority  = intercept.PriorityLast
)

type memoHook[A any, K comparable, V any] struct {
	m *Memoizer[A, K, V]
}

func (h memoHook[A, K, V]) Before(args A) (V, bool, any) {
	v, ticket, handled := h.m.Before(args)
	if handled || !ticket.owing {
		return v, handled, nil
	}
	return v, false, ticket
}

func (h memoHook[A, K, V]) After(_ A, result V, state any) {
	if ticket, ok := state.(Ticket[K]); ok {
		h.m.After(ticket, result)
	}
}

// Attach registers the memoizer on chain under its own name.
func Attach[A any, K comparable, V any](chain *intercept.Chain[A, V], m *Memoizer[A, K, V]) error {
	return chain.Use(m.name, m.Hook(), BeforePriority, AfterPriority)
}
