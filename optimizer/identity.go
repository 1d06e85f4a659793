package optimizer

import (
	"github.com/jonwraymond/simcache/cache"
	"github.com/jonwraymond/simcache/config"
)

type identityMemo[K comparable, V any] interface {
	Resolve(key K, fn func() (V, bool)) (V, bool)
	Invalidate(key K)
	Clear()
	Len() int
	Stats() cache.Stats
}

// IdentityOp memoizes a pure lookup until the session ends. A lookup that
// found nothing is remembered as well.
type IdentityOp[K comparable, V any] struct {
	name   string
	memo   identityMemo[K, V]
	pol    *cache.Policy
	lookup func(K) (V, bool)
}

// RegisterIdentity memoizes lookup under name with no size limit. Only the
// policy's Enabled flag is used; entries never expire.
func RegisterIdentity[K comparable, V any](o *Optimizer, name string, lookup func(K) (V, bool)) (*IdentityOp[K, V], error) {
	return registerIdentity(o, name, lookup, cache.NewIdentity[K, V]())
}

// RegisterBoundedIdentity is RegisterIdentity holding at most size answers,
// for lookups keyed by an open-ended set such as text.
func RegisterBoundedIdentity[K comparable, V any](o *Optimizer, name string, size int, lookup func(K) (V, bool)) (*IdentityOp[K, V], error) {
	memo, err := cache.NewBoundedIdentity[K, V](size)
	if err != nil {
		return nil, err
	}
	return registerIdentity(o, name, lookup, memo)
}

func registerIdentity[K comparable, V any](o *Optimizer, name string, lookup func(K) (V, bool), memo identityMemo[K, V]) (*IdentityOp[K, V], error) {
	if lookup == nil {
		return nil, ErrNilFunc
	}
	policy, _, err := o.claim(name, config.PolicySetting{Enabled: true})
	if err != nil {
		return nil, err
	}
	op := &IdentityOp[K, V]{name: name, memo: memo, pol: policy, lookup: lookup}
	o.commit(name, op)
	return op, nil
}

// Name returns the operation name.
func (op *IdentityOp[K, V]) Name() string {
	return op.name
}

// Call returns the memoized answer for key, calling the lookup on first
// use. A disabled policy calls the lookup every time.
func (op *IdentityOp[K, V]) Call(key K) (V, bool) {
	if !op.pol.ShouldCache() {
		return op.lookup(key)
	}
	return op.memo.Resolve(key, func() (V, bool) {
		return op.lookup(key)
	})
}

// Invalidate forgets the answer for key.
func (op *IdentityOp[K, V]) Invalidate(key K) {
	op.memo.Invalidate(key)
}

// Clear forgets every answer.
func (op *IdentityOp[K, V]) Clear() {
	op.memo.Clear()
}

// Len returns the number of memoized answers.
func (op *IdentityOp[K, V]) Len() int {
	return op.memo.Len()
}

// Enabled reports whether answers are memoized.
func (op *IdentityOp[K, V]) Enabled() bool {
	return op.pol.ShouldCache()
}

// Stats returns the memo's counters.
func (op *IdentityOp[K, V]) Stats() cache.Stats {
	return op.memo.Stats()
}

func (op *IdentityOp[K, V]) policy() *cache.Policy { return op.pol }
func (op *IdentityOp[K, V]) clear()                { op.memo.Clear() }
func (op *IdentityOp[K, V]) prune() int            { return 0 }
func (op *IdentityOp[K, V]) stats() cache.Stats    { return op.memo.Stats() }
