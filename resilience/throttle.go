package resilience

import (
	"sync/atomic"

	"github.com/jonwraymond/simcache/cache"
	"github.com/jonwraymond/simcache/clock"
	"github.com/jonwraymond/simcache/intercept"
)

// ThrottleConfig configures a Throttle.
type ThrottleConfig[A any, K comparable] struct {
	// Name identifies the throttled operation.
	Name string

	// Source supplies the current tick.
	Source clock.Source

	// Policy is read on every call. IntervalTicks is the minimum number of
	// ticks that must pass after a real call before the next one for the
	// same key. A disabled policy lets every call through.
	Policy *cache.Policy

	// Key maps call arguments to the throttled subject.
	Key func(A) K

	// Exempt forces a call through without recording it. Optional.
	Exempt func(A) bool
}

// ThrottleStats is a snapshot of a throttle's counters.
type ThrottleStats struct {
	Allowed    uint64
	Suppressed uint64
	Exempted   uint64
	Bypassed   uint64
	Tracked    int64
}

// Throttle gates an operation to one real call per key per interval.
//
// Contract:
//   - Concurrency: single simulation thread only; Stats may be read from any
//     goroutine.
//   - Window: a call at tick now is allowed when the key has no recorded
//     call or now > last + IntervalTicks.
type Throttle[A any, K comparable] struct {
	name   string
	src    clock.Source
	policy *cache.Policy
	key    func(A) K
	exempt func(A) bool
	last   map[K]clock.Tick

	allowed    atomic.Uint64
	suppressed atomic.Uint64
	exempted   atomic.Uint64
	bypassed   atomic.Uint64
	tracked    atomic.Int64
}

// NewThrottle creates a throttle.
func NewThrottle[A any, K comparable](config ThrottleConfig[A, K]) (*Throttle[A, K], error) {
	if config.Source == nil {
		return nil, ErrNilSource
	}
	if config.Policy == nil {
		return nil, ErrNilPolicy
	}
	if config.Key == nil {
		return nil, ErrNilKeyFunc
	}
	if err := config.Policy.Validate(); err != nil {
		return nil, err
	}
	return &Throttle[A, K]{
		name:   config.Name,
		src:    config.Source,
		policy: config.Policy,
		key:    config.Key,
		exempt: config.Exempt,
		last:   make(map[K]clock.Tick),
	}, nil
}

// Name returns the throttled operation's name.
func (t *Throttle[A, K]) Name() string {
	return t.name
}

// Policy returns the live policy.
func (t *Throttle[A, K]) Policy() *cache.Policy {
	return t.policy
}

// Allow reports whether the real call should run for args, recording the
// call when it does.
func (t *Throttle[A, K]) Allow(args A) bool {
	if !t.policy.ShouldCache() {
		t.bypassed.Add(1)
		return true
	}
	if t.exempt != nil && t.exempt(args) {
		t.exempted.Add(1)
		return true
	}

	k := t.key(args)
	now := t.src.Now()
	last, seen := t.last[k]
	if seen && now <= last+clock.Tick(t.policy.IntervalTicks) {
		t.suppressed.Add(1)
		return false
	}
	if !seen {
		t.tracked.Add(1)
	}
	t.last[k] = now
	t.allowed.Add(1)
	return true
}

// Execute runs op if Allow permits and reports whether it ran.
func (t *Throttle[A, K]) Execute(args A, op func(A)) bool {
	if !t.Allow(args) {
		return false
	}
	op(args)
	return true
}

// ExecuteE runs op if Allow permits. A suppressed call returns ErrThrottled.
func (t *Throttle[A, K]) ExecuteE(args A, op func(A) error) error {
	if !t.Allow(args) {
		return ErrThrottled
	}
	return op(args)
}

// Wrap returns op gated by the throttle.
func (t *Throttle[A, K]) Wrap(op func(A)) func(A) {
	return func(args A) {
		t.Execute(args, op)
	}
}

// Forget drops the recorded call for args so the next call runs.
func (t *Throttle[A, K]) Forget(args A) {
	k := t.key(args)
	if _, ok := t.last[k]; ok {
		delete(t.last, k)
		t.tracked.Add(-1)
	}
}

// Clear drops every recorded call.
func (t *Throttle[A, K]) Clear() {
	clear(t.last)
	t.tracked.Store(0)
}

// Prune drops recorded calls whose window has closed at the current tick.
// The next call for a pruned key runs, as it would have anyway.
func (t *Throttle[A, K]) Prune() int {
	now := t.src.Now()
	window := clock.Tick(t.policy.IntervalTicks)
	n := 0
	for k, last := range t.last {
		if now > last+window {
			delete(t.last, k)
			n++
		}
	}
	t.tracked.Add(-int64(n))
	return n
}

// Len returns the number of keys with a recorded call.
func (t *Throttle[A, K]) Len() int {
	return len(t.last)
}

// Stats returns a snapshot of the throttle's counters.
func (t *Throttle[A, K]) Stats() ThrottleStats {
	return ThrottleStats{
		Allowed:    t.allowed.Load(),
		Suppressed: t.suppressed.Load(),
		Exempted:   t.exempted.Load(),
		Bypassed:   t.bypassed.Load(),
		Tracked:    t.tracked.Load(),
	}
}

// Hook adapts t to an interception chain. Suppressed calls short-circuit
// with suppressed as the result.
func Hook[A any, K comparable, V any](t *Throttle[A, K], suppressed V) intercept.Hook[A, V] {
	return intercept.HookFuncs[A, V]{
		BeforeFunc: func(args A) (V, bool, any) {
			if t.Allow(args) {
				var zero V
				return zero, false, nil
			}
			return suppressed, true, nil
		},
	}
}
