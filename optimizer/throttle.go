package optimizer

import (
	"github.com/jonwraymond/simcache/cache"
	"github.com/jonwraymond/simcache/config"
	"github.com/jonwraymond/simcache/resilience"
)

// ThrottleOp limits a side effect to one run per key per interval.
type ThrottleOp[A any, K comparable] struct {
	throttle *resilience.Throttle[A, K]
	run      func(A)
}

// RegisterThrottle gates run under name. The policy interval is the
// minimum number of ticks between runs for one key. Calls for which exempt
// returns true always run and are not recorded; exempt may be nil.
func RegisterThrottle[A any, K comparable](o *Optimizer, name string, key func(A) K, exempt func(A) bool, run func(A)) (*ThrottleOp[A, K], error) {
	if run == nil {
		return nil, ErrNilFunc
	}
	policy, src, err := o.claim(name, config.PolicySetting{Enabled: true, Interval: cache.DefaultIntervalTicks})
	if err != nil {
		return nil, err
	}
	t, err := resilience.NewThrottle(resilience.ThrottleConfig[A, K]{
		Name:   name,
		Source: src,
		Policy: policy,
		Key:    key,
		Exempt: exempt,
	})
	if err != nil {
		o.release(name)
		return nil, err
	}
	op := &ThrottleOp[A, K]{throttle: t, run: run}
	o.commit(name, op)
	return op, nil
}

// Name returns the operation name.
func (op *ThrottleOp[A, K]) Name() string {
	return op.throttle.Name()
}

// Call runs the side effect for args unless it ran for the same key within
// the interval, and reports whether it ran.
func (op *ThrottleOp[A, K]) Call(args A) bool {
	return op.throttle.Execute(args, op.run)
}

// Forget lets the next call for args run.
func (op *ThrottleOp[A, K]) Forget(args A) {
	op.throttle.Forget(args)
}

// Clear forgets every recorded run.
func (op *ThrottleOp[A, K]) Clear() {
	op.throttle.Clear()
}

// Len returns the number of keys with a recorded run.
func (op *ThrottleOp[A, K]) Len() int {
	return op.throttle.Len()
}

// Stats returns the throttle's counters.
func (op *ThrottleOp[A, K]) Stats() resilience.ThrottleStats {
	return op.throttle.Stats()
}

func (op *ThrottleOp[A, K]) policy() *cache.Policy { return op.throttle.Policy() }
func (op *ThrottleOp[A, K]) clear()                { op.throttle.Clear() }
func (op *ThrottleOp[A, K]) prune() int            { return op.throttle.Prune() }

// stats maps throttle counters onto cache counters: a suppressed run is a
// hit, an allowed run a miss.
func (op *ThrottleOp[A, K]) stats() cache.Stats {
	s := op.throttle.Stats()
	return cache.Stats{
		Hits:     s.Suppressed,
		Misses:   s.Allowed,
		Bypassed: s.Bypassed + s.Exempted,
		Entries:  s.Tracked,
	}
}
