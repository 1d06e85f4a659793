package optimizer

import (
	"github.com/jonwraymond/simcache/cache"
	"github.com/jonwraymond/simcache/clock"
	"github.com/jonwraymond/simcache/config"
	"github.com/jonwraymond/simcache/intercept"
	"github.com/jonwraymond/simcache/observe"
)

// Operation is a memoized function registered with an Optimizer.
type Operation[A any, K comparable, V any] struct {
	name  string
	memo  *cache.Memoizer[A, K, V]
	chain *intercept.Chain[A, V]
}

// Register memoizes fn under name, refreshing on the tick counter. The
// policy comes from the settings, or cache.DefaultPolicy for names the
// settings do not know.
func Register[A any, K comparable, V any](o *Optimizer, name string, key func(A) K, fn func(A) V) (*Operation[A, K, V], error) {
	return register(o, name, config.AxisTick, key, fn)
}

// RegisterFrames is Register on the frame counter, for values that change
// with rendering rather than simulation.
func RegisterFrames[A any, K comparable, V any](o *Optimizer, name string, key func(A) K, fn func(A) V) (*Operation[A, K, V], error) {
	return register(o, name, config.AxisFrame, key, fn)
}

func register[A any, K comparable, V any](o *Optimizer, name, axis string, key func(A) K, fn func(A) V) (*Operation[A, K, V], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	def := config.PolicySetting{Enabled: true, Interval: cache.DefaultIntervalTicks}
	if axis == config.AxisFrame {
		def.Axis = axis
	}
	policy, src, err := o.claim(name, def)
	if err != nil {
		return nil, err
	}
	op, err := newOperation(o, name, axis, src, policy, key, fn)
	if err != nil {
		o.release(name)
		return nil, err
	}
	o.commit(name, op)
	return op, nil
}

func newOperation[A any, K comparable, V any](o *Optimizer, name, axis string, src clock.Source, policy *cache.Policy, key func(A) K, fn func(A) V) (*Operation[A, K, V], error) {
	memo, err := cache.NewMemoizer[A, K, V](name, src, policy, key)
	if err != nil {
		return nil, err
	}
	chain := intercept.NewChain(name, fn)
	if err := cache.Attach(chain, memo); err != nil {
		return nil, err
	}
	if o.slowCall > 0 {
		meta := observe.OpMeta{Name: name, Kind: observe.KindMemo, Axis: axis}
		hook := observe.TimingHook[A, V](meta, o.slowCall, o.runs, o.logger)
		if err := chain.Use("timing", hook, intercept.PriorityNormal, intercept.PriorityNormal); err != nil {
			return nil, err
		}
	}
	return &Operation[A, K, V]{name: name, memo: memo, chain: chain}, nil
}

// Name returns the operation name.
func (op *Operation[A, K, V]) Name() string {
	return op.name
}

// Call returns the cached result for args or computes and stores it.
func (op *Operation[A, K, V]) Call(args A) V {
	return op.chain.Call(args)
}

// Func returns Call as a plain function.
func (op *Operation[A, K, V]) Func() func(A) V {
	return op.chain.Call
}

// Use adds a hook around the operation. The caching hook always runs first,
// so hooks registered here see only real computations in Before and every
// result in After.
func (op *Operation[A, K, V]) Use(name string, hook intercept.Hook[A, V], before, after intercept.Priority) error {
	return op.chain.Use(name, hook, before, after)
}

// Invalidate drops the cached result for args, for use when the state it
// was computed from changes structurally.
func (op *Operation[A, K, V]) Invalidate(args A) {
	op.memo.Invalidate(args)
}

// Clear drops every cached result.
func (op *Operation[A, K, V]) Clear() {
	op.memo.Clear()
}

// Len returns the number of cached results.
func (op *Operation[A, K, V]) Len() int {
	return op.memo.Table().Len()
}

// Policy returns a copy of the live policy.
func (op *Operation[A, K, V]) Policy() cache.Policy {
	return *op.memo.Policy()
}

// Stats returns the table's counters.
func (op *Operation[A, K, V]) Stats() cache.Stats {
	return op.memo.Table().Stats()
}

func (op *Operation[A, K, V]) policy() *cache.Policy { return op.memo.Policy() }
func (op *Operation[A, K, V]) clear()                { op.memo.Clear() }
func (op *Operation[A, K, V]) prune() int            { return op.memo.Prune() }
func (op *Operation[A, K, V]) stats() cache.Stats    { return op.Stats() }
