package intercept

import (
	"fmt"
	"sort"
)

type registration[A, V any] struct {
	name   string
	hook   Hook[A, V]
	before Priority
	after  Priority
	seq    int
}

// Chain wraps a target function with ordered hooks.
//
// Contract:
//   - Concurrency: not safe for concurrent Use; Call may run concurrently only
//     if every hook and the target tolerate it.
//   - Ordering: Before hooks run by descending before-priority, After hooks by
//     descending after-priority; ties keep registration order.
type Chain[A, V any] struct {
	name        string
	target      func(A) V
	beforeOrder []*registration[A, V]
	afterOrder  []*registration[A, V]
	names       map[string]struct{}
}

// NewChain creates a chain around target.
func NewChain[A, V any](name string, target func(A) V) *Chain[A, V] {
	return &Chain[A, V]{
		name:   name,
		target: target,
		names:  make(map[string]struct{}),
	}
}

// Name returns the chain's operation name.
func (c *Chain[A, V]) Name() string {
	return c.name
}

// Use registers a hook with its before and after priorities.
func (c *Chain[A, V]) Use(name string, hook Hook[A, V], before, after Priority) error {
	if name == "" {
		return ErrEmptyHookName
	}
	if hook == nil {
		return ErrNilHook
	}
	if _, ok := c.names[name]; ok {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateHook, name, c.name)
	}
	reg := &registration[A, V]{
		name:   name,
		hook:   hook,
		before: before,
		after:  after,
		seq:    len(c.names),
	}
	c.names[name] = struct{}{}
	c.beforeOrder = append(c.beforeOrder, reg)
	c.afterOrder = append(c.afterOrder, reg)

	sort.SliceStable(c.beforeOrder, func(i, j int) bool {
		return c.beforeOrder[i].before > c.beforeOrder[j].before
	})
	sort.SliceStable(c.afterOrder, func(i, j int) bool {
		return c.afterOrder[i].after > c.afterOrder[j].after
	})
	return nil
}

// Hooks returns hook names in before-order.
func (c *Chain[A, V]) Hooks() []string {
	names := make([]string, len(c.beforeOrder))
	for i, r := range c.beforeOrder {
		names[i] = r.name
	}
	return names
}

// Call runs the hooks and, unless a Before hook handled the call, the target.
func (c *Chain[A, V]) Call(args A) V {
	var (
		result  V
		handled bool
		states  []any
	)

	for _, r := range c.beforeOrder {
		res, ok, state := r.hook.Before(args)
		if state != nil {
			if states == nil {
				states = make([]any, len(c.beforeOrder))
			}
			states[r.seq] = state
		}
		if ok {
			result = res
			handled = true
			break
		}
	}

	if !handled {
		result = c.target(args)
	}

	for _, r := range c.afterOrder {
		var state any
		if states != nil {
			state = states[r.seq]
		}
		r.hook.After(args, result, state)
	}
	return result
}

// Func returns Call as a plain function, for call sites that invoke the
// wrapper directly.
func (c *Chain[A, V]) Func() func(A) V {
	return c.Call
}
