package intercept

// Priority orders hooks on one chain. Higher values run earlier.
type Priority int

const (
	PriorityLast   Priority = 0
	PriorityLow    Priority = 200
	PriorityNormal Priority = 400
	PriorityHigh   Priority = 600
	PriorityFirst  Priority = 800
)

// Hook observes one intercepted call.
//
// Contract:
//   - Before returns handled=true to substitute result and suppress the target.
//     The returned state is handed back to the same hook's After.
//   - After runs for every call, including short-circuited ones. state is nil
//     when the hook's Before did not run.
//   - Concurrency: hooks run on the caller's goroutine; no locking is implied.
type Hook[A, V any] interface {
	Before(args A) (result V, handled bool, state any)
	After(args A, result V, state any)
}

// HookFuncs adapts a pair of functions to Hook. Either may be nil.
type HookFuncs[A, V any] struct {
	BeforeFunc func(args A) (V, bool, any)
	AfterFunc  func(args A, result V, state any)
}

// Before calls BeforeFunc when set.
func (h HookFuncs[A, V]) Before(args A) (V, bool, any) {
	if h.BeforeFunc == nil {
		var zero V
		return zero, false, nil
	}
	return h.BeforeFunc(args)
}

// After calls AfterFunc when set.
func (h HookFuncs[A, V]) After(args A, result V, state any) {
	if h.AfterFunc != nil {
		h.AfterFunc(args, result, state)
	}
}
