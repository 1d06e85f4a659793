package health

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// DefaultTimeout bounds one Report when AggregatorConfig.Timeout is unset.
const DefaultTimeout = 5 * time.Second

// AggregatorConfig configures an Aggregator. The zero value runs checks in
// parallel under DefaultTimeout.
type AggregatorConfig struct {
	Timeout time.Duration

	// Sequential runs checks one at a time in registration order.
	Sequential bool
}

type registration struct {
	name    string
	checker Checker
}

// Aggregator runs a set of named checkers and folds them into one report.
type Aggregator struct {
	config AggregatorConfig

	mu   sync.RWMutex
	regs []registration
}

// NewAggregator returns an empty Aggregator.
func NewAggregator(config ...AggregatorConfig) *Aggregator {
	var cfg AggregatorConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Aggregator{config: cfg}
}

func (a *Aggregator) indexOf(name string) int {
	return slices.IndexFunc(a.regs, func(r registration) bool { return r.name == name })
}

// Register adds checker under name. Registering a name twice replaces the
// earlier checker and keeps its position.
func (a *Aggregator) Register(name string, checker Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if i := a.indexOf(name); i >= 0 {
		a.regs[i].checker = checker
		return
	}
	a.regs = append(a.regs, registration{name: name, checker: checker})
}

// Unregister removes the checker called name, if any.
func (a *Aggregator) Unregister(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if i := a.indexOf(name); i >= 0 {
		a.regs = slices.Delete(a.regs, i, i+1)
	}
}

// CheckerNames returns the registered names in registration order.
func (a *Aggregator) CheckerNames() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, len(a.regs))
	for i, r := range a.regs {
		names[i] = r.name
	}
	return names
}

// Check runs the checker called name.
func (a *Aggregator) Check(ctx context.Context, name string) (Result, error) {
	a.mu.RLock()
	i := a.indexOf(name)
	var checker Checker
	if i >= 0 {
		checker = a.regs[i].checker
	}
	a.mu.RUnlock()

	if checker == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrCheckerNotFound, name)
	}
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()
	return runCheck(ctx, checker), nil
}

// NamedResult pairs a Result with the name its checker was registered under.
type NamedResult struct {
	Name string
	Result
}

// Report is the outcome of running every registered checker.
type Report struct {
	Status Status
	Checks []NamedResult
}

// Result returns the result for name.
func (r Report) Result(name string) (Result, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c.Result, true
		}
	}
	return Result{}, false
}

// Count returns how many checks reported s.
func (r Report) Count(s Status) int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == s {
			n++
		}
	}
	return n
}

// Report runs every registered checker and returns their results in
// registration order along with the worst status.
func (a *Aggregator) Report(ctx context.Context) Report {
	a.mu.RLock()
	regs := slices.Clone(a.regs)
	a.mu.RUnlock()

	report := Report{Checks: make([]NamedResult, len(regs))}
	if len(regs) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	run := func(i int) {
		report.Checks[i] = NamedResult{Name: regs[i].name, Result: runCheck(ctx, regs[i].checker)}
	}
	if a.config.Sequential {
		for i := range regs {
			run(i)
		}
	} else {
		var wg sync.WaitGroup
		for i := range regs {
			wg.Go(func() { run(i) })
		}
		wg.Wait()
	}

	for _, c := range report.Checks {
		report.Status = report.Status.Worse(c.Status)
	}
	return report
}

// runCheck runs checker on its own goroutine so a check that ignores ctx
// cannot hold up the report past the deadline.
func runCheck(ctx context.Context, checker Checker) Result {
	start := time.Now()
	done := make(chan Result, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				r := Unhealthy(fmt.Sprintf("check panicked: %v", p), ErrCheckPanicked)
				r.Duration = time.Since(start)
				done <- r
			}
		}()
		r := checker.Check(ctx)
		r.Duration = time.Since(start)
		if r.Timestamp.IsZero() {
			r.Timestamp = start
		}
		done <- r
	}()

	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		r := Unhealthy("check timed out", ErrCheckTimeout)
		r.Duration = time.Since(start)
		r.Timestamp = start
		return r
	}
}

// Checker returns the aggregator folded into a single Checker called
// "aggregate".
func (a *Aggregator) Checker() Checker {
	return Named("aggregate", func(ctx context.Context) Result {
		report := a.Report(ctx)

		details := make(map[string]any, len(report.Checks))
		for _, c := range report.Checks {
			details[c.Name] = map[string]any{
				"status":   c.Status.String(),
				"message":  c.Message,
				"duration": c.Duration.String(),
			}
		}
		msg := fmt.Sprintf("%d of %d checks healthy", report.Count(StatusHealthy), len(report.Checks))
		return newResult(report.Status, msg, nil).WithDetails(details)
	})
}
