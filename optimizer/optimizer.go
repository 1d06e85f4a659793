package optimizer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/simcache/cache"
	"github.com/jonwraymond/simcache/clock"
	"github.com/jonwraymond/simcache/component"
	"github.com/jonwraymond/simcache/config"
	"github.com/jonwraymond/simcache/health"
	"github.com/jonwraymond/simcache/observe"
	"github.com/jonwraymond/simcache/scan"
)

// Options configures an Optimizer.
type Options struct {
	// Host supplies the tick and frame counters. Required.
	Host clock.Host

	// Settings are copied at construction. Nil uses config.Defaults.
	Settings *config.Settings

	// Observer supplies the logger, tracer and meter. Optional.
	Observer observe.Observer

	// Logger overrides the observer's logger.
	Logger observe.Logger

	// Meter overrides the observer's meter for cache metrics.
	Meter metric.Meter

	// SlowCall attaches a timing hook to memoized operations that warns
	// when a real computation takes longer. Zero disables it.
	SlowCall time.Duration

	// Health thresholds for every operation's table.
	Tables health.TableCheckerConfig
}

// entry is the type-erased view of a registered operation.
type entry interface {
	policy() *cache.Policy
	clear()
	prune() int
	stats() cache.Stats
}

// Optimizer is the registry of cached operations.
//
// Contract:
//   - Concurrency: registration, calls and SetPolicy belong to the
//     simulation thread. Settings, Operations, HealthCheckers and Route are
//     safe from any goroutine.
//   - Lifecycle: OnSessionStart and OnSessionEnd clear every cache; the
//     registry itself lives for the process.
type Optimizer struct {
	host     clock.Host
	logger   observe.Logger
	mw       *observe.Middleware
	runs     observe.Metrics
	metrics  *observe.CacheMetrics
	slowCall time.Duration
	tables   health.TableCheckerConfig

	mu       sync.RWMutex
	settings config.Settings
	ops      map[string]entry
	defaults map[string]config.PolicySetting
	order    []string

	fastPath   atomic.Bool
	components *component.Cache
	detector   *scan.Detector
}

// New creates an Optimizer.
func New(opts Options) (*Optimizer, error) {
	if opts.Host == nil {
		return nil, ErrNilHost
	}

	settings := config.Defaults()
	if opts.Settings != nil {
		settings = opts.Settings.Clone()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	meter := opts.Meter
	var tracer observe.Tracer
	if opts.Observer != nil {
		if logger == nil {
			logger = opts.Observer.Logger()
		}
		if meter == nil {
			meter = opts.Observer.Meter()
		}
		tracer = observe.NewTracer(opts.Observer.Tracer())
	}
	if logger == nil {
		logger = observe.NopLogger()
	}

	o := &Optimizer{
		host:       opts.Host,
		logger:     logger.WithTick(clock.Ticks(opts.Host)),
		runs:       observe.NopMetrics(),
		slowCall:   opts.SlowCall,
		tables:     opts.Tables,
		settings:   settings,
		ops:        make(map[string]entry),
		defaults:   make(map[string]config.PolicySetting),
		components: component.NewCache(),
	}
	if meter != nil {
		runs, err := observe.NewMetrics(meter)
		if err != nil {
			return nil, fmt.Errorf("optimizer: run metrics: %w", err)
		}
		cm, err := observe.NewCacheMetrics(meter)
		if err != nil {
			return nil, fmt.Errorf("optimizer: cache metrics: %w", err)
		}
		o.runs, o.metrics = runs, cm
	}
	o.mw = observe.NewMiddleware(tracer, o.runs, logger)
	o.detector = scan.NewDetector(settings.Scan.Options(), o.mw)
	o.fastPath.Store(settings.FastComponentLookup)
	o.components.SetEnabled(settings.FastComponentLookup)
	return o, nil
}

// claim reserves name and resolves its policy and clock axis. The reserved
// name must be committed or released.
func (o *Optimizer) claim(name string, def config.PolicySetting) (*cache.Policy, clock.Source, error) {
	if name == "" {
		return nil, nil, ErrEmptyName
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, dup := o.ops[name]; dup {
		return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateOperation, name)
	}
	ps, err := o.settings.Policy(name)
	if err != nil {
		ps = def
		if err := o.settings.SetPolicy(name, ps); err != nil {
			return nil, nil, err
		}
	}
	o.ops[name] = nil
	o.defaults[name] = def

	p := ps.Policy()
	src := clock.Ticks(o.host)
	if def.Frames() || ps.Frames() {
		src = clock.Frames(o.host)
	}
	return &p, src, nil
}

func (o *Optimizer) commit(name string, e entry) {
	o.mu.Lock()
	o.ops[name] = e
	o.order = append(o.order, name)
	o.mu.Unlock()

	if o.metrics != nil {
		if err := o.metrics.Track(name, e.stats); err != nil {
			o.logger.Warn(context.Background(), "cache metrics not tracked",
				observe.Field{Key: "operation", Value: name},
				observe.Field{Key: "error", Value: err.Error()},
			)
		}
	}
}

func (o *Optimizer) release(name string) {
	o.mu.Lock()
	delete(o.ops, name)
	delete(o.defaults, name)
	o.mu.Unlock()
}

// Operations returns registered operation names in registration order.
func (o *Optimizer) Operations() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	names := make([]string, len(o.order))
	copy(names, o.order)
	return names
}

// Stats returns the counters of the named operation.
func (o *Optimizer) Stats(name string) (cache.Stats, bool) {
	o.mu.RLock()
	e := o.ops[name]
	o.mu.RUnlock()
	if e == nil {
		return cache.Stats{}, false
	}
	return e.stats(), true
}

// Settings returns a copy of the current settings, including runtime
// tuning, for persistence.
func (o *Optimizer) Settings() config.Settings {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.settings.Clone()
}

// SetPolicy changes the policy for name and clears that operation's cache.
// The change applies from the next call. Names not yet registered are
// recorded for when they are. The axis of a registered operation is fixed.
func (o *Optimizer) SetPolicy(name string, ps config.PolicySetting) error {
	o.mu.Lock()
	if err := o.settings.SetPolicy(name, ps); err != nil {
		o.mu.Unlock()
		return err
	}
	e := o.ops[name]
	o.mu.Unlock()

	if e == nil {
		return nil
	}
	*e.policy() = ps.Policy()
	e.clear()
	o.logger.Info(context.Background(), "policy changed",
		observe.Field{Key: "operation", Value: name},
		observe.Field{Key: "enabled", Value: ps.Enabled},
		observe.Field{Key: "interval", Value: ps.Interval},
	)
	return nil
}

// ResetSettings restores the default settings and re-applies them to every
// registered operation.
func (o *Optimizer) ResetSettings() {
	type change struct {
		e  entry
		ps config.PolicySetting
	}

	o.mu.Lock()
	o.settings.Reset()
	changes := make([]change, 0, len(o.order))
	for _, name := range o.order {
		ps, err := o.settings.Policy(name)
		if err != nil {
			ps = o.defaults[name]
			o.settings.Policies[name] = ps
		}
		changes = append(changes, change{e: o.ops[name], ps: ps})
	}
	fast := o.settings.FastComponentLookup
	o.mu.Unlock()

	for _, c := range changes {
		*c.e.policy() = c.ps.Policy()
		c.e.clear()
	}
	o.SetFastComponentLookup(fast)
}

// SetFastComponentLookup turns the component cache and fast path routing
// on or off.
func (o *Optimizer) SetFastComponentLookup(on bool) {
	o.mu.Lock()
	o.settings.FastComponentLookup = on
	o.mu.Unlock()

	o.fastPath.Store(on)
	o.components.SetEnabled(on)
}

// ClearAll drops every cached value, throttle record and component answer.
func (o *Optimizer) ClearAll() {
	o.mu.RLock()
	entries := make([]entry, 0, len(o.order))
	for _, name := range o.order {
		entries = append(entries, o.ops[name])
	}
	o.mu.RUnlock()

	for _, e := range entries {
		e.clear()
	}
	o.components.ClearAll()
}

// Prune drops stale entries from every operation and returns how many were
// removed. Hosts call it from a periodic maintenance point, for example
// every long tick, to keep tables of short-lived owners from growing.
func (o *Optimizer) Prune() int {
	o.mu.RLock()
	entries := make([]entry, 0, len(o.order))
	for _, name := range o.order {
		entries = append(entries, o.ops[name])
	}
	o.mu.RUnlock()

	n := 0
	for _, e := range entries {
		n += e.prune()
	}
	if n > 0 {
		o.logger.Debug(context.Background(), "pruned stale entries",
			observe.Field{Key: "entries", Value: n},
		)
	}
	return n
}

// OnSessionStart clears every cache. Call it when the host loads or starts
// a session, before the first tick.
func (o *Optimizer) OnSessionStart() {
	o.ClearAll()
	o.logger.Info(context.Background(), "session started",
		observe.Field{Key: "operations", Value: len(o.Operations())},
	)
}

// OnSessionEnd clears every cache so nothing outlives the session.
func (o *Optimizer) OnSessionEnd() {
	o.ClearAll()
	o.logger.Info(context.Background(), "session ended")
}

// Components returns the component lookup cache.
func (o *Optimizer) Components() *component.Cache {
	return o.components
}

// Detector returns the fast path detector.
func (o *Optimizer) Detector() *scan.Detector {
	return o.detector
}

// StartScan launches fast path detection over u in the background.
func (o *Optimizer) StartScan(ctx context.Context, u scan.Universe) error {
	if !o.fastPath.Load() {
		return ErrFastPathDisabled
	}
	return o.detector.Start(ctx, u)
}

// Route returns the fast paths for ref. It returns nil until detection has
// published, and always when fast component lookup is disabled.
func (o *Optimizer) Route(ref scan.MethodRef) []scan.Route {
	if !o.fastPath.Load() {
		return nil
	}
	return o.detector.Result().RoutesFor(ref)
}

// HealthCheckers returns a table checker per registered operation and a
// checker for fast path detection.
func (o *Optimizer) HealthCheckers() []health.Checker {
	o.mu.RLock()
	defer o.mu.RUnlock()

	checkers := make([]health.Checker, 0, len(o.order)+1)
	for _, name := range o.order {
		e := o.ops[name]
		checkers = append(checkers, health.NewTableChecker(name, func() int {
			return int(e.stats().Entries)
		}, o.tables))
	}
	return append(checkers, health.NewScanChecker("fast_paths", o.detector))
}

// Close stops exporting cache metrics.
func (o *Optimizer) Close() error {
	if o.metrics == nil {
		return nil
	}
	return o.metrics.Close()
}
