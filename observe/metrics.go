package observe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/simcache/cache"
)

// Metrics records durations of coarse operations such as scans or timed
// calls.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: implementations must not panic.
type Metrics interface {
	// RecordRun records one run with its duration and error status.
	RecordRun(ctx context.Context, meta OpMeta, duration time.Duration, err error)
}

type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates run metrics on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"simcache.run.total",
		metric.WithDescription("Total number of instrumented runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"simcache.run.errors",
		metric.WithDescription("Total number of failed runs"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"simcache.run.duration_ms",
		metric.WithDescription("Run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

// RecordRun records metrics for one run.
func (m *metricsImpl) RecordRun(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(meta.attributes()...)

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration)/float64(time.Millisecond), opt)
}

type noopMetrics struct{}

// NopMetrics returns metrics that record nothing.
func NopMetrics() Metrics {
	return noopMetrics{}
}

func (noopMetrics) RecordRun(context.Context, OpMeta, time.Duration, error) {}

// StatsFunc reports a snapshot of one operation's cache counters.
type StatsFunc func() cache.Stats

// CacheMetrics exports cache counters as observable instruments.
// Counters are read at collection time from the tracked StatsFuncs, so a
// lookup on the simulation thread costs nothing beyond its atomic adds.
//
// Contract:
//   - Concurrency: safe for concurrent use; StatsFuncs are called from the
//     exporter's goroutine and must only read atomics.
type CacheMetrics struct {
	hits     metric.Int64ObservableCounter
	misses   metric.Int64ObservableCounter
	stale    metric.Int64ObservableCounter
	bypassed metric.Int64ObservableCounter
	entries  metric.Int64ObservableGauge
	reg      metric.Registration

	mu      sync.Mutex
	sources map[string]StatsFunc
}

// NewCacheMetrics creates the cache instruments on meter.
func NewCacheMetrics(meter metric.Meter) (*CacheMetrics, error) {
	m := &CacheMetrics{sources: make(map[string]StatsFunc)}

	var err error
	if m.hits, err = meter.Int64ObservableCounter(
		"simcache.lookup.hits",
		metric.WithDescription("Lookups answered from a fresh entry"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return nil, err
	}
	if m.misses, err = meter.Int64ObservableCounter(
		"simcache.lookup.misses",
		metric.WithDescription("Lookups for keys with no entry"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return nil, err
	}
	if m.stale, err = meter.Int64ObservableCounter(
		"simcache.lookup.stale",
		metric.WithDescription("Lookups that found an expired entry"),
		metric.WithUnit("{lookup}"),
	); err != nil {
		return nil, err
	}
	if m.bypassed, err = meter.Int64ObservableCounter(
		"simcache.lookup.bypassed",
		metric.WithDescription("Calls passed through by a disabled policy"),
		metric.WithUnit("{call}"),
	); err != nil {
		return nil, err
	}
	if m.entries, err = meter.Int64ObservableGauge(
		"simcache.entries",
		metric.WithDescription("Entries currently stored"),
		metric.WithUnit("{entry}"),
	); err != nil {
		return nil, err
	}

	m.reg, err = meter.RegisterCallback(m.observe, m.hits, m.misses, m.stale, m.bypassed, m.entries)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Track starts exporting fn's counters under the operation name.
func (m *CacheMetrics) Track(name string, fn StatsFunc) error {
	if name == "" {
		return ErrMissingOpName
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sources[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSource, name)
	}
	m.sources[name] = fn
	return nil
}

// Untrack stops exporting the named operation.
func (m *CacheMetrics) Untrack(name string) {
	m.mu.Lock()
	delete(m.sources, name)
	m.mu.Unlock()
}

// Tracked returns the number of tracked operations.
func (m *CacheMetrics) Tracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sources)
}

// Close unregisters the collection callback.
func (m *CacheMetrics) Close() error {
	return m.reg.Unregister()
}

func (m *CacheMetrics) observe(_ context.Context, o metric.Observer) error {
	m.mu.Lock()
	sources := make(map[string]StatsFunc, len(m.sources))
	for k, v := range m.sources {
		sources[k] = v
	}
	m.mu.Unlock()

	for name, fn := range sources {
		s := fn()
		opt := metric.WithAttributes(attribute.String("op.name", name))
		o.ObserveInt64(m.hits, int64(s.Hits), opt)
		o.ObserveInt64(m.misses, int64(s.Misses), opt)
		o.ObserveInt64(m.stale, int64(s.Stale), opt)
		o.ObserveInt64(m.bypassed, int64(s.Bypassed), opt)
		o.ObserveInt64(m.entries, s.Entries, opt)
	}
	return nil
}
