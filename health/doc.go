// Package health reports on the state of the caching engine.
//
// A Checker reports one component as Healthy, Degraded or Unhealthy. The
// package ships checkers for the risks the engine accepts by design:
//
//   - TableChecker watches a cache table's entry count. Tables are cleared
//     only between sessions, so growth inside a long session is surfaced
//     here rather than bounded.
//   - ScanChecker reports whether the fast path detector has published.
//   - MemoryChecker compares the process heap with system memory.
//
// Use Aggregator to combine checkers into a single report:
//
//	agg := health.NewAggregator()
//	agg.Register("memory", health.NewMemoryChecker(health.MemoryCheckerConfig{}))
//	for _, c := range opt.HealthCheckers() {
//	    agg.Register(c.Name(), c)
//	}
//	report := agg.Report(ctx)
//	if report.Status != health.StatusHealthy {
//	    log.Printf("simcache: %s", report.Status)
//	}
package health
