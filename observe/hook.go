package observe

import (
	"context"
	"time"

	"github.com/jonwraymond/simcache/intercept"
)

// TimingHook returns a hook that records how long the real call took and
// warns when it exceeds threshold. A zero threshold never warns.
//
// Register it below the caching hook: calls answered from the cache never
// reach its Before, so only real computations are timed.
func TimingHook[A, V any](meta OpMeta, threshold time.Duration, metrics Metrics, logger Logger) intercept.Hook[A, V] {
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	opLogger := logger.WithOp(meta)
	return intercept.HookFuncs[A, V]{
		BeforeFunc: func(A) (V, bool, any) {
			var zero V
			return zero, false, time.Now()
		},
		AfterFunc: func(_ A, _ V, state any) {
			start, ok := state.(time.Time)
			if !ok {
				return
			}
			d := time.Since(start)
			ctx := context.Background()
			metrics.RecordRun(ctx, meta, d, nil)
			if threshold > 0 && d > threshold {
				opLogger.Warn(ctx, "slow computation",
					Field{Key: "duration_ms", Value: float64(d) / float64(time.Millisecond)},
					Field{Key: "threshold_ms", Value: float64(threshold) / float64(time.Millisecond)},
				)
			}
		},
	}
}
