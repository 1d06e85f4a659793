package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jonwraymond/simcache/observe"
)

// DetectMeta identifies detection runs in traces, metrics and logs.
var DetectMeta = observe.OpMeta{Name: "detect", Kind: observe.KindScan}

// Detector runs a single background scan and publishes its Result.
//
// Contract:
//   - Concurrency: all methods are safe for concurrent use. Result never
//     blocks.
//   - Lifecycle: Start takes effect once. A cancelled scan publishes nothing
//     and the Detector stays empty; any other scan failure is logged and an
//     empty Result is published.
type Detector struct {
	opts Options
	mw   *observe.Middleware

	once   sync.Once
	result atomic.Pointer[Result]
	done   chan struct{}
	err    error
}

// NewDetector creates a Detector. A nil middleware records nothing.
func NewDetector(opts Options, mw *observe.Middleware) *Detector {
	if mw == nil {
		mw = observe.NewMiddleware(nil, nil, nil)
	}
	return &Detector{
		opts: opts,
		mw:   mw,
		done: make(chan struct{}),
	}
}

// Start launches the scan of u in the background. It returns
// ErrAlreadyStarted if a scan was launched before.
func (d *Detector) Start(ctx context.Context, u Universe) error {
	started := false
	d.once.Do(func() {
		started = true
		go d.run(ctx, u)
	})
	if !started {
		return ErrAlreadyStarted
	}
	return nil
}

func (d *Detector) run(ctx context.Context, u Universe) {
	defer close(d.done)

	var res *Result
	err := d.mw.Run(ctx, DetectMeta, func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				res, err = nil, fmt.Errorf("%w: %v", ErrScanPanicked, r)
			}
		}()
		res, err = Scan(ctx, u, d.opts)
		if err != nil {
			return err
		}
		log := d.mw.Logger().WithOp(DetectMeta)
		for _, f := range res.Failures {
			log.Warn(ctx, "method skipped",
				observe.Field{Key: "method", Value: f.Ref.String()},
				observe.Field{Key: "error", Value: f.Err.Error()},
			)
		}
		log.Info(ctx, "detection finished",
			observe.Field{Key: "routed", Value: res.Total()},
			observe.Field{Key: "scanned", Value: res.Scanned},
			observe.Field{Key: "skipped", Value: res.Skipped},
		)
		return nil
	})
	switch {
	case err == nil:
		d.result.Store(res)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		d.err = errors.Join(ErrAbandoned, err)
	default:
		d.err = err
		d.result.Store(EmptyResult())
	}
}

// Result returns the published Result, or nil while the scan is running,
// before Start, or after the scan was abandoned.
func (d *Detector) Result() *Result {
	return d.result.Load()
}

// Done is closed when a started scan has finished or been abandoned.
func (d *Detector) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until the scan finishes or ctx is done. It returns the scan's
// failure, if any.
func (d *Detector) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-d.done:
		return d.result.Load(), d.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
