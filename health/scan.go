package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/simcache/scan"
)

// ScanChecker reports whether the fast path detector has published.
// While it has not, every lookup takes the slow path; that is degraded, not
// broken.
type ScanChecker struct {
	name string
	d    *scan.Detector
}

// NewScanChecker creates a checker for d.
func NewScanChecker(name string, d *scan.Detector) *ScanChecker {
	return &ScanChecker{name: name, d: d}
}

// Name returns the name of this checker.
func (c *ScanChecker) Name() string {
	return c.name
}

// Check reports the detector's state without blocking.
func (c *ScanChecker) Check(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy("context cancelled", err)
	}

	select {
	case <-c.d.Done():
	default:
		return Degraded("fast path detection pending")
	}

	res, err := c.d.Wait(ctx)
	switch {
	case errors.Is(err, scan.ErrAbandoned):
		return Degraded("fast path detection abandoned")
	case err != nil:
		return Degraded(fmt.Sprintf("fast path detection failed: %v", err))
	}
	return Healthy(fmt.Sprintf("%d fast paths", res.Total())).WithDetails(map[string]any{
		"routed":   res.Total(),
		"scanned":  res.Scanned,
		"skipped":  res.Skipped,
		"failures": len(res.Failures),
	})
}
