package health

import (
	"context"
	"fmt"
)

// TableCheckerConfig configures a TableChecker.
type TableCheckerConfig struct {
	// Warning is the entry count at which the table reports degraded.
	// Default: 50000
	Warning int

	// Critical is the entry count at which the table reports unhealthy.
	// Default: 4 * Warning
	Critical int
}

// TableChecker reports on the growth of a cache table.
type TableChecker struct {
	name   string
	size   func() int
	config TableCheckerConfig
}

// NewTableChecker creates a checker named name that reads the entry count
// from size. size must be safe to call off the simulation thread.
func NewTableChecker(name string, size func() int, config TableCheckerConfig) *TableChecker {
	if config.Warning <= 0 {
		config.Warning = 50000
	}
	if config.Critical <= config.Warning {
		config.Critical = 4 * config.Warning
	}
	return &TableChecker{name: name, size: size, config: config}
}

// Name returns the name of this checker.
func (c *TableChecker) Name() string {
	return c.name
}

// Check compares the current entry count with the thresholds.
func (c *TableChecker) Check(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy("context cancelled", err)
	}

	n := c.size()
	details := map[string]any{
		"entries":  n,
		"warning":  c.config.Warning,
		"critical": c.config.Critical,
	}
	switch {
	case n >= c.config.Critical:
		return Unhealthy(fmt.Sprintf("%d entries, critical at %d", n, c.config.Critical), ErrCheckFailed).WithDetails(details)
	case n >= c.config.Warning:
		return Degraded(fmt.Sprintf("%d entries, warning at %d", n, c.config.Warning)).WithDetails(details)
	default:
		return Healthy(fmt.Sprintf("%d entries", n)).WithDetails(details)
	}
}
