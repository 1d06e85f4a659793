package health

import "errors"

var (
	// ErrCheckFailed marks an unhealthy result raised by a threshold.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a check that outlived the aggregator timeout.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckPanicked marks a check that panicked.
	ErrCheckPanicked = errors.New("health: check panicked")

	// ErrCheckerNotFound is returned by Aggregator.Check for unknown names.
	ErrCheckerNotFound = errors.New("health: checker not found")
)
