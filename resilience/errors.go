package resilience

import "errors"

// Sentinel errors for resilience operations.
var (
	// ErrNilSource is returned when a throttle has no clock.
	ErrNilSource = errors.New("resilience: clock source is nil")

	// ErrNilPolicy is returned when a throttle has no policy.
	ErrNilPolicy = errors.New("resilience: policy is nil")

	// ErrNilKeyFunc is returned when a throttle has no key function.
	ErrNilKeyFunc = errors.New("resilience: key function is nil")

	// ErrThrottled is returned by ExecuteE when a call was suppressed.
	ErrThrottled = errors.New("resilience: call throttled")
)
