package health

import (
	"context"
	"maps"
	"time"
)

// Status is the health of one cache component, ordered by severity.
type Status int

const (
	StatusHealthy Status = iota
	StatusDegraded
	StatusUnhealthy
)

var statusNames = [...]string{
	StatusHealthy:   "healthy",
	StatusDegraded:  "degraded",
	StatusUnhealthy: "unhealthy",
}

func (s Status) String() string {
	if s < StatusHealthy || s > StatusUnhealthy {
		return "unknown"
	}
	return statusNames[s]
}

// Worse returns the more severe of s and o.
func (s Status) Worse(o Status) Status {
	return max(s, o)
}

// Worst returns the most severe status among results, or StatusHealthy
// when there are none.
func Worst(results ...Result) Status {
	status := StatusHealthy
	for _, r := range results {
		status = status.Worse(r.Status)
	}
	return status
}

// Result is the outcome of one check.
type Result struct {
	Status  Status
	Message string

	// Details carries check specific values, such as entry counts.
	Details map[string]any

	Duration  time.Duration
	Timestamp time.Time
	Error     error
}

func newResult(status Status, message string, err error) Result {
	return Result{Status: status, Message: message, Error: err, Timestamp: time.Now()}
}

// Healthy returns a healthy result.
func Healthy(message string) Result {
	return newResult(StatusHealthy, message, nil)
}

// Degraded returns a degraded result.
func Degraded(message string) Result {
	return newResult(StatusDegraded, message, nil)
}

// Unhealthy returns an unhealthy result carrying err.
func Unhealthy(message string, err error) Result {
	return newResult(StatusUnhealthy, message, err)
}

// WithDetails returns r with details merged over its existing details.
func (r Result) WithDetails(details map[string]any) Result {
	merged := make(map[string]any, len(r.Details)+len(details))
	maps.Copy(merged, r.Details)
	maps.Copy(merged, details)
	r.Details = merged
	return r
}

// Checker reports the health of one component.
//
// Contract:
//   - Concurrency: Check may run concurrently with the simulation thread
//     and must only read state that is safe to read off-thread.
//   - Context: Check should return promptly once ctx is done.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// CheckerFunc is a check body.
type CheckerFunc func(ctx context.Context) Result

// Named returns fn as a Checker called name.
func Named(name string, fn CheckerFunc) Checker {
	return namedChecker{name: name, fn: fn}
}

type namedChecker struct {
	name string
	fn   CheckerFunc
}

func (c namedChecker) Name() string                     { return c.name }
func (c namedChecker) Check(ctx context.Context) Result { return c.fn(ctx) }
