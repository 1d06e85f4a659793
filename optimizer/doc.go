// Package optimizer wires the caching engine into a host simulation.
//
// An Optimizer owns every cached operation the host registers, the
// component lookup cache and the fast path detector. It reads policies from
// config.Settings, applies runtime tuning, clears everything on session
// boundaries, and exposes health checkers and metrics for the lot.
//
// Operations come in four kinds:
//
//   - Register memoizes a function for a number of ticks.
//   - RegisterFrames does the same on the frame counter.
//   - RegisterIdentity and RegisterBoundedIdentity memoize pure lookups,
//     including "no answer", until the session ends.
//   - RegisterThrottle limits a side effect to one run per key per interval.
//
// Register and the returned operations are meant for the simulation thread.
// Settings, HealthCheckers and Route may be called from any goroutine.
package optimizer
