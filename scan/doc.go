// Package scan finds the call sites that can use a cached component lookup.
//
// A Universe describes the host program as modules of types of methods,
// each method exposing the calls its body makes. Scan walks it once,
// drops whatever the skip list excludes, and records every method that
// calls one of the generic lookup shapes, grouped by the fast path that
// replaces the call. Detector runs that walk in the background at most once
// per process and publishes the result only when it is complete.
package scan
