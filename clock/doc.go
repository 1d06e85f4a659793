// Package clock defines the simulation time axes consumed by the cache layer.
//
// The host owns and advances its counters; everything in this module only
// reads them through Source. Two axes exist: ticks (simulation steps) and
// frames (render updates).
package clock
