// Package observe provides logging, metrics and tracing for the cache layer.
//
// It is a pure instrumentation library. Cache counters are exported as
// observable instruments read at collection time, so the simulation thread
// pays nothing per lookup; spans and duration histograms are reserved for
// coarse work such as the background call-site scan.
package observe
