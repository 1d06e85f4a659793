// Package cache provides tick-bounded memoization for simulation queries.
//
// Values are stored with an expiry on a simulation time axis (ticks or
// frames) rather than wall-clock time. A Table maps keys to entries, a
// Memoizer splits lookup and store into the before/after phases an
// interception layer observes, and Identity memos hold values that never
// expire, including negative answers.
package cache
