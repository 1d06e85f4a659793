// Package component caches "find the attached component of type T" lookups.
//
// Owners (entities, conditions, map objects, world objects) carry a list of
// attached components. Finding one by type is a linear scan, and hot code
// repeats the same lookup every tick. Cache remembers each answer per owner
// and per component type, including the answer "none", until the owner's
// component set is known to change or the session ends.
//
// Game and world components live on process-wide singletons, so their
// lookups are remembered in a single slot that is re-resolved whenever a
// different game or world becomes active.
package component
