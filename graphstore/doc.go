// Package graphstore holds the adjacency-list representation of the
// proximity graph: one out-neighbor slice per vertex, each guarded by its
// own mutex so the builder never takes a global lock. Readers take a
// snapshot of the neighbor slice under the lock and scan it afterwards,
// tolerating a slightly stale view from concurrent writers.
package graphstore
