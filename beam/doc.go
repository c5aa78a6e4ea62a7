// Package beam implements the bounded best-first search shared by query-time
// lookups and the multi-stage builder's candidate generator: a fixed-capacity
// pool of the L closest candidates seen so far, expanded one unvisited entry
// at a time until every pool entry has been visited.
package beam
