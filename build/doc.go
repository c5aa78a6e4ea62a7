// Package build implements the grid-aware, stage-partitioned graph
// construction procedure: for every point, it runs a beam search over the
// current partial graph, stratifies the resulting candidates by Chebyshev
// grid shell, applies an alpha-pruning rule independently per shell, commits
// the accepted edges, and inserts back edges subject to the target's
// capacity.
package build
