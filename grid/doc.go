// Package grid partitions a bounded integer coordinate space into a regular
// grid of cells and computes Chebyshev distance between cells. It is the
// stratification mechanism the multi-stage builder uses to assign candidates
// to shells (package build).
package grid
