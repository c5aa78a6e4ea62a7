// Package distance computes squared Euclidean distance between fixed-dimension
// point vectors.
//
// The kernel is monomorphized over the element type rather than dispatched at
// runtime: the shipped grid configurations use Elem = uint8, but the same
// function works unchanged over float32 coordinates for non-grid callers.
package distance
