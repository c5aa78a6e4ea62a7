// Package pointstore holds an immutable, dense array of fixed-dimension
// points loaded from a simple binary layout: two little-endian uint32
// header fields (N, D) followed by N*D raw elements.
//
// A Store is read-only after Load; there is no insert or delete path.
package pointstore
