// Package persist saves and loads a built graph and its point data as a pair
// of fixed-layout binary files, with a CRC32 body checksum and strict header
// validation on load (magic, version, vertex count agreement, degree bound).
package persist
