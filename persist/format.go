package persist

import "errors"

const (
	// graphMagic identifies a graph file (ASCII "GVG0").
	graphMagic = 0x47564730
	// graphVersion is the only body layout this package writes or accepts.
	graphVersion = uint32(1)

	// graphHeaderSize is magic(4) + version(4) + n(8) + r(4) + entryPoint(4) + checksum(4).
	graphHeaderSize = 28
)

var (
	ErrBadMagic       = errors.New("persist: not a graph file (bad magic)")
	ErrUnknownVersion = errors.New("persist: unsupported graph file version")
	ErrCountMismatch  = errors.New("persist: graph file vertex count disagrees with point data")
	ErrDegreeExceedsR = errors.New("persist: stored degree exceeds R")
	ErrChecksum       = errors.New("persist: graph file checksum mismatch")
)
