package pointstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/hupe1980/gridvamana/distance"
)

// ErrSizeMismatch is returned when the declared header (N, D) disagrees with
// the actual file size.
var ErrSizeMismatch = errors.New("pointstore: declared N*D disagrees with file size")

// Store is an immutable, dense array of N points of dimension D.
type Store[T distance.Elem] struct {
	n, d int
	data []T
}

// New wraps an already-assembled flat point array (len(data) == n*d). Used
// by callers that construct points in memory (tests, generators) rather than
// loading them from disk.
func New[T distance.Elem](n, d int, data []T) (*Store[T], error) {
	if n < 0 || d < 0 || len(data) != n*d {
		return nil, fmt.Errorf("%w: n=%d d=%d len(data)=%d", ErrSizeMismatch, n, d, len(data))
	}
	return &Store[T]{n: n, d: d, data: data}, nil
}

// Load reads a point store from the two-uint32-header binary layout
// described in the persistence component: N, D, then N*D elements of T.
func Load[T distance.Elem](path string) (*Store[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var hdr [8]byte
	if _, err := io.ReadFull(f, hdr[:]); err != nil {
		return nil, fmt.Errorf("pointstore: reading header: %w", err)
	}
	n := int(binary.LittleEndian.Uint32(hdr[0:4]))
	d := int(binary.LittleEndian.Uint32(hdr[4:8]))

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	wantSize := int64(8 + n*d*elemSize)

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() != wantSize {
		return nil, fmt.Errorf("%w: header says n=%d d=%d (want %d bytes total, file has %d)",
			ErrSizeMismatch, n, d, wantSize, info.Size())
	}

	data := make([]T, n*d)
	if err := binary.Read(f, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("pointstore: reading body: %w", err)
	}
	return &Store[T]{n: n, d: d, data: data}, nil
}

// Save writes the store to path in the layout Load expects: N, D, then N*D
// elements of T, all little-endian.
func (s *Store[T]) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, uint32(s.n)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(s.d)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, s.data); err != nil {
		return err
	}
	return f.Sync()
}

// Len returns N, the number of points.
func (s *Store[T]) Len() int { return s.n }

// Dim returns D, the dimension of each point.
func (s *Store[T]) Dim() int { return s.d }

// At returns a read-only view of the id-th point's D elements. The caller
// must not mutate the returned slice.
func (s *Store[T]) At(id int) []T {
	off := id * s.d
	return s.data[off : off+s.d : off+s.d]
}

// InRange reports whether id is a valid point id.
func (s *Store[T]) InRange(id int) bool {
	return id >= 0 && id < s.n
}
