package persist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/hupe1980/gridvamana/graphstore"
)

// SaveGraph writes g and entryPoint to path in the graph file format: a
// 28-byte header (magic, version, N, R, entry point id, CRC32 of the body)
// followed by one (degree uint32, degree neighbor ids uint32...) record per
// vertex id in ascending order.
func SaveGraph(path string, g *graphstore.Graph, entryPoint uint32) error {
	var body bytes.Buffer
	n := g.Len()
	for id := 0; id < n; id++ {
		adj := g.Neighbors(uint32(id))
		if err := binary.Write(&body, binary.LittleEndian, uint32(len(adj))); err != nil {
			return fmt.Errorf("persist: writing degree for vertex %d: %w", id, err)
		}
		if err := binary.Write(&body, binary.LittleEndian, adj); err != nil {
			return fmt.Errorf("persist: writing neighbors for vertex %d: %w", id, err)
		}
	}
	checksum := crc32.ChecksumIEEE(body.Bytes())

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, uint32(graphMagic)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, graphVersion); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint64(n)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(g.R())); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, entryPoint); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, checksum); err != nil {
		return err
	}
	if _, err := f.Write(body.Bytes()); err != nil {
		return err
	}
	return f.Sync()
}

// LoadGraph reads a graph file previously written by SaveGraph. wantN, when
// >= 0, must match the file's vertex count (§4.7: "rejecting N disagreement"
// against the paired point data file); pass -1 to skip that check.
func LoadGraph(path string, wantN int, slack float64) (*graphstore.Graph, uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var magic uint32
	if err := binary.Read(f, binary.LittleEndian, &magic); err != nil {
		return nil, 0, fmt.Errorf("persist: reading magic: %w", err)
	}
	if magic != graphMagic {
		return nil, 0, ErrBadMagic
	}

	var version uint32
	if err := binary.Read(f, binary.LittleEndian, &version); err != nil {
		return nil, 0, err
	}
	if version != graphVersion {
		return nil, 0, fmt.Errorf("%w: got %d, want %d", ErrUnknownVersion, version, graphVersion)
	}

	var n64 uint64
	if err := binary.Read(f, binary.LittleEndian, &n64); err != nil {
		return nil, 0, err
	}
	n := int(n64)
	if wantN >= 0 && n != wantN {
		return nil, 0, fmt.Errorf("%w: graph file has %d vertices, point data has %d", ErrCountMismatch, n, wantN)
	}

	var r uint32
	if err := binary.Read(f, binary.LittleEndian, &r); err != nil {
		return nil, 0, err
	}

	var entryPoint uint32
	if err := binary.Read(f, binary.LittleEndian, &entryPoint); err != nil {
		return nil, 0, err
	}

	var wantChecksum uint32
	if err := binary.Read(f, binary.LittleEndian, &wantChecksum); err != nil {
		return nil, 0, err
	}

	body, err := io.ReadAll(f)
	if err != nil {
		return nil, 0, err
	}
	if crc32.ChecksumIEEE(body) != wantChecksum {
		return nil, 0, ErrChecksum
	}

	g := graphstore.New(n, int(r), slack)
	br := bytes.NewReader(body)
	for id := 0; id < n; id++ {
		var degree uint32
		if err := binary.Read(br, binary.LittleEndian, &degree); err != nil {
			return nil, 0, fmt.Errorf("persist: reading degree for vertex %d: %w", id, err)
		}
		if int(degree) > int(r) {
			return nil, 0, fmt.Errorf("%w: vertex %d has degree %d, R is %d", ErrDegreeExceedsR, id, degree, r)
		}
		adj := make([]uint32, degree)
		if err := binary.Read(br, binary.LittleEndian, adj); err != nil {
			return nil, 0, fmt.Errorf("persist: reading neighbors for vertex %d: %w", id, err)
		}
		g.SetNeighbors(uint32(id), adj)
	}

	return g, entryPoint, nil
}
