package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gridvamana/graphstore"
	"github.com/hupe1980/gridvamana/pointstore"
)

func TestSaveLoadGraphRoundTrip(t *testing.T) {
	g := graphstore.New(5, 3, 1.3)
	g.SetNeighbors(0, []uint32{1, 2})
	g.SetNeighbors(1, []uint32{0})
	g.SetNeighbors(2, []uint32{0, 3, 4})
	g.SetNeighbors(3, []uint32{2})
	g.SetNeighbors(4, nil)

	path := filepath.Join(t.TempDir(), "graph.bin")
	require.NoError(t, SaveGraph(path, g, 2))

	loaded, entry, err := LoadGraph(path, 5, 1.3)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), entry)
	for id := 0; id < 5; id++ {
		assert.Equal(t, g.Neighbors(uint32(id)), loaded.Neighbors(uint32(id)))
	}
}

func TestLoadGraphRejectsCountMismatch(t *testing.T) {
	g := graphstore.New(4, 3, 1.3)
	path := filepath.Join(t.TempDir(), "graph.bin")
	require.NoError(t, SaveGraph(path, g, 0))

	_, _, err := LoadGraph(path, 99, 1.3)
	assert.ErrorIs(t, err, ErrCountMismatch)
}

func TestLoadGraphRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-graph.bin")
	require.NoError(t, os.WriteFile(path, []byte("not a gridvamana graph file"), 0o644))

	_, _, err := LoadGraph(path, -1, 1.3)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestSaveLoadIndexDirRoundTrip(t *testing.T) {
	ps, err := pointstore.New[uint8](3, 2, []uint8{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	g := graphstore.New(3, 2, 1.3)
	g.SetNeighbors(0, []uint32{1})
	g.SetNeighbors(1, []uint32{0, 2})
	g.SetNeighbors(2, []uint32{1})

	dir := t.TempDir()
	require.NoError(t, SaveToDir(dir, ps, g, 1))

	loadedPoints, loadedGraph, entry, err := LoadFromDir[uint8](dir, 1.3)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), entry)
	assert.Equal(t, ps.Len(), loadedPoints.Len())
	assert.Equal(t, ps.Dim(), loadedPoints.Dim())
	for id := 0; id < ps.Len(); id++ {
		assert.Equal(t, ps.At(id), loadedPoints.At(id))
	}
	for id := 0; id < 3; id++ {
		assert.Equal(t, g.Neighbors(uint32(id)), loadedGraph.Neighbors(uint32(id)))
	}
}
