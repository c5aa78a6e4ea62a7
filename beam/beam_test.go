package beam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineGraph is a tiny fixture: points on a 1D integer line, each connected
// to its immediate neighbors, so beam search has something to hop across.
type lineGraph struct {
	adj [][]uint32
}

func (g lineGraph) Neighbors(id uint32) []uint32 { return g.adj[id] }

type linePoints struct {
	coords [][]uint8
}

func (p linePoints) At(id int) []uint8 { return p.coords[id] }
func (p linePoints) Len() int          { return len(p.coords) }

func buildLine(n int) (lineGraph, linePoints) {
	adj := make([][]uint32, n)
	coords := make([][]uint8, n)
	for i := 0; i < n; i++ {
		coords[i] = []uint8{uint8(i * 10)}
		var nb []uint32
		if i > 0 {
			nb = append(nb, uint32(i-1))
		}
		if i < n-1 {
			nb = append(nb, uint32(i+1))
		}
		adj[i] = nb
	}
	return lineGraph{adj: adj}, linePoints{coords: coords}
}

func TestSearchFindsExactNearestOnLine(t *testing.T) {
	g, p := buildLine(20)
	top, _, stats, err := Search[uint8]([]uint8{45}, []uint32{0}, 10, 3, g, p)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, uint32(4), top[0].ID) // 45 is equidistant from points 4 and 5; the id tie-break picks 4
	assert.Greater(t, stats.Hops, 0)
	assert.Greater(t, stats.DistComparisons, 0)
}

func TestSearchKZeroNoExpansion(t *testing.T) {
	g, p := buildLine(20)
	top, _, stats, err := Search[uint8]([]uint8{45}, []uint32{0, 1}, 10, 0, g, p)
	require.NoError(t, err)
	assert.Empty(t, top)
	assert.Equal(t, 0, stats.Hops)
	assert.Equal(t, 2, stats.DistComparisons, "only the seeds should be scored")
}

func TestSearchInvalidSeed(t *testing.T) {
	g, p := buildLine(5)
	_, _, _, err := Search[uint8]([]uint8{0}, []uint32{99}, 10, 3, g, p)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestSearchRejectsListSizeSmallerThanK(t *testing.T) {
	g, p := buildLine(5)
	_, _, _, err := Search[uint8]([]uint8{0}, []uint32{0}, 2, 3, g, p)
	assert.ErrorIs(t, err, ErrListTooSmall)
}

func TestSearchPoolExpansionMonotonicity(t *testing.T) {
	g, p := buildLine(50)
	smallL, _, _, err := Search[uint8]([]uint8{250}, []uint32{0}, 5, 5, g, p)
	require.NoError(t, err)
	largeL, _, _, err := Search[uint8]([]uint8{250}, []uint32{0}, 20, 5, g, p)
	require.NoError(t, err)

	smallSet := map[uint32]bool{}
	for _, r := range smallL {
		smallSet[r.ID] = true
	}
	largeSet := map[uint32]bool{}
	for _, r := range largeL {
		largeSet[r.ID] = true
	}
	for id := range smallSet {
		assert.True(t, largeSet[id], "result at smaller L must remain a result at larger L")
	}
}

func TestSearchDeterministicTieBreak(t *testing.T) {
	// Two points equidistant from the query; id-ascending must win the tie.
	g := lineGraph{adj: [][]uint32{{1, 2}, {0}, {0}}}
	p := linePoints{coords: [][]uint8{{10}, {5}, {15}}}

	top, _, _, err := Search[uint8]([]uint8{10}, []uint32{0}, 5, 3, g, p)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, uint32(0), top[0].ID)
	assert.Equal(t, uint32(1), top[1].ID)
	assert.Equal(t, uint32(2), top[2].ID)
}
