package graphstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryAppendNoDuplicatesNoSelfLoop(t *testing.T) {
	g := New(4, 2, 1.3)

	appended, overflow := g.TryAppend(0, 0, 4)
	assert.False(t, appended)
	assert.False(t, overflow)

	appended, overflow = g.TryAppend(0, 1, 4)
	assert.True(t, appended)
	assert.False(t, overflow)

	appended, _ = g.TryAppend(0, 1, 4)
	assert.False(t, appended, "duplicate append must be rejected")

	assert.Equal(t, []uint32{1}, g.Neighbors(0))
}

func TestTryAppendCapacityLimit(t *testing.T) {
	g := New(4, 2, 1.3) // capacity = floor(2*1.3) = 2
	g.TryAppend(0, 1, 4)
	_, overflow := g.TryAppend(0, 2, 4)
	assert.False(t, overflow)
	_, overflow = g.TryAppend(0, 3, 4)
	assert.True(t, overflow, "third append should push past R*slack=2")
}

func TestSetNeighbors(t *testing.T) {
	g := New(3, 2, 1.3)
	g.SetNeighbors(0, []uint32{1, 2})
	assert.Equal(t, []uint32{1, 2}, g.Neighbors(0))
	assert.Equal(t, 2, g.Degree(0))
}

func TestPruneTo(t *testing.T) {
	dist := map[uint32]float64{1: 5, 2: 1, 3: 3, 4: 3}
	adj := []uint32{1, 2, 3, 4}
	pruned := PruneTo(adj, 2, func(id uint32) float64 { return dist[id] })
	require.Len(t, pruned, 2)
	assert.Equal(t, []uint32{2, 3}, pruned, "keep the two nearest, tie broken on id ascending")
}

func TestPruneToNoOpWhenUnderLimit(t *testing.T) {
	adj := []uint32{1, 2}
	pruned := PruneTo(adj, 5, func(id uint32) float64 { return float64(id) })
	assert.Equal(t, adj, pruned)
}

func TestWithLockPublishesReplacement(t *testing.T) {
	g := New(2, 4, 1.3)
	g.SetNeighbors(0, []uint32{1})
	g.WithLock(0, func(adj []uint32) []uint32 {
		return append(adj, 1) // intentionally not deduped at this layer
	})
	assert.Equal(t, []uint32{1, 1}, g.Neighbors(0))
}
