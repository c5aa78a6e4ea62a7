package build

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gridvamana/pointstore"
)

func randomPoints2D(t *testing.T, n int, seed int64) *pointstore.Store[uint8] {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	data := make([]uint8, n*2)
	for i := range data {
		data[i] = uint8(r.Intn(256))
	}
	ps, err := pointstore.New[uint8](n, 2, data)
	require.NoError(t, err)
	return ps
}

func testOptions() Options {
	return Options{
		R:          6,
		BuildL:     30,
		Alpha:      1.2,
		GridSize:   32,
		CellSize:   8,
		Dim:        2,
		Slack:      1.3,
		NumThreads: 2,
		TwoPass:    true,
		Seed:       7,
		Stages: []StagePolicy{
			{L: 10, R: 2, Alpha: 1.2, Shell: Shell{Min: 0, Max: 1}},
			{L: 20, R: 2, Alpha: 1.2, Shell: Shell{Min: 2, Max: 2}},
			{L: 30, R: 2, Alpha: 1.2, Shell: Shell{Min: 3, Max: -1}},
		},
	}
}

func TestNewBuilderRejectsEmptyPoints(t *testing.T) {
	ps, err := pointstore.New[uint8](0, 2, nil)
	require.NoError(t, err)
	_, err = NewBuilder[uint8](ps, testOptions(), nil, nil)
	assert.ErrorIs(t, err, ErrNoPoints)
}

func TestNewBuilderRejectsInvalidOptions(t *testing.T) {
	ps := randomPoints2D(t, 10, 1)
	opts := testOptions()
	opts.R = 0
	_, err := NewBuilder[uint8](ps, opts, nil, nil)
	assert.ErrorIs(t, err, ErrConfigError)
}

func TestBuildAdjacencyInvariants(t *testing.T) {
	ps := randomPoints2D(t, 60, 42)
	b, err := NewBuilder[uint8](ps, testOptions(), nil, nil)
	require.NoError(t, err)

	res, err := b.Build(context.Background())
	require.NoError(t, err)

	for id := 0; id < ps.Len(); id++ {
		adj := res.Graph.Neighbors(uint32(id))
		seen := map[uint32]bool{}
		for _, nb := range adj {
			assert.NotEqual(t, uint32(id), nb, "vertex %d has a self-loop", id)
			assert.False(t, seen[nb], "vertex %d has duplicate neighbor %d", id, nb)
			assert.True(t, nb < uint32(ps.Len()), "vertex %d has out-of-range neighbor %d", id, nb)
			seen[nb] = true
		}
	}
}

func TestBuildConnectivityRepairsReachEveryPoint(t *testing.T) {
	ps := randomPoints2D(t, 60, 42)
	b, err := NewBuilder[uint8](ps, testOptions(), nil, nil)
	require.NoError(t, err)

	res, err := b.Build(context.Background())
	require.NoError(t, err)

	levels, err := b.bfsLevels(res.EntryPoint)
	require.NoError(t, err)
	for id, lvl := range levels {
		assert.GreaterOrEqual(t, lvl, 0, "point %d unreachable from entry point %d", id, res.EntryPoint)
	}
	assert.Equal(t, ps.Len(), res.Report.PointCount)
}

func TestBuildDeterministicForFixedThreadCount(t *testing.T) {
	ps := randomPoints2D(t, 40, 99)
	opts := testOptions()
	opts.NumThreads = 1 // single-threaded run order is fully determined by rng+seed

	b1, err := NewBuilder[uint8](ps, opts, nil, nil)
	require.NoError(t, err)
	res1, err := b1.Build(context.Background())
	require.NoError(t, err)

	b2, err := NewBuilder[uint8](ps, opts, nil, nil)
	require.NoError(t, err)
	res2, err := b2.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, res1.EntryPoint, res2.EntryPoint)
	for id := 0; id < ps.Len(); id++ {
		assert.Equal(t, res1.Graph.Neighbors(uint32(id)), res2.Graph.Neighbors(uint32(id)), "vertex %d diverged between runs", id)
	}
}

func TestBuildRespectsCancellation(t *testing.T) {
	ps := randomPoints2D(t, 200, 3)
	b, err := NewBuilder[uint8](ps, testOptions(), nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = b.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildReportStageTotals(t *testing.T) {
	ps := randomPoints2D(t, 60, 5)
	opts := testOptions()
	b, err := NewBuilder[uint8](ps, opts, nil, nil)
	require.NoError(t, err)

	res, err := b.Build(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Report.PerStageEdges, len(opts.Stages))
	total := 0
	for _, n := range res.Report.PerStageEdges {
		assert.GreaterOrEqual(t, n, 0)
		total += n
	}
	assert.Greater(t, total, 0)
}
