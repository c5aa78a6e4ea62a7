package gridvamana

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gridvamana/build"
	"github.com/hupe1980/gridvamana/pointstore"
)

func randomPoints(t *testing.T, n int, seed int64) *pointstore.Store[uint8] {
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

func smallStages() []build.StagePolicy {
	return []build.StagePolicy{
		{L: 10, R: 2, Alpha: 1.2, Shell: build.Shell{Min: 0, Max: 1}},
		{L: 20, R: 2, Alpha: 1.2, Shell: build.Shell{Min: 2, Max: 2}},
		{L: 30, R: 2, Alpha: 1.2, Shell: build.Shell{Min: 3, Max: -1}},
	}
}

func TestBuildAndSearchFindsSelf(t *testing.T) {
	ps := randomPoints(t, 80, 11)
	idx, report, err := Build(context.Background(), ps,
		WithR(6), WithBuildL(30), WithStages(smallStages()), WithNumThreads(1))
	require.NoError(t, err)
	assert.Equal(t, 80, report.PointCount)

	for id := 0; id < ps.Len(); id++ {
		top, err := idx.Search(context.Background(), ps.At(id), 1, 0)
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, uint32(id), top[0].ID, "query for point %d's own coordinates should return itself", id)
	}
}

func TestBuildRejectsBadOptions(t *testing.T) {
	ps := randomPoints(t, 10, 1)
	_, _, err := Build(context.Background(), ps, WithR(0))
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestSearchRejectsListSizeSmallerThanK(t *testing.T) {
	ps := randomPoints(t, 30, 5)
	idx, _, err := Build(context.Background(), ps,
		WithR(6), WithBuildL(30), WithStages(smallStages()), WithNumThreads(1))
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), ps.At(0), 5, 3)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestSaveOpenRoundTrip(t *testing.T) {
	ps := randomPoints(t, 50, 22)
	idx, _, err := Build(context.Background(), ps,
		WithR(6), WithBuildL(30), WithStages(smallStages()), WithNumThreads(1))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "idx")
	require.NoError(t, idx.Save(dir))

	reopened, err := Open[uint8](dir)
	require.NoError(t, err)
	assert.Equal(t, idx.Len(), reopened.Len())
	assert.Equal(t, idx.EntryPoint(), reopened.EntryPoint())

	top, err := reopened.Search(context.Background(), ps.At(0), 3, 20)
	require.NoError(t, err)
	assert.NotEmpty(t, top)
}
