// Package gridvamana builds and searches a grid-aware, stage-partitioned
// proximity graph over a fixed set of points: a single-shot index structure
// with no dynamic insert or delete, intended for small-to-medium in-memory
// point sets where construction quality matters more than update latency.
//
// Build runs the multi-stage builder once and freezes the result into an
// Index; Index.Search runs the same beam search the builder used internally,
// now against the finished graph.
package gridvamana

import (
	"context"
	"time"

	"github.com/hupe1980/gridvamana/beam"
	"github.com/hupe1980/gridvamana/build"
	"github.com/hupe1980/gridvamana/distance"
	"github.com/hupe1980/gridvamana/graphstore"
	"github.com/hupe1980/gridvamana/persist"
	"github.com/hupe1980/gridvamana/pointstore"
)

// Index is a frozen graph ready for query-time search: the IndexBuilder/
// Index split recommended for this system means nothing in this type ever
// mutates the graph again.
type Index[T distance.Elem] struct {
	points     *pointstore.Store[T]
	graph      *graphstore.Graph
	entryPoint uint32
	opts       options
}

// Build runs the grid-aware multi-stage builder over points and freezes the
// result into an Index. The caller owns points and must not mutate it
// afterward; Index only ever reads through it.
func Build[T distance.Elem](ctx context.Context, points *pointstore.Store[T], optFns ...Option) (*Index[T], build.BuildReport, error) {
	o := applyOptions(points.Dim(), optFns)

	o.logger.LogBuildStart(ctx, points.Len(), points.Dim())

	onAbort := func(stage int, pointID uint32, err error) {
		o.logger.LogBuildAbort(ctx, stage, pointID, err)
	}

	b, err := build.NewBuilder[T](points, o.buildOptions, o.metricsCollector, onAbort)
	if err != nil {
		return nil, build.BuildReport{}, translateError(err)
	}

	res, err := b.Build(ctx)
	if err != nil {
		o.logger.LogBuildComplete(ctx, build.BuildReport{}, err)
		return nil, build.BuildReport{}, translateError(err)
	}
	o.logger.LogBuildComplete(ctx, res.Report, nil)

	idx := &Index[T]{
		points:     points,
		graph:      res.Graph,
		entryPoint: res.EntryPoint,
		opts:       o,
	}
	return idx, res.Report, nil
}

// Open loads a previously saved index from dir.
func Open[T distance.Elem](dir string, optFns ...Option) (*Index[T], error) {
	points, g, entryPoint, err := persist.LoadFromDir[T](dir, 1.0)
	if err != nil {
		return nil, translateError(err)
	}

	o := applyOptions(points.Dim(), optFns)
	o.buildOptions.R = g.R()
	o.logger.LogLoad(context.Background(), dir, points.Len(), nil)

	return &Index[T]{
		points:     points,
		graph:      g,
		entryPoint: entryPoint,
		opts:       o,
	}, nil
}

// Save persists the index to dir as a graph file and a point data file.
func (idx *Index[T]) Save(dir string) error {
	err := persist.SaveToDir(dir, idx.points, idx.graph, idx.entryPoint)
	idx.opts.logger.LogSave(context.Background(), dir, err)
	return translateError(err)
}

// Search runs a beam search for query from the index's entry point, at list
// size l (or the configured default search list size when l <= 0), and
// returns the k nearest results. l < k is a rejected precondition: a pool of
// size l can never hold k results.
func (idx *Index[T]) Search(ctx context.Context, query []T, k, l int) ([]beam.Result, error) {
	start := time.Now()
	if l <= 0 {
		l = idx.opts.searchL
	}

	top, _, _, err := beam.Search[T](query, []uint32{idx.entryPoint}, l, k, idx.graph, idx.points)
	idx.opts.metricsCollector.RecordSearch(k, time.Since(start), err)
	idx.opts.logger.LogSearch(ctx, k, len(top), err)
	if err != nil {
		return nil, translateError(err)
	}
	return top, nil
}

// Len returns N, the number of indexed points.
func (idx *Index[T]) Len() int { return idx.points.Len() }

// Dim returns D, the dimension of each indexed point.
func (idx *Index[T]) Dim() int { return idx.points.Dim() }

// EntryPoint returns the id selected as the build's entry point.
func (idx *Index[T]) EntryPoint() uint32 { return idx.entryPoint }
