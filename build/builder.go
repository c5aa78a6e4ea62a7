package build

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/gridvamana/beam"
	"github.com/hupe1980/gridvamana/distance"
	"github.com/hupe1980/gridvamana/graphstore"
	"github.com/hupe1980/gridvamana/grid"
	"github.com/hupe1980/gridvamana/pointstore"
)

// ErrNoPoints is returned by NewBuilder when the point store is empty.
var ErrNoPoints = errors.New("build: point store has zero points")

// Metrics receives per-point build telemetry. Satisfied structurally by the
// root package's MetricsCollector implementations; nil disables telemetry.
type Metrics interface {
	RecordBuildPoint(stage int, distComparisons int)
	RecordBackEdgeCapacityPrune()
}

// AbortFunc is called exactly once, from the goroutine that observed the
// failure, when a build point aborts (§7: "Build aborts print the stage and
// point id at which failure occurred").
type AbortFunc func(stage int, pointID uint32, err error)

// Builder owns the point store, the partial graph, and the per-vertex locks
// during construction. It is the IndexBuilder half of the IndexBuilder/Index
// split recommended in the design notes; Build consumes it and returns a
// frozen result.
type Builder[T distance.Elem] struct {
	points *pointstore.Store[T]
	opts   Options
	grid   grid.Map
	graph  *graphstore.Graph

	metrics Metrics
	onAbort AbortFunc

	randMu sync.Mutex
	rng    *rand.Rand

	processedMu sync.Mutex
	processed   []uint32

	stageTotals []atomic.Int64 // per-stage accepted-edge totals, for BuildReport

	entryPoint uint32 // provisional seed during build; finalized after Build
}

// NewBuilder constructs a Builder over points with the given options. opts
// must already satisfy Validate.
func NewBuilder[T distance.Elem](points *pointstore.Store[T], opts Options, metrics Metrics, onAbort AbortFunc) (*Builder[T], error) {
	if points.Len() == 0 {
		return nil, ErrNoPoints
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Builder[T]{
		points:      points,
		opts:        opts,
		grid:        grid.New(opts.GridSize, opts.CellSize, opts.Dim),
		graph:       graphstore.New(points.Len(), opts.R, opts.Slack),
		metrics:     metrics,
		onAbort:     onAbort,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		stageTotals: make([]atomic.Int64, len(opts.Stages)),
	}, nil
}

// Result is what Build returns: the frozen graph, the entry point chosen at
// build end, and a status report.
type Result struct {
	Graph      *graphstore.Graph
	EntryPoint uint32
	Report     BuildReport
}

// Build runs the bootstrap, the per-point stage-partitioned pass (twice if
// TwoPass), a final prune of every adjacency list back to R, entry-point
// selection, and connectivity repair against that final entry point. On cancellation it returns ctx.Err() and the caller
// must discard the partial graph.
func (b *Builder[T]) Build(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := b.points.Len()
	b.bootstrapRandomEdges()
	b.entryPoint = 0

	passes := 1
	if b.opts.TwoPass {
		passes = 2
	}
	for pass := 0; pass < passes; pass++ {
		order := b.rng.Perm(n)
		if err := b.runPass(ctx, order); err != nil {
			return nil, err
		}
	}

	// Back-edge insertion lets a list grow up to Capacity() before a capacity
	// prune runs; restore |adj(p)| <= R on every vertex.
	for i := 0; i < n; i++ {
		pv := b.points.At(i)
		b.graph.WithLock(uint32(i), func(adj []uint32) []uint32 {
			return graphstore.PruneTo(adj, b.opts.R, func(id uint32) float64 {
				return distance.SquaredL2(pv, b.points.At(int(id)))
			})
		})
	}

	entry, err := b.selectEntryPoint(ctx)
	if err != nil {
		return nil, err
	}
	b.entryPoint = entry

	repaired, err := b.repairConnectivity(ctx, entry)
	if err != nil {
		return nil, err
	}

	report := b.buildReport(entry, repaired)
	return &Result{Graph: b.graph, EntryPoint: entry, Report: report}, nil
}

// bootstrapRandomEdges seeds every vertex with up to R/2 random out-edges so
// the first pass's beam search has something to traverse; the per-point
// procedure replaces each vertex's list wholesale once it is processed.
func (b *Builder[T]) bootstrapRandomEdges() {
	n := b.points.Len()
	half := b.opts.R / 2
	if half < 1 {
		half = 1
	}
	for i := 0; i < n; i++ {
		if half >= n {
			continue
		}
		seen := map[uint32]bool{uint32(i): true}
		edges := make([]uint32, 0, half)
		for len(edges) < half {
			j := uint32(b.rng.Intn(n))
			if !seen[j] {
				seen[j] = true
				edges = append(edges, j)
			}
		}
		b.graph.SetNeighbors(uint32(i), edges)
	}
}

func (b *Builder[T]) runPass(ctx context.Context, order []int) error {
	work := make(chan uint32)
	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < b.opts.NumThreads; w++ {
		g.Go(func() error {
			for id := range work {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := b.buildPoint(gctx, id); err != nil {
					if b.onAbort != nil {
						b.onAbort(0, id, err)
					}
					return err
				}
				b.processedMu.Lock()
				b.processed = append(b.processed, id)
				b.processedMu.Unlock()
			}
			return nil
		})
	}

feed:
	for _, id := range order {
		select {
		case work <- uint32(id):
		case <-gctx.Done():
			break feed
		}
	}
	close(work)

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// seedSet returns {provisional entry point} ∪ {up to 3 random already-
// processed ids}, excluding self; if that leaves no seed, it returns {self}.
func (b *Builder[T]) seedSet(self uint32) []uint32 {
	seeds := make([]uint32, 0, 4)
	if b.entryPoint != self {
		seeds = append(seeds, b.entryPoint)
	}

	b.processedMu.Lock()
	n := len(b.processed)
	const k = 3
	take := k
	if take > n {
		take = n
	}
	b.randMu.Lock()
	for i := 0; i < take; i++ {
		id := b.processed[b.rng.Intn(n)]
		if id != self {
			seeds = append(seeds, id)
		}
	}
	b.randMu.Unlock()
	b.processedMu.Unlock()

	if len(seeds) == 0 {
		seeds = append(seeds, self)
	}
	return seeds
}

// buildPoint runs the per-point procedure of §4.6: gather candidates via
// beam search, stage-partition and alpha-prune them, commit adj(p), and
// insert back edges.
func (b *Builder[T]) buildPoint(ctx context.Context, p uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pv := b.points.At(int(p))
	seeds := b.seedSet(p)

	_, pool, _, err := beam.Search[T](pv, seeds, b.opts.MaxStageL(), b.opts.MaxStageL(), b.graph, b.points)
	if err != nil {
		return fmt.Errorf("build: point %d beam search: %w", p, err)
	}

	candidates := make([]beam.Result, 0, len(pool))
	for _, r := range pool {
		if r.ID != p {
			candidates = append(candidates, r)
		}
	}

	adjList := make([]uint32, 0, b.opts.R)
	adjSet := make(map[uint32]bool, b.opts.R)
	candDist := make(map[uint32]float64, len(candidates))
	for _, c := range candidates {
		candDist[c.ID] = c.Dist
	}

	for stageIdx, stage := range b.opts.Stages {
		stagePool := make([]beam.Result, 0, stage.L)
		for _, c := range candidates {
			if len(stagePool) >= stage.L {
				break
			}
			if stage.Shell.Contains(grid.Chebyshev(grid.CellOf(b.grid, pv), grid.CellOf(b.grid, b.points.At(int(c.ID))))) {
				stagePool = append(stagePool, c)
			}
		}

		alpha := stage.Alpha
		if alpha <= 0 {
			alpha = b.opts.Alpha
		}
		accepted := alphaPrune(stagePool, stage.R, alpha, func(n, c uint32) float64 {
			return distance.SquaredL2(b.points.At(int(n)), b.points.At(int(c)))
		})
		if b.metrics != nil {
			b.metrics.RecordBuildPoint(stageIdx+1, len(stagePool))
		}
		b.stageTotals[stageIdx].Add(int64(len(accepted)))
		for _, id := range accepted {
			if !adjSet[id] {
				adjSet[id] = true
				adjList = append(adjList, id)
			}
		}
	}

	if b.opts.SaturateGraph {
		for _, c := range candidates {
			if len(adjList) >= b.opts.R {
				break
			}
			if !adjSet[c.ID] {
				adjSet[c.ID] = true
				adjList = append(adjList, c.ID)
			}
		}
	}

	if len(adjList) > b.opts.R {
		sort.Slice(adjList, func(i, j int) bool {
			di, dj := candDist[adjList[i]], candDist[adjList[j]]
			if di != dj {
				return di < dj
			}
			return adjList[i] < adjList[j]
		})
		adjList = adjList[:b.opts.R]
	}

	b.graph.SetNeighbors(p, adjList)

	for _, q := range adjList {
		b.addBackEdge(q, p)
	}
	return nil
}

// addBackEdge inserts q -> p, subject to q's capacity, invoking the
// alpha-prune over adj(q) ∪ {p} (re-sorted by distance to q) when the
// append would exceed floor(R*slack) (§4.6 Back-edge insertion).
func (b *Builder[T]) addBackEdge(q, p uint32) {
	if q == p {
		return
	}
	qv := b.points.At(int(q))
	ceil := b.graph.Capacity()
	overflowed := false

	b.graph.WithLock(q, func(adj []uint32) []uint32 {
		for _, x := range adj {
			if x == p {
				return adj
			}
		}
		candidate := append(append([]uint32{}, adj...), p)
		if len(candidate) <= ceil {
			return candidate
		}
		overflowed = true
		results := make([]beam.Result, len(candidate))
		for i, id := range candidate {
			results[i] = beam.Result{ID: id, Dist: distance.SquaredL2(qv, b.points.At(int(id)))}
		}
		sort.Slice(results, func(i, j int) bool {
			if results[i].Dist != results[j].Dist {
				return results[i].Dist < results[j].Dist
			}
			return results[i].ID < results[j].ID
		})
		return alphaPrune(results, b.opts.R, b.opts.Alpha, func(n, c uint32) float64 {
			return distance.SquaredL2(b.points.At(int(n)), b.points.At(int(c)))
		})
	})

	if overflowed && b.metrics != nil {
		b.metrics.RecordBackEdgeCapacityPrune()
	}
}

// alphaPrune selects up to maxR ids from cands (already sorted ascending by
// distance to the reference vertex) under the relative-neighborhood rule:
// accept c unless some earlier-accepted n occludes it, i.e.
// distBetween(n, c) <= c.Dist/alpha.
func alphaPrune(cands []beam.Result, maxR int, alpha float64, distBetween func(n, c uint32) float64) []uint32 {
	accepted := make([]uint32, 0, maxR)
	for _, c := range cands {
		if len(accepted) >= maxR {
			break
		}
		occluded := false
		for _, n := range accepted {
			if distBetween(n, c.ID) <= c.Dist/alpha {
				occluded = true
				break
			}
		}
		if !occluded {
			accepted = append(accepted, c.ID)
		}
	}
	return accepted
}
