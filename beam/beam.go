package beam

import (
	"errors"
	"sort"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/gridvamana/distance"
)

// ErrInvalidSeed is returned when a seed id falls outside [0, N).
var ErrInvalidSeed = errors.New("beam: seed id out of range")

// ErrListTooSmall is returned when the candidate list size l is smaller than
// the requested result count k: a pool of size l can never hold k results.
var ErrListTooSmall = errors.New("beam: list size l is smaller than k")

// Result is one (id, distance) pair in the search pool.
type Result struct {
	ID   uint32
	Dist float64
}

// Stats carries per-search telemetry: hops equals the number of pool pops,
// DistComparisons equals the number of (query, candidate) pairs evaluated.
type Stats struct {
	Hops            int
	DistComparisons int
}

// GraphReader is the read side of graphstore.Graph that beam search needs.
// Implementations must return a point-in-time snapshot safe to scan without
// holding any lock (graphstore.Graph.Neighbors already does this).
type GraphReader interface {
	Neighbors(id uint32) []uint32
}

// PointReader is the read side of pointstore.Store that beam search needs.
type PointReader[T distance.Elem] interface {
	At(id int) []T
	Len() int
}

type entry struct {
	id     uint32
	dist   float64
	popped bool
}

// insertSorted inserts e into pool, which is kept sorted ascending by
// (dist, id ascending), truncating to at most capL entries. Ties break on id
// ascending so results are deterministic regardless of insertion order.
func insertSorted(pool []entry, capL int, e entry) []entry {
	idx := sort.Search(len(pool), func(i int) bool {
		if pool[i].dist != e.dist {
			return pool[i].dist > e.dist
		}
		return pool[i].id > e.id
	})
	if idx == len(pool) {
		if len(pool) < capL {
			return append(pool, e)
		}
		return pool
	}
	pool = append(pool, entry{})
	copy(pool[idx+1:], pool[idx:])
	pool[idx] = e
	if len(pool) > capL {
		pool = pool[:capL]
	}
	return pool
}

// bitsetPool reuses visited-bit structures across calls (one per worker in
// the builder's goroutine pool), mirroring the teacher's sync.Pool of
// visited bitsets in index/diskann.
var bitsetPool = sync.Pool{
	New: func() any { return &bitset.BitSet{} },
}

func getBitset(n int) *bitset.BitSet {
	b := bitsetPool.Get().(*bitset.BitSet)
	b.ClearAll()
	if uint(n) > b.Len() {
		b = bitset.New(uint(n))
	}
	return b
}

func putBitset(b *bitset.BitSet) {
	bitsetPool.Put(b)
}

// Search runs the bounded best-first walk described in the beam search
// component: starting from seeds, it maintains a pool of at most l
// candidates, repeatedly expanding the closest unvisited entry, until every
// pool entry has been visited.
//
// It returns the best min(k, len(pool)) entries sorted by ascending
// distance, the full final pool (also ascending) as the candidate trace the
// builder stratifies by grid shell, and hop/comparison counters.
func Search[T distance.Elem](
	query []T,
	seeds []uint32,
	l, k int,
	g GraphReader,
	ps PointReader[T],
) (topK []Result, pool []Result, stats Stats, err error) {
	if l < k {
		return nil, nil, Stats{}, ErrListTooSmall
	}

	for _, s := range seeds {
		if int(s) < 0 || int(s) >= ps.Len() {
			return nil, nil, Stats{}, ErrInvalidSeed
		}
	}

	seen := getBitset(ps.Len())
	defer putBitset(seen)

	ent := make([]entry, 0, l)
	for _, s := range seeds {
		if seen.Test(uint(s)) {
			continue
		}
		seen.Set(uint(s))
		d := distance.SquaredL2(query, ps.At(int(s)))
		stats.DistComparisons++
		ent = insertSorted(ent, l, entry{id: s, dist: d})
	}

	if k > 0 {
		for {
			idx := -1
			for i := range ent {
				if !ent[i].popped {
					idx = i
					break
				}
			}
			if idx == -1 {
				break
			}
			ent[idx].popped = true
			stats.Hops++

			for _, nb := range g.Neighbors(ent[idx].id) {
				if seen.Test(uint(nb)) {
					continue
				}
				seen.Set(uint(nb))
				d := distance.SquaredL2(query, ps.At(int(nb)))
				stats.DistComparisons++
				ent = insertSorted(ent, l, entry{id: nb, dist: d})
			}
		}
	}

	pool = make([]Result, len(ent))
	for i, e := range ent {
		pool[i] = Result{ID: e.id, Dist: e.dist}
	}

	n := k
	if n > len(pool) {
		n = len(pool)
	}
	if n < 0 {
		n = 0
	}
	topK = pool[:n]
	return topK, pool, stats, nil
}
