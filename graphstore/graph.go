package graphstore

import (
	"sort"
	"sync"
)

// Graph is a directed graph over ids [0, N): one adjacency list per vertex,
// each independently locked. There is no global lock; a writer publishes a
// complete replacement slice under the vertex's own mutex, and a reader
// copies the current slice under that same lock before scanning it lock-free.
type Graph struct {
	r        int
	capacity int // R * slack, the transient overflow ceiling during build
	verts    []vertex
}

type vertex struct {
	mu  sync.Mutex
	adj []uint32
}

// New allocates a graph of n empty vertices, each adjacency list pre-sized
// to R*slack capacity.
func New(n, r int, slack float64) *Graph {
	cap := int(float64(r) * slack)
	if cap < r {
		cap = r
	}
	g := &Graph{r: r, capacity: cap, verts: make([]vertex, n)}
	for i := range g.verts {
		g.verts[i].adj = make([]uint32, 0, cap)
	}
	return g
}

// Len returns N, the vertex count.
func (g *Graph) Len() int { return len(g.verts) }

// R returns the final per-vertex degree cap.
func (g *Graph) R() int { return g.r }

// Capacity returns the transient overflow ceiling floor(R*slack) allowed
// during build before a capacity prune must run.
func (g *Graph) Capacity() int { return g.capacity }

// Neighbors returns a snapshot copy of p's current out-neighbors.
func (g *Graph) Neighbors(p uint32) []uint32 {
	v := &g.verts[p]
	v.mu.Lock()
	out := make([]uint32, len(v.adj))
	copy(out, v.adj)
	v.mu.Unlock()
	return out
}

// Degree returns the current out-degree of p.
func (g *Graph) Degree(p uint32) int {
	v := &g.verts[p]
	v.mu.Lock()
	n := len(v.adj)
	v.mu.Unlock()
	return n
}

// SetNeighbors replaces p's adjacency list wholesale under p's lock.
func (g *Graph) SetNeighbors(p uint32, list []uint32) {
	v := &g.verts[p]
	v.mu.Lock()
	v.adj = append(v.adj[:0], list...)
	v.mu.Unlock()
}

// TryAppend appends q to p's adjacency list if q is not already present and
// the list has fewer than capLimit entries. Returns true if the append
// pushed the list's length past g.capacity (the R*slack transient ceiling),
// signalling that the caller should run a capacity prune on p.
func (g *Graph) TryAppend(p, q uint32, capLimit int) (appended, overflowed bool) {
	if p == q {
		return false, false
	}
	v := &g.verts[p]
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, x := range v.adj {
		if x == q {
			return false, false
		}
	}
	if len(v.adj) >= capLimit {
		return false, false
	}
	v.adj = append(v.adj, q)
	return true, len(v.adj) > g.capacity
}

// WithLock runs fn with p's vertex lock held, passing the live (not copied)
// adjacency slice. fn must not retain the slice past the call and may
// replace it by returning a new one, which is published before unlocking.
// This is the primitive the builder's capacity-prune step uses: read,
// re-prune, and write back without releasing the lock in between.
func (g *Graph) WithLock(p uint32, fn func(adj []uint32) []uint32) {
	v := &g.verts[p]
	v.mu.Lock()
	v.adj = fn(v.adj)
	v.mu.Unlock()
}

// PruneTo restores |adj(p)| <= R by keeping only the R entries nearest to p,
// using distToP to rank candidates and id-ascending as a deterministic
// tie-break. Intended to be called from inside WithLock.
func PruneTo(adj []uint32, r int, distToP func(id uint32) float64) []uint32 {
	if len(adj) <= r {
		return adj
	}
	sorted := make([]uint32, len(adj))
	copy(sorted, adj)
	sort.Slice(sorted, func(i, j int) bool {
		di, dj := distToP(sorted[i]), distToP(sorted[j])
		if di != dj {
			return di < dj
		}
		return sorted[i] < sorted[j]
	})
	out := make([]uint32, r)
	copy(out, sorted[:r])
	return out
}
