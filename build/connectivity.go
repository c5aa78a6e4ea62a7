package build

import "context"

// bfsLevels walks the out-edges of the committed graph from start,
// recording each reached id's hop count; unreached ids keep level -1.
func (b *Builder[T]) bfsLevels(start uint32) ([]int, error) {
	n := b.points.Len()
	levels := make([]int, n)
	for i := range levels {
		levels[i] = -1
	}
	levels[start] = 0

	queue := []uint32{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range b.graph.Neighbors(cur) {
			if levels[nb] == -1 {
				levels[nb] = levels[cur] + 1
				queue = append(queue, nb)
			}
		}
	}
	return levels, nil
}

// repairConnectivity finds every id unreachable from entryPoint via
// out-edges and attaches it with one inbound edge from its nearest reachable
// vertex, bypassing the degree cap: connectivity is a hard invariant (§3
// Graph invariants), so a repair edge is never pruned away. entryPoint must
// be the final, selected entry point (the one the built index will seed
// every query from), not a provisional placeholder — reachability is only
// meaningful relative to the entry point actually shipped.
func (b *Builder[T]) repairConnectivity(ctx context.Context, entryPoint uint32) (int, error) {
	levels, err := b.bfsLevels(entryPoint)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for id := 0; id < b.points.Len(); id++ {
		if levels[id] >= 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return repaired, err
		}

		qv := b.points.At(id)
		_, pool, _, err := beamSearchNearest(b, qv, entryPoint)
		if err != nil {
			return repaired, err
		}

		src := entryPoint
		if len(pool) > 0 {
			src = pool[0].ID
		}

		target := uint32(id)
		b.graph.WithLock(src, func(adj []uint32) []uint32 {
			for _, x := range adj {
				if x == target {
					return adj
				}
			}
			return append(adj, target)
		})
		repaired++
	}
	return repaired, nil
}
