package build

// BuildReport summarizes a completed build: point and edge counts, how many
// edges each stage contributed in total, how many points needed a
// connectivity repair edge, and a BFS-level histogram from the entry point
// (the original command-line tools printed an equivalent report via
// print_status/count_nodes_at_bfs_levels; here it is returned instead of
// printed, keeping Build side-effect-free — §12).
type BuildReport struct {
	PointCount          int
	EdgeCount           int
	PerStageEdges       []int
	ConnectivityRepairs int
	BFSLevelHistogram   map[int]int
}

func (b *Builder[T]) buildReport(entry uint32, repaired int) BuildReport {
	n := b.points.Len()
	edgeCount := 0
	for i := 0; i < n; i++ {
		edgeCount += b.graph.Degree(uint32(i))
	}

	stageTotals := make([]int, len(b.stageTotals))
	for i := range b.stageTotals {
		stageTotals[i] = int(b.stageTotals[i].Load())
	}

	histogram := map[int]int{}
	levels, _ := b.bfsLevels(entry)
	for _, lvl := range levels {
		if lvl >= 0 {
			histogram[lvl]++
		}
	}

	return BuildReport{
		PointCount:          n,
		EdgeCount:           edgeCount,
		PerStageEdges:       stageTotals,
		ConnectivityRepairs: repaired,
		BFSLevelHistogram:   histogram,
	}
}
