package gridvamana

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational telemetry for both build and search.
// Implement this to integrate with a monitoring system; the concrete types
// below satisfy the narrower per-package interfaces (build.Metrics) used
// internally, so they can be passed straight through to Build.
type MetricsCollector interface {
	// RecordBuildPoint is called once per stage per built point, with the
	// size of the candidate pool that stage drew from.
	RecordBuildPoint(stage int, distComparisons int)

	// RecordBackEdgeCapacityPrune is called whenever inserting a back edge
	// pushed a vertex's adjacency list past R*slack and required a prune.
	RecordBackEdgeCapacityPrune()

	// RecordSearch is called after each query-time search.
	RecordSearch(k int, duration time.Duration, err error)
}

// NoopMetricsCollector discards everything. It is the default.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuildPoint(int, int)             {}
func (NoopMetricsCollector) RecordBackEdgeCapacityPrune()          {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error) {}

// BasicMetricsCollector is a simple in-memory collector, useful for
// debugging without wiring an external monitoring system.
type BasicMetricsCollector struct {
	BuildPointCount       atomic.Int64
	BuildDistComparisons  atomic.Int64
	BackEdgeCapacityPrunes atomic.Int64
	SearchCount           atomic.Int64
	SearchErrors          atomic.Int64
	SearchTotalNanos      atomic.Int64
}

func (b *BasicMetricsCollector) RecordBuildPoint(stage int, distComparisons int) {
	b.BuildPointCount.Add(1)
	b.BuildDistComparisons.Add(int64(distComparisons))
}

func (b *BasicMetricsCollector) RecordBackEdgeCapacityPrune() {
	b.BackEdgeCapacityPrunes.Add(1)
}

func (b *BasicMetricsCollector) RecordSearch(k int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildPointCount        int64
	BuildDistComparisons   int64
	BackEdgeCapacityPrunes int64
	SearchCount            int64
	SearchErrors           int64
	SearchAvgNanos         int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	count := b.SearchCount.Load()
	var avg int64
	if count > 0 {
		avg = b.SearchTotalNanos.Load() / count
	}
	return BasicMetricsStats{
		BuildPointCount:        b.BuildPointCount.Load(),
		BuildDistComparisons:   b.BuildDistComparisons.Load(),
		BackEdgeCapacityPrunes: b.BackEdgeCapacityPrunes.Load(),
		SearchCount:            count,
		SearchErrors:           b.SearchErrors.Load(),
		SearchAvgNanos:         avg,
	}
}
