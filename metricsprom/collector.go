package metricsprom

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetricsCollector satisfies gridvamana.MetricsCollector, exporting
// build and search telemetry as Prometheus client metrics.
type PrometheusMetricsCollector struct {
	buildPoints     *prometheus.CounterVec
	distComparisons *prometheus.CounterVec
	capacityPrunes  prometheus.Counter
	searchLatency   *prometheus.HistogramVec
	searchTotal     *prometheus.CounterVec
}

// New creates a PrometheusMetricsCollector and registers its metrics with reg.
// Pass prometheus.DefaultRegisterer to use the global registry.
func New(reg prometheus.Registerer) *PrometheusMetricsCollector {
	c := &PrometheusMetricsCollector{
		buildPoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridvamana_build_points_total",
			Help: "Points processed per build stage",
		}, []string{"stage"}),
		distComparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridvamana_build_dist_comparisons_total",
			Help: "Candidate-pool entries considered per build stage",
		}, []string{"stage"}),
		capacityPrunes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gridvamana_back_edge_capacity_prunes_total",
			Help: "Back-edge insertions that triggered a capacity prune",
		}),
		searchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridvamana_search_latency_seconds",
			Help:    "Query-time beam search latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"status"}),
		searchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridvamana_searches_total",
			Help: "Query-time searches performed",
		}, []string{"status"}),
	}

	reg.MustRegister(c.buildPoints, c.distComparisons, c.capacityPrunes, c.searchLatency, c.searchTotal)
	return c
}

func (c *PrometheusMetricsCollector) RecordBuildPoint(stage int, distComparisons int) {
	label := stageLabel(stage)
	c.buildPoints.WithLabelValues(label).Inc()
	c.distComparisons.WithLabelValues(label).Add(float64(distComparisons))
}

func (c *PrometheusMetricsCollector) RecordBackEdgeCapacityPrune() {
	c.capacityPrunes.Inc()
}

func (c *PrometheusMetricsCollector) RecordSearch(k int, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.searchTotal.WithLabelValues(status).Inc()
	c.searchLatency.WithLabelValues(status).Observe(duration.Seconds())
}

func stageLabel(stage int) string {
	if stage <= 0 {
		return "bootstrap"
	}
	return strconv.Itoa(stage)
}
