// Package metricsprom bridges gridvamana's MetricsCollector interface to
// Prometheus client metrics, for callers that already scrape a /metrics
// endpoint and want build/search telemetry folded into it.
package metricsprom
