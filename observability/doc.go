// Package observability provides a metrics hook that records
// dispatch-level counters and histograms via OpenTelemetry.
//
// Register it as an omnibar hook to automatically track cycle counts,
// contributed result counts, cycle latency, match faults, match
// timeouts, and execute outcomes. Without a configured MeterProvider
// all instruments are noops.
package observability
