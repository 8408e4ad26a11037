package metrics

// Package metrics provides Prometheus metrics for the send service.
//
// This package includes:
// - HTTP request metrics (count, latency, errors)
// - Send submission and max-amount calculation counters
// - A metrics HTTP server on its own port
// - Echo middleware for automatic request instrumentation
