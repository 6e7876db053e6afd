// Package middleware provides HTTP middleware for strata apps: Prometheus
// request metrics and OpenTelemetry request tracing. Both are keyed by the
// matched route pattern so parameterized routes produce bounded label
// cardinality.
package middleware
