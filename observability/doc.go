// Package observability initializes OpenTelemetry metrics and tracing for
// whisperd and defines the scheduler's instruments.
//
// Observability is gated by config and only ever observes: no scheduling
// decision depends on whether it is enabled.
package observability
