// Package instrumentation provides OpenTelemetry-based metrics for the
// MCP serve mode.
//
// The Provider wires an otel meter provider to a Prometheus exporter and
// hands out a Metrics recorder for:
//   - TickTick API operations (counter + duration histogram, labeled by
//     interface, operation and status)
//   - MCP tool invocations (counter + duration histogram, labeled by tool
//     and status)
//
// A disabled provider returns a no-op recorder, so call sites never need
// to branch on whether metrics are on.
package instrumentation
