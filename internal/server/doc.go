// Package server provides the MCP server context and metrics server for
// the ticktick-cli serve mode.
//
// ServerContext owns the TickTick dispatcher client shared by all MCP tool
// handlers, together with the instrumentation provider used to record tool
// and API metrics. It is created once at startup and passed to tool
// registration.
//
// MetricsServer serves Prometheus metrics on a dedicated HTTP port so that
// scraping stays off the MCP stdio transport. It exposes /metrics and a
// basic /healthz endpoint, and is only started when instrumentation is
// enabled.
package server
