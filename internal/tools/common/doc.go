// Package common provides shared utilities for MCP tool implementations.
// It contains the instrumented handler wrapper used by all tool packages
// to record invocation metrics consistently.
package common
