package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"ticktick-cli/internal/instrumentation"
	"ticktick-cli/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with invocation metrics.
// The metrics recorder is a no-op when instrumentation is disabled, so the
// wrapper is safe to apply unconditionally.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics := sc.Metrics()
		if metrics == nil {
			return handler(ctx, request)
		}

		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}
		metrics.RecordToolInvocation(ctx, toolName, status, duration)

		return result, err
	}
}

// InstrumentedToolHandlerWithAPI is like InstrumentedToolHandler but also
// records the backend interface and operation, giving per-backend
// visibility into which API calls are made and how long they take.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithAPI("my_tool", logging.InterfaceOpen, "create_task", sc, handler))
func InstrumentedToolHandlerWithAPI(
	toolName string,
	iface string,
	operation string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics := sc.Metrics()
		if metrics == nil {
			return handler(ctx, request)
		}

		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}
		metrics.RecordToolInvocation(ctx, toolName, status, duration)
		metrics.RecordAPIOperation(ctx, iface, operation, status, duration)

		return result, err
	}
}
