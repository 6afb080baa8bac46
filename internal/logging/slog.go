package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyInterface = "interface"
	KeyProject   = "project"
	KeyTask      = "task"
	KeyEndpoint  = "endpoint"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyTool      = "tool"
)

// Interface values for the KeyInterface attribute.
const (
	InterfaceOpen = "open"
	InterfaceWeb  = "web"
)

// Setup installs the process-wide default logger: text output on stderr so
// that stdout stays reserved for command results. Unknown level names fall
// back to warn, which keeps normal CLI runs quiet.
func Setup(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithInterface returns a logger with the interface attribute set.
func WithInterface(logger *slog.Logger, iface string) *slog.Logger {
	return logger.With(slog.String(KeyInterface, iface))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Interface returns a slog attribute for the backend interface ("open" or "web").
func Interface(iface string) slog.Attr {
	return slog.String(KeyInterface, iface)
}

// Project returns a slog attribute for a project id.
func Project(id string) slog.Attr {
	return slog.String(KeyProject, id)
}

// Task returns a slog attribute for a task id.
func Task(id string) slog.Attr {
	return slog.String(KeyTask, id)
}

// Endpoint returns a slog attribute for a request path.
func Endpoint(path string) slog.Attr {
	return slog.String(KeyEndpoint, path)
}

// Tool returns a slog attribute for an MCP tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Status returns a slog attribute for an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// Err returns a slog attribute for an error. If err is nil, returns an
// empty Group attribute that will be omitted from output, so
// Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken returns a masked version of a token for logging. It
// reports only the length; even partial token prefixes can aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
