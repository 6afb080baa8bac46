// Package logging provides structured logging utilities for the ticktick CLI.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Install the default logger once at startup:
//
//	logging.Setup(cfg.LogLevel)
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "task.list")
//	logger.Debug("listing tasks", logging.Project(projectID))
//
// # Security Considerations
//
// Session and access tokens are never logged directly; use SanitizeToken
// when a token-related diagnostic is needed.
package logging
