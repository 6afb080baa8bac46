package openapi

import "fmt"

// APIError represents a non-2xx response from the Open API. The raw
// response body is preserved so that backend diagnostics reach the user
// unmodified.
type APIError struct {
	// Op is the operation that failed (e.g., "get task", "list projects")
	Op string

	// StatusCode is the HTTP status of the failed response
	StatusCode int

	// Body is the raw response body
	Body string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("open API %s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
}
