package webapi

import "fmt"

// APIError represents a non-2xx response from the web API. The raw
// response body is preserved.
type APIError struct {
	// Op is the operation that failed (e.g., "sync", "login /user/signon")
	Op string

	// StatusCode is the HTTP status of the failed response
	StatusCode int

	// Body is the raw response body
	Body string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("web API %s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
}

// LoginError reports that every known login endpoint failed. Err is the
// error from the last endpoint attempted.
type LoginError struct {
	Err error
}

// Error implements the error interface
func (e *LoginError) Error() string {
	return fmt.Sprintf("web API login failed (all endpoints tried): %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *LoginError) Unwrap() error {
	return e.Err
}
