// Package webapi provides a client for the internal TickTick web API.
//
// This is the undocumented interface used by the vendor's own web client.
// Access works by reconstructing a browser-like client identity: a
// randomized per-process device id embedded in an x-device header, a fixed
// Chrome-on-macOS fingerprint, a session cookie obtained by credential
// login, and a CSRF token required for the multipart attachment upload.
//
// The package offers the operations the official Open API lacks:
//   - Full-account sync snapshot (tasks, projects, tags, folders)
//   - Completed-task listing, per project or across all projects
//   - Batch tag mutations
//   - Attachment upload (multipart, different path version)
//   - User profile and preference settings
//
// Login tries the known login endpoints in order; which one the backend
// accepts varies by version, so both are kept and the last error is
// reported if all fail. The session lives in memory for the process
// lifetime and is never persisted.
//
// Example usage:
//
//	client, err := webapi.NewClient(username, password)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	snapshot, err := client.Sync(ctx) // logs in on first use
package webapi
