// Package ticktick unifies the two TickTick backend interfaces behind a
// single client.
//
// Each operation falls into one of three capability classes:
//   - requires the official open interface (task/project CRUD)
//   - requires the internal web interface (search, tags, completed tasks,
//     sync, attachment upload, user info)
//   - prefers the open interface with a web fallback (project listing,
//     task listing)
//
// Capabilities are fixed at construction time by which credentials are
// present; an operation invoked without its interface fails with
// *CapabilityError before any network access. Constructing with no
// credentials at all fails with ErrNoCredentials.
//
// Partial task updates are performed as get-merge-post: the backend's
// update endpoint erases fields it does not receive, so the full task is
// fetched, the caller's fields overlaid, and the merged record submitted.
package ticktick
