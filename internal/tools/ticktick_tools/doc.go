// Package ticktick_tools provides MCP tool implementations for TickTick
// task management.
//
// The package registers tools for project and task CRUD, search, completed
// task history, tags and sync summaries. Tools that modify remote state are
// omitted when the server runs in read-only mode. Operations that need
// credentials the server does not hold fail per-call with a capability
// error naming the missing environment variables.
package ticktick_tools
