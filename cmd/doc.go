// Package cmd implements the command-line interface for ticktick.
//
// This package provides the following commands:
//   - project: List, inspect, create, update and delete projects
//   - task: List, inspect, create, update, complete and delete tasks
//   - search: Search open tasks by text
//   - completed: List recently completed tasks
//   - tag: List and create tags
//   - sync: Fetch the full account state
//   - attach: Upload a file attachment to a task
//   - user: Show the account profile and settings
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//
// All commands print their result as indented JSON on stdout. Errors are
// printed as a one-line JSON object on stderr and exit with status 1.
package cmd
