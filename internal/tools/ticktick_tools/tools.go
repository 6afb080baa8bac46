package ticktick_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"ticktick-cli/internal/logging"
	"ticktick-cli/internal/model"
	"ticktick-cli/internal/server"
	"ticktick-cli/internal/tools/common"
)

// RegisterTickTickTools registers all TickTick tools with the MCP server.
// When readOnly is true, only tools that cannot modify remote state are
// registered.
func RegisterTickTickTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerProjectTools(s, sc); err != nil {
		return fmt.Errorf("failed to register project tools: %w", err)
	}
	if err := registerTaskTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register task tools: %w", err)
	}
	if err := registerQueryTools(s, sc); err != nil {
		return fmt.Errorf("failed to register query tools: %w", err)
	}
	if err := registerTagTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register tag tools: %w", err)
	}
	return nil
}

func jsonResult(v interface{}) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// registerProjectTools registers project listing and lookup tools
func registerProjectTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listProjectsTool := mcp.NewTool("ticktick_list_projects",
		mcp.WithDescription("List all TickTick projects (lists) visible to the authenticated user"),
	)

	s.AddTool(listProjectsTool, common.InstrumentedToolHandler("ticktick_list_projects", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projects, err := sc.Client().ListProjects(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list projects: %v", err)), nil
			}
			return jsonResult(projects), nil
		}))

	getProjectTool := mcp.NewTool("ticktick_get_project",
		mcp.WithDescription("Get details of a specific project, including its tasks and kanban columns"),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("The ID of the project to retrieve"),
		),
	)

	s.AddTool(getProjectTool, common.InstrumentedToolHandlerWithAPI("ticktick_get_project", logging.InterfaceOpen, "get_project_data", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			projectID, ok := args["projectId"].(string)
			if !ok || projectID == "" {
				return mcp.NewToolResultError("projectId is required"), nil
			}

			data, err := sc.Client().GetProjectData(ctx, projectID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get project: %v", err)), nil
			}
			return jsonResult(data), nil
		}))

	return nil
}

// registerTaskTools registers task CRUD tools. Mutating tools are skipped
// in read-only mode.
func registerTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTasksTool := mcp.NewTool("ticktick_list_tasks",
		mcp.WithDescription("List open tasks, optionally scoped to a single project"),
		mcp.WithString("projectId",
			mcp.Description("Project ID to scope the listing to. Omit for all projects."),
		),
	)

	s.AddTool(listTasksTool, common.InstrumentedToolHandler("ticktick_list_tasks", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			projectID := ""
			if p, ok := args["projectId"].(string); ok {
				projectID = p
			}

			tasks, err := sc.Client().ListTasks(ctx, projectID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list tasks: %v", err)), nil
			}
			return jsonResult(tasks), nil
		}))

	getTaskTool := mcp.NewTool("ticktick_get_task",
		mcp.WithDescription("Get details of a specific task"),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("The ID of the project containing the task"),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task to retrieve"),
		),
	)

	s.AddTool(getTaskTool, common.InstrumentedToolHandlerWithAPI("ticktick_get_task", logging.InterfaceOpen, "get_task", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			projectID, ok := args["projectId"].(string)
			if !ok || projectID == "" {
				return mcp.NewToolResultError("projectId is required"), nil
			}
			taskID, ok := args["taskId"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("taskId is required"), nil
			}

			task, err := sc.Client().GetTask(ctx, projectID, taskID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get task: %v", err)), nil
			}
			return jsonResult(task), nil
		}))

	if readOnly {
		return nil
	}

	createTaskTool := mcp.NewTool("ticktick_create_task",
		mcp.WithDescription("Create a new task"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The task title"),
		),
		mcp.WithString("projectId",
			mcp.Description("Project ID to create the task in. Omit for the inbox."),
		),
		mcp.WithString("content",
			mcp.Description("Task content/notes"),
		),
		mcp.WithString("desc",
			mcp.Description("Task description (used for checklist tasks)"),
		),
		mcp.WithString("priority",
			mcp.Description("Task priority: none, low, medium or high"),
		),
		mcp.WithString("dueDate",
			mcp.Description("Due date in TickTick format, e.g. 2026-01-15T00:00:00+0000"),
		),
		mcp.WithString("startDate",
			mcp.Description("Start date in TickTick format"),
		),
	)

	s.AddTool(createTaskTool, common.InstrumentedToolHandlerWithAPI("ticktick_create_task", logging.InterfaceOpen, "create_task", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			title, ok := args["title"].(string)
			if !ok || title == "" {
				return mcp.NewToolResultError("title is required"), nil
			}

			task := &model.Task{Title: title}
			if p, ok := args["projectId"].(string); ok {
				task.ProjectID = p
			}
			if c, ok := args["content"].(string); ok {
				task.Content = c
			}
			if d, ok := args["desc"].(string); ok {
				task.Desc = d
			}
			if p, ok := args["priority"].(string); ok && p != "" {
				prio, err := model.ParsePriority(p)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				task.Priority = prio
			}
			if d, ok := args["dueDate"].(string); ok {
				task.DueDate = d
			}
			if d, ok := args["startDate"].(string); ok {
				task.StartDate = d
			}

			created, err := sc.Client().CreateTask(ctx, task)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create task: %v", err)), nil
			}
			return jsonResult(created), nil
		}))

	updateTaskTool := mcp.NewTool("ticktick_update_task",
		mcp.WithDescription("Update fields of an existing task. Fields not provided are left unchanged."),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("The ID of the project containing the task"),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task to update"),
		),
		mcp.WithString("title",
			mcp.Description("New title for the task"),
		),
		mcp.WithString("content",
			mcp.Description("New content/notes for the task"),
		),
		mcp.WithString("desc",
			mcp.Description("New description for the task"),
		),
		mcp.WithString("priority",
			mcp.Description("New priority: none, low, medium or high"),
		),
		mcp.WithString("dueDate",
			mcp.Description("New due date in TickTick format"),
		),
		mcp.WithString("startDate",
			mcp.Description("New start date in TickTick format"),
		),
	)

	s.AddTool(updateTaskTool, common.InstrumentedToolHandlerWithAPI("ticktick_update_task", logging.InterfaceOpen, "update_task", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			projectID, ok := args["projectId"].(string)
			if !ok || projectID == "" {
				return mcp.NewToolResultError("projectId is required"), nil
			}
			taskID, ok := args["taskId"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("taskId is required"), nil
			}

			var patch model.TaskPatch
			if t, ok := args["title"].(string); ok {
				patch.Title = &t
			}
			if c, ok := args["content"].(string); ok {
				patch.Content = &c
			}
			if d, ok := args["desc"].(string); ok {
				patch.Desc = &d
			}
			if p, ok := args["priority"].(string); ok && p != "" {
				prio, err := model.ParsePriority(p)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				patch.Priority = &prio
			}
			if d, ok := args["dueDate"].(string); ok {
				patch.DueDate = &d
			}
			if d, ok := args["startDate"].(string); ok {
				patch.StartDate = &d
			}

			if patch.IsEmpty() {
				return mcp.NewToolResultError("at least one field to update is required"), nil
			}

			updated, err := sc.Client().UpdateTask(ctx, projectID, taskID, patch)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update task: %v", err)), nil
			}
			return jsonResult(updated), nil
		}))

	completeTaskTool := mcp.NewTool("ticktick_complete_task",
		mcp.WithDescription("Mark a task as completed"),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("The ID of the project containing the task"),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task to complete"),
		),
	)

	s.AddTool(completeTaskTool, common.InstrumentedToolHandlerWithAPI("ticktick_complete_task", logging.InterfaceOpen, "complete_task", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			projectID, ok := args["projectId"].(string)
			if !ok || projectID == "" {
				return mcp.NewToolResultError("projectId is required"), nil
			}
			taskID, ok := args["taskId"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("taskId is required"), nil
			}

			if err := sc.Client().CompleteTask(ctx, projectID, taskID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to complete task: %v", err)), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("Task %s completed successfully", taskID)), nil
		}))

	deleteTaskTool := mcp.NewTool("ticktick_delete_task",
		mcp.WithDescription("Delete a task"),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("The ID of the project containing the task"),
		),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The ID of the task to delete"),
		),
	)

	s.AddTool(deleteTaskTool, common.InstrumentedToolHandlerWithAPI("ticktick_delete_task", logging.InterfaceOpen, "delete_task", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			projectID, ok := args["projectId"].(string)
			if !ok || projectID == "" {
				return mcp.NewToolResultError("projectId is required"), nil
			}
			taskID, ok := args["taskId"].(string)
			if !ok || taskID == "" {
				return mcp.NewToolResultError("taskId is required"), nil
			}

			if err := sc.Client().DeleteTask(ctx, projectID, taskID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete task: %v", err)), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("Task %s deleted successfully", taskID)), nil
		}))

	return nil
}

// registerQueryTools registers search, completed-task and sync tools. These
// require web credentials and never modify remote state.
func registerQueryTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchTool := mcp.NewTool("ticktick_search_tasks",
		mcp.WithDescription("Search open tasks by case-insensitive substring match over title, content and description"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The text to search for"),
		),
	)

	s.AddTool(searchTool, common.InstrumentedToolHandlerWithAPI("ticktick_search_tasks", logging.InterfaceWeb, "search_tasks", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			query, ok := args["query"].(string)
			if !ok || query == "" {
				return mcp.NewToolResultError("query is required"), nil
			}

			tasks, err := sc.Client().SearchTasks(ctx, query)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to search tasks: %v", err)), nil
			}
			return jsonResult(tasks), nil
		}))

	completedTool := mcp.NewTool("ticktick_completed_tasks",
		mcp.WithDescription("List recently completed tasks, optionally scoped to a project"),
		mcp.WithString("projectId",
			mcp.Description("Project ID to scope the listing to. Omit for all projects."),
		),
		mcp.WithString("limit",
			mcp.Description("Maximum number of tasks to return (default: 50)"),
		),
	)

	s.AddTool(completedTool, common.InstrumentedToolHandlerWithAPI("ticktick_completed_tasks", logging.InterfaceWeb, "completed_tasks", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			projectID := ""
			if p, ok := args["projectId"].(string); ok {
				projectID = p
			}

			limit := 50
			if l, ok := args["limit"].(string); ok && l != "" {
				parsed, err := strconv.Atoi(l)
				if err != nil || parsed <= 0 {
					return mcp.NewToolResultError("limit must be a positive integer"), nil
				}
				limit = parsed
			}

			tasks, err := sc.Client().CompletedTasks(ctx, projectID, limit)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list completed tasks: %v", err)), nil
			}
			return jsonResult(tasks), nil
		}))

	syncTool := mcp.NewTool("ticktick_sync_summary",
		mcp.WithDescription("Fetch the full account state and return a summary of projects, tasks and tags"),
	)

	s.AddTool(syncTool, common.InstrumentedToolHandlerWithAPI("ticktick_sync_summary", logging.InterfaceWeb, "sync", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			snapshot, err := sc.Client().Sync(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to sync: %v", err)), nil
			}
			return jsonResult(snapshot.Summary()), nil
		}))

	return nil
}

// registerTagTools registers tag tools. Tag creation is skipped in
// read-only mode.
func registerTagTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTagsTool := mcp.NewTool("ticktick_list_tags",
		mcp.WithDescription("List all tags defined in the account"),
	)

	s.AddTool(listTagsTool, common.InstrumentedToolHandlerWithAPI("ticktick_list_tags", logging.InterfaceWeb, "list_tags", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			tags, err := sc.Client().ListTags(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list tags: %v", err)), nil
			}
			return jsonResult(tags), nil
		}))

	if readOnly {
		return nil
	}

	createTagTool := mcp.NewTool("ticktick_create_tag",
		mcp.WithDescription("Create a new tag"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The tag name"),
		),
		mcp.WithString("color",
			mcp.Description("Tag color as a hex value, e.g. #FF0000"),
		),
		mcp.WithString("parent",
			mcp.Description("Parent tag name for nested tags"),
		),
	)

	s.AddTool(createTagTool, common.InstrumentedToolHandlerWithAPI("ticktick_create_tag", logging.InterfaceWeb, "create_tag", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			name, ok := args["name"].(string)
			if !ok || name == "" {
				return mcp.NewToolResultError("name is required"), nil
			}

			color := ""
			if c, ok := args["color"].(string); ok {
				color = c
			}
			parent := ""
			if p, ok := args["parent"].(string); ok {
				parent = p
			}

			result, err := sc.Client().CreateTag(ctx, name, color, parent)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create tag: %v", err)), nil
			}
			return jsonResult(result), nil
		}))

	return nil
}
