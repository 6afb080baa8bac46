package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ticktick-cli/internal/model"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage TickTick tasks",
	}

	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskGetCmd())
	cmd.AddCommand(newTaskCreateCmd())
	cmd.AddCommand(newTaskUpdateCmd())
	cmd.AddCommand(newTaskCompleteCmd())
	cmd.AddCommand(newTaskDeleteCmd())

	return cmd
}

func newTaskListCmd() *cobra.Command {
	var (
		projectID string
		status    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally scoped to a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var want int
			switch status {
			case "", "pending":
				want = model.StatusOpen
			case "completed":
				want = model.StatusCompleted
			default:
				return fmt.Errorf("invalid status %q (expected pending or completed)", status)
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			tasks, err := client.ListTasks(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			return writeJSON(model.FilterByStatus(tasks, want))
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID to scope the listing to")
	cmd.Flags().StringVar(&status, "status", "pending", "Task status filter: pending or completed")

	return cmd
}

func newTaskGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <projectID> <taskID>",
		Short: "Get a task by ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			task, err := client.GetTask(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return writeJSON(task)
		},
	}
}

func newTaskCreateCmd() *cobra.Command {
	var (
		projectID string
		title     string
		content   string
		desc      string
		priority  string
		dueDate   string
		startDate string
		allDay    bool
		timeZone  string
		kind      string
		repeat    string
		reminders []string
		subtasks  []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			task := &model.Task{
				ProjectID:  projectID,
				Title:      title,
				Content:    expandNewlines(content),
				Desc:       expandNewlines(desc),
				DueDate:    dueDate,
				StartDate:  startDate,
				IsAllDay:   allDay,
				TimeZone:   timeZone,
				Kind:       kind,
				RepeatFlag: repeat,
				Reminders:  reminders,
			}

			if priority != "" {
				prio, err := model.ParsePriority(priority)
				if err != nil {
					return err
				}
				task.Priority = prio
			}

			for _, title := range subtasks {
				task.Items = append(task.Items, model.ChecklistItem{Title: title})
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			created, err := client.CreateTask(cmd.Context(), task)
			if err != nil {
				return err
			}
			return writeJSON(created)
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID to create the task in (default: inbox)")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&content, "content", "", "Task content/notes (literal \\n becomes a newline)")
	cmd.Flags().StringVar(&desc, "desc", "", "Task description for checklist tasks (literal \\n becomes a newline)")
	cmd.Flags().StringVar(&priority, "priority", "", "Task priority: none, low, medium or high")
	cmd.Flags().StringVar(&dueDate, "due", "", "Due date, e.g. 2026-01-15T00:00:00+0000")
	cmd.Flags().StringVar(&startDate, "start", "", "Start date")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Treat the dates as all-day")
	cmd.Flags().StringVar(&timeZone, "timezone", "", "Time zone for the dates, e.g. Europe/Berlin")
	cmd.Flags().StringVar(&kind, "kind", "", "Task kind: TEXT, CHECKLIST or NOTE")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Recurrence rule, e.g. RRULE:FREQ=DAILY;INTERVAL=1")
	cmd.Flags().StringArrayVar(&reminders, "reminder", nil, "Reminder trigger, e.g. TRIGGER:-PT30M (repeatable)")
	cmd.Flags().StringArrayVar(&subtasks, "subtask", nil, "Checklist item title (repeatable)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskUpdateCmd() *cobra.Command {
	var (
		projectID string
		title     string
		content   string
		desc      string
		priority  string
		dueDate   string
		startDate string
	)

	cmd := &cobra.Command{
		Use:   "update <taskID>",
		Short: "Update fields of a task, leaving the rest unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("content") {
				expanded := expandNewlines(content)
				patch.Content = &expanded
			}
			if cmd.Flags().Changed("desc") {
				expanded := expandNewlines(desc)
				patch.Desc = &expanded
			}
			if cmd.Flags().Changed("priority") {
				prio, err := model.ParsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = &prio
			}
			if cmd.Flags().Changed("due") {
				patch.DueDate = &dueDate
			}
			if cmd.Flags().Changed("start") {
				patch.StartDate = &startDate
			}

			if patch.IsEmpty() {
				return fmt.Errorf("at least one field flag is required (--title, --content, --desc, --priority, --due, --start)")
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			updated, err := client.UpdateTask(cmd.Context(), projectID, args[0], patch)
			if err != nil {
				return err
			}
			return writeJSON(updated)
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID containing the task")
	cmd.Flags().StringVar(&title, "title", "", "New task title")
	cmd.Flags().StringVar(&content, "content", "", "New task content (literal \\n becomes a newline)")
	cmd.Flags().StringVar(&desc, "desc", "", "New task description (literal \\n becomes a newline)")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority: none, low, medium or high")
	cmd.Flags().StringVar(&dueDate, "due", "", "New due date")
	cmd.Flags().StringVar(&startDate, "start", "", "New start date")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <projectID> <taskID>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if err := client.CompleteTask(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return writeJSON(map[string]interface{}{
				"success":   true,
				"completed": args[1],
			})
		},
	}
}

func newTaskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <projectID> <taskID>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if err := client.DeleteTask(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return writeJSON(map[string]interface{}{
				"success": true,
				"deleted": args[1],
			})
		},
	}
}
