package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ticktick-cli/internal/model"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage TickTick projects",
	}

	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectGetCmd())
	cmd.AddCommand(newProjectDataCmd())
	cmd.AddCommand(newProjectCreateCmd())
	cmd.AddCommand(newProjectUpdateCmd())
	cmd.AddCommand(newProjectDeleteCmd())

	return cmd
}

func newProjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			projects, err := client.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(projects)
		},
	}
}

func newProjectGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <projectID>",
		Short: "Get a project by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			project, err := client.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(project)
		},
	}
}

func newProjectDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "data <projectID>",
		Short: "Get a project with its tasks and kanban columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			data, err := client.GetProjectData(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(data)
		},
	}
}

func newProjectCreateCmd() *cobra.Command {
	var (
		name     string
		color    string
		viewMode string
		kind     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			project, err := client.CreateProject(cmd.Context(), &model.Project{
				Name:     name,
				Color:    color,
				ViewMode: viewMode,
				Kind:     kind,
			})
			if err != nil {
				return err
			}
			return writeJSON(project)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&color, "color", "", "Project color as a hex value, e.g. #F18181")
	cmd.Flags().StringVar(&viewMode, "view", "", "View mode: list, kanban or timeline")
	cmd.Flags().StringVar(&kind, "kind", "", "Project kind: TASK or NOTE")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectUpdateCmd() *cobra.Command {
	var (
		name  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "update <projectID>",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("color") {
				return fmt.Errorf("at least one of --name or --color is required")
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			project, err := client.UpdateProject(cmd.Context(), args[0], &model.Project{
				Name:  name,
				Color: color,
			})
			if err != nil {
				return err
			}
			return writeJSON(project)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	cmd.Flags().StringVar(&color, "color", "", "New project color")

	return cmd
}

func newProjectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <projectID>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if err := client.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeJSON(map[string]interface{}{
				"success": true,
				"deleted": args[0],
			})
		},
	}
}
