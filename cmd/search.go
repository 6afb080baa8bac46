package cmd

import (
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search open tasks by text",
		Long: `Search open tasks by case-insensitive substring match over title,
content and description. Requires web API credentials.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			tasks, err := client.SearchTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(tasks)
		},
	}
}

func newCompletedCmd() *cobra.Command {
	var (
		projectID string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "completed",
		Short: "List recently completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			tasks, err := client.CompletedTasks(cmd.Context(), projectID, limit)
			if err != nil {
				return err
			}
			return writeJSON(tasks)
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID to scope the listing to")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of tasks to return")

	return cmd
}
