package cmd

import (
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch the full account state",
		Long: `Fetch the full account state from the web API in one call. By default
a count summary is printed; use --full for the raw snapshot including
every project, folder, tag and open task.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			snapshot, err := client.Sync(cmd.Context())
			if err != nil {
				return err
			}

			if full {
				return writeJSON(snapshot)
			}
			return writeJSON(snapshot.Summary())
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Print the raw snapshot instead of a summary")

	return cmd
}
