package cmd

import (
	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Show account information",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "profile",
		Short: "Show the account profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			profile, err := client.UserProfile(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(profile)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "settings",
		Short: "Show the account settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			settings, err := client.UserSettings(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(settings)
		},
	})

	return cmd
}
