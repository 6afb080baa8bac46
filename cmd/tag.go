package cmd

import (
	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage TickTick tags",
	}

	cmd.AddCommand(newTagListCmd())
	cmd.AddCommand(newTagCreateCmd())

	return cmd
}

func newTagListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			tags, err := client.ListTags(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(tags)
		},
	}
}

func newTagCreateCmd() *cobra.Command {
	var (
		name   string
		color  string
		parent string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			result, err := client.CreateTag(cmd.Context(), name, color, parent)
			if err != nil {
				return err
			}
			return writeJSON(result)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tag name")
	cmd.Flags().StringVar(&color, "color", "", "Tag color as a hex value, e.g. #FF0000")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent tag name for nested tags")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
