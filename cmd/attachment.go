package cmd

import (
	"github.com/spf13/cobra"
)

func newAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <projectID> <taskID> <file>",
		Short: "Upload a file attachment to a task",
		Long: `Upload a local file as an attachment to a task. Requires web API
credentials. The printed result includes the attachment URL.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			attachment, err := client.UploadAttachment(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return writeJSON(attachment)
		},
	}
}
