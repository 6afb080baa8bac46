package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ticktick-cli/internal/config"
	"ticktick-cli/internal/logging"
)

var logLevel string

// rootCmd represents the base command for the ticktick application
var rootCmd = &cobra.Command{
	Use:   "ticktick",
	Short: "Manage TickTick tasks from the command line",
	Long: `ticktick is a command-line client for the TickTick task manager.

It talks to two backends:
  - The official open API (token-based), used for task and project CRUD
  - The unofficial web API (session-based), used for search, tags,
    completed tasks, sync and attachments

Credentials come from the environment (or a .env file):
  TICKTICK_ACCESS_TOKEN              open API token
  TICKTICK_USERNAME / TICKTICK_PASSWORD  web API login

It can also run as an MCP (Model Context Protocol) server for AI
assistants via the serve subcommand.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(resolveLogLevel(logLevel, config.Load().LogLevel))
	},
}

// resolveLogLevel picks the effective log level: the --log-level flag when
// given, otherwise TICKTICK_LOG_LEVEL from the environment.
func resolveLogLevel(flag, env string) string {
	if flag != "" {
		return flag
	}
	return env
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application. Errors are
// emitted as a single JSON line on stderr so scripted callers can parse
// failures the same way as successes.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "ticktick version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		line, jsonErr := json.Marshal(map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		if jsonErr != nil {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stderr, string(line))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides TICKTICK_LOG_LEVEL; default: warn)")

	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newTaskCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newCompletedCmd())
	rootCmd.AddCommand(newTagCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newAttachCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
