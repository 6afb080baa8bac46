package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"ticktick-cli/internal/instrumentation"
	"ticktick-cli/internal/server"
	"ticktick-cli/internal/tools/ticktick_tools"
)

func newServeCmd() *cobra.Command {
	var (
		readOnly    bool
		metrics     bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide TickTick task
management tools for AI assistants over stdio.

Safety Mode:
  With --read-only, only tools that cannot modify remote state are
  registered (listing, search, sync). The default exposes the full
  tool set including task creation and deletion.

Credentials:
  The server uses the same environment variables as the CLI. Tools that
  need a backend the server has no credentials for fail per-call with an
  error naming the missing variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(readOnly, metrics, metricsAddr)
		},
	}

	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Register only tools that cannot modify remote state")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Serve Prometheus metrics on a dedicated port")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address")

	return cmd
}

func runServe(readOnly bool, metrics bool, metricsAddr string) error {
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	instrConfig.Enabled = metrics

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Error("instrumentation shutdown failed", "error", err)
		}
	}()

	client, err := newClient()
	if err != nil {
		return err
	}

	serverContext, err := server.NewServerContext(shutdownCtx, client, provider)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer serverContext.Shutdown()

	var metricsServer *server.MetricsServer
	if metrics {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsAddr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics server failed", "error", err)
			}
		}()
	}
	defer func() {
		if metricsServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				slog.Error("metrics server shutdown failed", "error", err)
			}
		}
	}()

	mcpSrv := mcpserver.NewMCPServer("ticktick", version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := ticktick_tools.RegisterTickTickTools(mcpSrv, serverContext, readOnly); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-shutdownCtx.Done():
		return nil
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	}
}
