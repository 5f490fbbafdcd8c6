package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/dslh/mcp-imagegen/internal/config"
	"github.com/dslh/mcp-imagegen/internal/logging"
	"github.com/dslh/mcp-imagegen/internal/openrouter"
	"github.com/dslh/mcp-imagegen/internal/persistence"
	"github.com/dslh/mcp-imagegen/internal/tools"
)

func (a *App) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the image tools over stdio (the default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

// serve runs the MCP server until the client disconnects or ctx is cancelled.
// Cancellation is a clean shutdown and returns nil.
func (a *App) serve(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(&cfg.Logging, a.stderr)
	slog.SetDefault(logger)

	server := newServer(cfg, logger)

	transport := a.transport
	if transport == nil {
		transport = &mcp.StdioTransport{}
	}

	logger.Info("Starting MCP server",
		"name", ServerName,
		"version", Version,
		"output_dir", cfg.Storage.OutputDir,
		"api_key_set", cfg.Upstream.APIKey != "")

	err = server.Run(ctx, transport)
	if ctx.Err() != nil {
		logger.Info("Shutting down", "reason", ctx.Err())
		return nil
	}
	if err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// newServer wires the tool handlers into an MCP server
func newServer(cfg *config.Config, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: Version,
	}, &mcp.ServerOptions{Logger: logger})

	newDispatcher(cfg, logger).Register(server)
	return server
}

func newDispatcher(cfg *config.Config, logger *slog.Logger) *tools.Dispatcher {
	clientConfig := cfg.Upstream.ClientConfig()
	clientConfig.Logger = logger

	handlers := tools.NewHandlers(tools.Options{
		Logger: logger,
		NewClient: func() (tools.ImageClient, error) {
			c, err := openrouter.NewClient(clientConfig)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		Store:     persistence.NewStore(cfg.Storage.MaxImageSizeBytes(), logger),
		OutputDir: cfg.Storage.OutputDir,
	})
	return tools.NewDispatcher(handlers, logger)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
