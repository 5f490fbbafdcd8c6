// Package cmd implements the command line interface: serving the MCP server
// over stdio by default, plus list and version subcommands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/dslh/mcp-imagegen/internal/config"
	"github.com/dslh/mcp-imagegen/internal/logging"
)

// Server identity reported to MCP clients
const (
	ServerName = "openrouter-image-gen-mcp"
	Version    = "1.0.0"
)

// App is the CLI application
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	// transport is what serve runs the MCP server on. Nil means stdio.
	transport mcp.Transport

	configPath string
	logLevel   string
	outputDir  string
}

// New creates the CLI application
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "mcp-imagegen",
		Short: "MCP server for OpenRouter image generation",
		Long: `mcp-imagegen serves image generation and editing tools over the Model
Context Protocol on stdio. Images are produced by OpenRouter's chat
completions API and saved as PNG files on local disk.

Set OPENROUTER_API_KEY before calling generate_image or edit_image.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.serve(cmd.Context())
		},
	}

	flags := app.root.PersistentFlags()
	flags.StringVarP(&app.configPath, "config", "c", "", "Path to a TOML configuration file (default $"+config.EnvConfigPath+")")
	flags.StringVar(&app.logLevel, "log-level", "", "Log level: debug, info, warn or error (default $"+logging.EnvLevel+" or info)")
	flags.StringVarP(&app.outputDir, "output-dir", "o", "", "Directory for images saved without an explicit output_path")

	app.root.AddCommand(
		app.newServeCmd(),
		app.newListCmd(),
		app.newVersionCmd(),
	)

	return app
}

// WithOutput sets custom output writers
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// WithTransport serves over t instead of stdio
func (a *App) WithTransport(t mcp.Transport) *App {
	a.transport = t
	return a
}

// Execute runs the CLI until the command finishes or SIGINT/SIGTERM arrives
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// loadConfig loads configuration and applies command line overrides
func (a *App) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overlay := &config.Config{
		Storage: config.StorageConfig{OutputDir: a.outputDir},
		Logging: logging.Config{Level: logging.Level(a.logLevel)},
	}
	if err := cfg.Merge(overlay); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "%s version %s\n", ServerName, Version)
		},
	}
}
