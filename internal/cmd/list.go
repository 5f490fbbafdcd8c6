package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dslh/mcp-imagegen/internal/types"
)

func (a *App) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the tools and models this server exposes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.list()
		},
	}
}

// list displays the tool catalog, the model catalog and the effective configuration
func (a *App) list() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	// Logs stay quiet here; only the listing goes to stdout.
	d := newDispatcher(cfg, discardLogger())

	fmt.Fprintln(a.stdout, "Tools:")
	for _, tool := range d.Tools() {
		fmt.Fprintf(a.stdout, "  • %s - %s\n", tool.Name, tool.Description)
	}
	fmt.Fprintln(a.stdout)

	fmt.Fprintln(a.stdout, "Models:")
	for _, m := range types.Models() {
		marker := ""
		if m.Default {
			marker = " (default)"
		}
		fmt.Fprintf(a.stdout, "  • %s%s - %s, %s\n", m.ID, marker, m.Name, m.Cost)
	}
	fmt.Fprintln(a.stdout)

	outputDir := cfg.Storage.OutputDir
	if outputDir == "" {
		outputDir = "(working directory)"
	}
	apiKey := "set"
	if cfg.Upstream.APIKey == "" {
		apiKey = "not set"
	}

	fmt.Fprintln(a.stdout, "Configuration:")
	fmt.Fprintf(a.stdout, "  Endpoint:   %s\n", cfg.Upstream.BaseURL)
	fmt.Fprintf(a.stdout, "  API key:    %s\n", apiKey)
	fmt.Fprintf(a.stdout, "  Output dir: %s\n", outputDir)
	fmt.Fprintf(a.stdout, "  Max image:  %s\n", cfg.Storage.MaxImageSize)
	return nil
}
