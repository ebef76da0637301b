package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/config"
	"github.com/lumio-ai/benchdash/internal/server/endpoints"
)

var apiURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the extraction backend",
	Long: `API commands call the extraction backend directly via HTTP.

The backend URL comes from --api-url, or api_url in the config.

Examples:
  lumio api health                      # Check the backend is reachable
  lumio api providers                   # List providers
  lumio api options docling             # Show a provider's options
  lumio api extract docling --file document=./paper.pdf
  lumio api reports list                # List reports
  lumio api reports export -f out.xlsx  # Export reports to a workbook`,
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Report commands",
}

// getBackendURL returns the backend URL at runtime (after flag parsing).
func getBackendURL() string {
	if apiURL != "" {
		return apiURL
	}
	cfgMgr, err := loadConfig()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		return config.DefaultConfig().BackendURL()
	}
	return cfgMgr.Get().BackendURL()
}

func commands(eps []api.Endpoint) []*cobra.Command {
	registry := api.NewRegistry()
	for _, ep := range eps {
		registry.Register(ep)
	}
	return registry.Commands(getBackendURL)
}

func init() {
	// Persistent so all subcommands inherit it
	apiCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "extraction backend URL (default: api_url from config)")

	// Health, providers, options and extract at top level of api
	apiCmd.AddCommand(commands(endpoints.TopLevelCommands())...)

	// Reports as subcommand group
	reportsCmd.AddCommand(commands(endpoints.ReportCommands())...)

	apiCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(apiCmd)
}
