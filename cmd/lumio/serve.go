package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/home"
	"github.com/lumio-ai/benchdash/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Lumio dashboard",
	Long: `Start the Lumio dashboard HTTP server.

The dashboard talks to the extraction backend at api_url. Edits to the
config file are picked up without a restart.

The server provides:
  - /            - Landing page
  - /extraction  - Provider selection and extraction form
  - /reports     - Persisted reports, with XLSX export
  - /health      - Basic server health check
  - /ready       - Readiness check (includes backend status)

Examples:
  lumio serve                    # Start on the configured port (default 3000)
  lumio serve --port 8080        # Start on custom port
  lumio serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := slog.Default()

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}
		// Sessions do not survive a restart, so neither do their uploads
		if err := h.CleanUploads(); err != nil {
			logger.Warn("failed to clean uploads", "error", err)
		}

		cfgMgr, err := loadConfig()
		if err != nil {
			return err
		}
		if used := cfgMgr.ConfigFileUsed(); used != "" {
			logger.Info("config loaded", "file", used)
		}

		srv, err := server.New(server.Config{
			Host:          serveHost,
			Port:          servePort,
			ConfigManager: cfgMgr,
			Home:          h,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default: server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default: server.port)")

	rootCmd.AddCommand(serveCmd)
}
