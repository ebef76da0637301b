package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/config"
	"github.com/lumio-ai/benchdash/internal/home"
	"github.com/lumio-ai/benchdash/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "lumio",
	Short: "OCR benchmarking dashboard for document extraction providers",
	Long: `Lumio is a dashboard for benchmarking OCR and document extraction
providers against ground truth.

It serves a web UI that:
  - Builds an input form from each provider's option schema
  - Runs extractions and renders the resulting markdown
  - Lists persisted reports with their scores and exports them to XLSX

The api commands run the same operations from the terminal.`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.lumio/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "lumio home directory (default: ~/.lumio)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn or error",
	)

	// Set output format and default logger before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		api.SetOutputFormat(outputFormat)
		logger, err := newLogger(logLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	}

	rootCmd.AddCommand(versionCmd)
}

// newLogger returns a text logger on stdout at the named level.
func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l})), nil
}

// loadConfig opens the config named by --config, or searches the working
// directory and the home directory for one.
func loadConfig() (*config.Manager, error) {
	if cfgFile != "" {
		return config.NewManager(cfgFile)
	}
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	return config.NewManager("", ".", h.Path())
}
