package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/schema"
)

var errLintFindings = errors.New("option set has problems")

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Provider option set tools",
}

var optionsLintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "Check an option set document",
	Long: `Check a provider option set against the option-set schema and the
descriptor rules. Use - to read from stdin. Exits non-zero when problems
are found.

Examples:
  lumio options lint ./docling-options.json
  curl -s localhost:8000/api/providers/docling/options | jq .options | lumio options lint -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var doc []byte
		var err error
		if args[0] == "-" {
			doc, err = io.ReadAll(cmd.InOrStdin())
		} else {
			doc, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		findings, err := schema.Lint(doc)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, f := range findings {
			fmt.Fprintln(out, f)
		}
		if len(findings) > 0 {
			return fmt.Errorf("%w: %d found", errLintFindings, len(findings))
		}
		fmt.Fprintln(out, "ok")
		return nil
	},
}

var optionsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the option-set JSON Schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := schema.Raw()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	},
}

func init() {
	optionsCmd.AddCommand(optionsLintCmd)
	optionsCmd.AddCommand(optionsSchemaCmd)
	rootCmd.AddCommand(optionsCmd)
}
