package endpoints

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/backend"
)

// ReportMarkdownEndpoint handles GET /reports/{id}/markdown, the raw
// extracted markdown of a report.
type ReportMarkdownEndpoint struct{}

var _ api.Endpoint = (*ReportMarkdownEndpoint)(nil)

func (e *ReportMarkdownEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/reports/{id}/markdown", e.handler
}

func (e *ReportMarkdownEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	be := requireBackend(w, r)
	if be == nil {
		return
	}
	id := chi.URLParam(r, "id")

	report, err := be.Report(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusBadGateway, backend.UserMessage(err))
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "No report found.")
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", id+".md"))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report.Markdown))
}

func (e *ReportMarkdownEndpoint) Command(getBackendURL func() string) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "markdown <id>",
		Short: "Write a report's extracted markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := newBackend(getBackendURL).Report(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if report == nil {
				return fmt.Errorf("report %s not found", args[0])
			}
			return api.WriteFile(cmd.OutOrStdout(), outPath, []byte(report.Markdown))
		},
	}
	cmd.Flags().StringVarP(&outPath, "file", "f", "-", "output file, - for stdout")
	return cmd
}
