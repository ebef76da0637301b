package endpoints

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/backend"
	"github.com/lumio-ai/benchdash/internal/svcctx"
	"github.com/lumio-ai/benchdash/internal/views"
)

// ReportEndpoint handles GET /reports/{id}. ?raw=1 shows raw markdown.
type ReportEndpoint struct{}

var _ api.Endpoint = (*ReportEndpoint)(nil)

func (e *ReportEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/reports/{id}", e.handler
}

func (e *ReportEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	be := requireBackend(w, r)
	if be == nil {
		return
	}
	id := chi.URLParam(r, "id")
	raw := r.URL.Query().Get("raw") == "1"

	status := http.StatusOK
	var view views.ReportView
	report, err := be.Report(r.Context(), id)
	switch {
	case err != nil:
		svcctx.LoggerFrom(r.Context()).Debug("report.load failed", "id", id, "error", err)
		status = http.StatusBadGateway
		view.Error = backend.UserMessage(err)
	case report == nil:
		status = http.StatusNotFound
	default:
		view = views.NewReportView(report, raw, time.Now())
	}

	render(w, r, status, views.PageReport, views.Page{
		Title:    "Report",
		Subtitle: id,
		Data:     view,
	})
}

func (e *ReportEndpoint) Command(getBackendURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a report with its inputs, metrics and markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := newBackend(getBackendURL).Report(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if report == nil {
				return fmt.Errorf("report %s not found", args[0])
			}
			return api.Output(cmd.OutOrStdout(), report)
		},
	}
}
