package endpoints

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/backend"
	"github.com/lumio-ai/benchdash/internal/svcctx"
	"github.com/lumio-ai/benchdash/internal/views"
)

// ListReportsResponse is the CLI output of the report list.
type ListReportsResponse struct {
	Reports []backend.Report `json:"reports" yaml:"reports"`
}

// ReportsEndpoint handles GET /reports.
type ReportsEndpoint struct{}

var _ api.Endpoint = (*ReportsEndpoint)(nil)

func (e *ReportsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/reports", e.handler
}

func (e *ReportsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	be := requireBackend(w, r)
	if be == nil {
		return
	}

	status := http.StatusOK
	var view views.ReportsView
	reports, err := be.Reports(r.Context())
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Debug("reports.load failed", "error", err)
		status = http.StatusBadGateway
		view.Error = backend.UserMessage(err)
	} else {
		view.Reports = views.ReportRows(reports, time.Now())
	}

	render(w, r, status, views.PageReports, views.Page{
		Title:    "Reports",
		Subtitle: "All extraction reports",
		Data:     view,
	})
}

func (e *ReportsEndpoint) Command(getBackendURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List extraction reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := newBackend(getBackendURL).Reports(cmd.Context())
			if err != nil {
				return err
			}
			return api.Output(cmd.OutOrStdout(), ListReportsResponse{Reports: reports})
		},
	}
}
