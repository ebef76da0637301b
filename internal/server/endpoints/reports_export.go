package endpoints

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/backend"
	"github.com/lumio-ai/benchdash/internal/export"
	"github.com/lumio-ai/benchdash/internal/svcctx"
)

// XLSXContentType is the media type of the exported workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportEndpoint handles GET /reports/export.xlsx.
type ExportEndpoint struct{}

var _ api.Endpoint = (*ExportEndpoint)(nil)

func (e *ExportEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/reports/export.xlsx", e.handler
}

func (e *ExportEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	be := requireBackend(w, r)
	if be == nil {
		return
	}
	exporter := svcctx.ExporterFrom(r.Context())
	if exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "exporter not initialized")
		return
	}

	reports, err := be.Reports(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, backend.UserMessage(err))
		return
	}
	data, err := exporter.ReportsXLSX(reports)
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to build export")
		return
	}

	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="reports.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (e *ExportEndpoint) Command(getBackendURL func() string) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all reports to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := newBackend(getBackendURL).Reports(cmd.Context())
			if err != nil {
				return err
			}
			data, err := export.NewExporter(slog.Default()).ReportsXLSX(reports)
			if err != nil {
				return err
			}
			if err := api.WriteFile(cmd.OutOrStdout(), outPath, data); err != nil {
				return err
			}
			if outPath != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d reports to %s\n", len(reports), outPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "file", "f", "reports.xlsx", "output file, - for stdout")
	return cmd
}
