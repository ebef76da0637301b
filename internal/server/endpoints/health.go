package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/svcctx"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status  string `json:"status" yaml:"status"`
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

var _ api.Endpoint = (*HealthEndpoint)(nil)

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	be := svcctx.BackendFrom(r.Context())
	if be == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Backend: "not_initialized"})
		return
	}
	if err := be.Ping(r.Context()); err != nil {
		svcctx.LoggerFrom(r.Context()).Debug("backend ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Backend: "unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Backend: "ok"})
}

func (e *ReadyEndpoint) Command(getBackendURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the extraction backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := newBackend(getBackendURL).Ping(cmd.Context())
			resp := HealthResponse{Status: "ok", Backend: "ok"}
			if err != nil {
				resp = HealthResponse{Status: "degraded", Backend: "unreachable"}
			}
			if outErr := api.Output(cmd.OutOrStdout(), resp); outErr != nil {
				return outErr
			}
			return err
		},
	}
}
