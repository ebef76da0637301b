package endpoints

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/backend"
	"github.com/lumio-ai/benchdash/internal/svcctx"
	"github.com/lumio-ai/benchdash/internal/views"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// render writes a dashboard page, or a 503 when the renderer is missing.
func render(w http.ResponseWriter, r *http.Request, status int, name string, page views.Page) {
	v := svcctx.ViewsFrom(r.Context())
	if v == nil {
		writeError(w, http.StatusServiceUnavailable, "views not initialized")
		return
	}
	v.Render(w, status, name, page)
}

// seeOther redirects after a form post.
func seeOther(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// requireBackend returns the backend loaders, or writes a 503.
func requireBackend(w http.ResponseWriter, r *http.Request) *backend.Client {
	be := svcctx.BackendFrom(r.Context())
	if be == nil {
		writeError(w, http.StatusServiceUnavailable, "backend client not initialized")
	}
	return be
}

// newBackend builds loaders for CLI commands, which talk to the backend
// directly.
func newBackend(getBackendURL func() string) *backend.Client {
	return backend.New(api.NewClient(getBackendURL(), 0), slog.Default())
}

// NotFound renders the dashboard's 404 page.
func NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, views.PageNotFound, views.Page{Title: "Not found", Back: true, Data: "Page not found."})
}
