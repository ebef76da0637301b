package endpoints

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/svcctx"
	"github.com/lumio-ai/benchdash/internal/views"
)

// SessionEndpoint handles GET /extraction/{sid}: the options form of a
// session with its last error and result. ?raw=1 shows raw markdown.
type SessionEndpoint struct{}

func (e *SessionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/extraction/{sid}", e.handler
}

func (e *SessionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := requireBackend(w, r)
	if be == nil {
		return
	}
	sessions := svcctx.SessionsFrom(ctx)
	if sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "session store not initialized")
		return
	}

	sess, err := sessions.Get(chi.URLParam(r, "sid"))
	if err != nil {
		seeOther(w, r, "/extraction")
		return
	}

	raw := r.URL.Query().Get("raw") == "1"
	render(w, r, http.StatusOK, views.PageExtraction, extractionPage(sessionView(ctx, be, sess, raw)))
}

func (e *SessionEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}
