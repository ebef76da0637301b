package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/views"
)

// HomeEndpoint handles GET /, the landing page.
type HomeEndpoint struct{}

func (e *HomeEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/", e.handler
}

func (e *HomeEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, views.PageHome, views.Page{})
}

func (e *HomeEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}
