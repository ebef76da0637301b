package endpoints

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/backend"
	"github.com/lumio-ai/benchdash/internal/session"
	"github.com/lumio-ai/benchdash/internal/views"
)

// ProvidersResponse is the CLI output of the provider list.
type ProvidersResponse struct {
	Providers []backend.Provider `json:"providers" yaml:"providers"`
}

// ExtractionEndpoint handles GET /extraction: the provider select with no
// options loaded yet. ?provider= preselects a provider whose options could
// not be loaded.
type ExtractionEndpoint struct{}

var _ api.Endpoint = (*ExtractionEndpoint)(nil)

func (e *ExtractionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/extraction", e.handler
}

func (e *ExtractionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	be := requireBackend(w, r)
	if be == nil {
		return
	}
	selected := r.URL.Query().Get("provider")
	render(w, r, http.StatusOK, views.PageExtraction, extractionPage(views.ExtractionView{
		Providers: views.ProviderOptions(be.Providers(r.Context()), selected),
	}))
}

func (e *ExtractionEndpoint) Command(getBackendURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List extraction providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			be := newBackend(getBackendURL)
			if err := be.Ping(cmd.Context()); err != nil {
				return err
			}
			return api.Output(cmd.OutOrStdout(), ProvidersResponse{Providers: be.Providers(cmd.Context())})
		},
	}
}

func extractionPage(v views.ExtractionView) views.Page {
	return views.Page{
		Title:    "Extraction",
		Subtitle: "Choose a provider and configure inputs to start an extraction.",
		Back:     true,
		Data:     v,
	}
}

// sessionView renders a session's form with its last outcome.
func sessionView(ctx context.Context, be *backend.Client, sess *session.Session, raw bool) views.ExtractionView {
	form := sess.Controller.Form()
	v := views.ExtractionView{
		Providers: views.ProviderOptions(be.Providers(ctx), sess.Provider),
		SessionID: sess.ID,
		Action:    views.SessionPath(sess.ID),
		Form:      &form,
		Error:     sess.Error(),
	}
	if res := sess.Result(); res != nil {
		v.Result = views.NewResult(res.Markdown(), raw, v.Action)
	}
	return v
}
