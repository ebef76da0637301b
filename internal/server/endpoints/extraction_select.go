package endpoints

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/backend"
	"github.com/lumio-ai/benchdash/internal/options"
	"github.com/lumio-ai/benchdash/internal/svcctx"
	"github.com/lumio-ai/benchdash/internal/views"
)

// SelectProviderEndpoint handles POST /extraction. It discards the posted
// session, loads the chosen provider's options into a new session and
// redirects to it.
type SelectProviderEndpoint struct{}

var _ api.Endpoint = (*SelectProviderEndpoint)(nil)

func (e *SelectProviderEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/extraction", e.handler
}

func (e *SelectProviderEndpoint) handler(w http.ResponseWriter, r *http.Request) {
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
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	if sid := r.PostForm.Get("session"); sid != "" {
		sessions.Discard(sid)
	}

	label := r.PostForm.Get("provider")
	if label == "" {
		seeOther(w, r, "/extraction")
		return
	}

	set, state, ok := be.Options(ctx, label)
	if !ok {
		seeOther(w, r, "/extraction?provider="+url.QueryEscape(label))
		return
	}

	logger := svcctx.LoggerFrom(ctx)
	sess := sessions.Create(label, set, state)
	sess.Controller.Subscribe(func(before, after options.State) {
		logger.Debug("form.changed", "session", sess.ID, "values", after.Len())
	})
	logger.Info("session.created", "session", sess.ID, "provider", label, "options", len(set))

	seeOther(w, r, views.SessionPath(sess.ID))
}

func (e *SelectProviderEndpoint) Command(getBackendURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "options <provider>",
		Short: "Show a provider's options and their initial values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, state, ok := newBackend(getBackendURL).Options(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("no options available for %s", args[0])
			}
			return api.Output(cmd.OutOrStdout(), backend.OptionsResponse{Options: set, State: state})
		},
	}
}
