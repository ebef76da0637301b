package endpoints

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/backend"
	"github.com/lumio-ai/benchdash/internal/options"
	"github.com/lumio-ai/benchdash/internal/session"
	"github.com/lumio-ai/benchdash/internal/svcctx"
	"github.com/lumio-ai/benchdash/internal/views"
)

// multipartMemory is how much of a multipart form is held in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

// SubmitEndpoint handles POST /extraction/{sid}. Every post folds the
// visible fields into a new snapshot; _tab switches a tab and
// _action=start runs the extraction.
type SubmitEndpoint struct{}

var _ api.Endpoint = (*SubmitEndpoint)(nil)

func (e *SubmitEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/extraction/{sid}", e.handler
}

func (e *SubmitEndpoint) handler(w http.ResponseWriter, r *http.Request) {
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
	logger := svcctx.LoggerFrom(ctx)
	self := views.SessionPath(sess.ID)

	limit := svcctx.ConfigFrom(ctx).Upload.MaxBytes
	if limit > 0 {
		if r.ContentLength > limit {
			e.renderError(w, r, http.StatusRequestEntityTooLarge, sess,
				fmt.Sprintf("Upload too large (limit %s)", humanize.Bytes(uint64(limit))))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			e.renderError(w, r, http.StatusRequestEntityTooLarge, sess,
				fmt.Sprintf("Upload too large (limit %s)", humanize.Bytes(uint64(tooLarge.Limit))))
			return
		}
		e.renderError(w, r, http.StatusBadRequest, sess, "Invalid form submission")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	files, err := saveUploads(r, sess)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			seeOther(w, r, "/extraction")
			return
		}
		logger.Warn("upload rejected", "session", sess.ID, "error", err)
		msg := "Failed to store upload"
		if errors.Is(err, session.ErrInvalidPDF) {
			msg = "Invalid PDF: " + strings.TrimPrefix(err.Error(), session.ErrInvalidPDF.Error()+": ")
		}
		e.renderError(w, r, http.StatusUnprocessableEntity, sess, msg)
		return
	}

	ctrl := sess.Controller
	sub := options.Submission{Values: r.Form, Files: files}
	ctrl.Apply(func(s options.State) options.State {
		return options.Decode(ctrl.Set(), s, sub)
	})

	if action := r.PostForm.Get(options.FieldTab); action != "" {
		if key, choice, ok := options.ParseTabAction(action); ok {
			ctrl.Apply(func(s options.State) options.State {
				next, _ := options.SwitchTab(ctrl.Set(), s, key, choice)
				return next
			})
		}
		seeOther(w, r, self)
		return
	}

	if r.PostForm.Get(options.FieldAction) != "start" {
		seeOther(w, r, self)
		return
	}

	sess.ClearOutcome()
	var reportID string
	err = ctrl.Submit(ctx, func(ctx context.Context, set options.Set, state options.State) error {
		out, err := be.Extract(ctx, sess.Provider, options.Payload(set, state), options.Files(set, state))
		if err != nil {
			return err
		}
		if out.ReportID != "" {
			reportID = out.ReportID
			return nil
		}
		sess.SetResult(out.Result)
		return nil
	})
	switch {
	case errors.Is(err, options.ErrSubmitInFlight):
		e.renderError(w, r, http.StatusConflict, sess, "Extraction already in progress")
	case errors.Is(err, options.ErrClosed):
		seeOther(w, r, "/extraction")
	case err != nil:
		sess.SetError(backend.UserMessage(err))
		seeOther(w, r, self)
	case reportID != "":
		seeOther(w, r, views.ReportPath(reportID))
	default:
		seeOther(w, r, self)
	}
}

// renderError shows the session page with a one-off error that is not
// kept on the session.
func (e *SubmitEndpoint) renderError(w http.ResponseWriter, r *http.Request, status int, sess *session.Session, msg string) {
	be := svcctx.BackendFrom(r.Context())
	v := sessionView(r.Context(), be, sess, false)
	v.Error = msg
	render(w, r, status, views.PageExtraction, extractionPage(v))
}

// saveUploads stores the posted files of visible file options. Parts
// without a file name are empty file inputs.
func saveUploads(r *http.Request, sess *session.Session) (map[string]*options.FileRef, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File) == 0 {
		return nil, nil
	}
	visible := options.Visible(sess.Controller.Set(), sess.Controller.Snapshot())

	saved := map[string]*options.FileRef{}
	for key, headers := range r.MultipartForm.File {
		d, ok := visible[key]
		if !ok || d.Type != options.KindFile || len(headers) == 0 || headers[0].Filename == "" {
			continue
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %s: %w", key, err)
		}
		ref, err := sess.SaveUpload(key, fh.Filename, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		saved[key] = ref
	}
	return saved, nil
}

func (e *SubmitEndpoint) Command(getBackendURL func() string) *cobra.Command {
	var (
		settings []string
		files    []string
	)
	cmd := &cobra.Command{
		Use:   "extract <provider>",
		Short: "Run an extraction with a provider",
		Long: `Run an extraction with a provider.

Options start from the provider's defaults. --set changes one option,
--file attaches a file to a file option. Both are applied in order, so a
tab switch makes the options under it settable.

Examples:
  lumio api extract docling --file document=./paper.pdf
  lumio api extract marker --set mode=accurate --set dpi=300`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := args[0]
			be := newBackend(getBackendURL)
			set, state, ok := be.Options(cmd.Context(), label)
			if !ok {
				return fmt.Errorf("no options available for %s", label)
			}

			var err error
			for _, kv := range settings {
				key, value, found := strings.Cut(kv, "=")
				if !found {
					return fmt.Errorf("invalid --set %q, want key=value", kv)
				}
				if state, err = applySetting(set, state, key, value); err != nil {
					return err
				}
			}
			for _, kv := range files {
				key, path, found := strings.Cut(kv, "=")
				if !found {
					return fmt.Errorf("invalid --file %q, want key=path", kv)
				}
				if state, err = attachFile(set, state, key, path); err != nil {
					return err
				}
			}

			out, err := be.Extract(cmd.Context(), label, options.Payload(set, state), options.Files(set, state))
			if err != nil {
				return err
			}
			return api.Output(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringArrayVar(&settings, "set", nil, "set an option (key=value), repeatable")
	cmd.Flags().StringArrayVar(&files, "file", nil, "attach a file to a file option (key=path), repeatable")
	return cmd
}

// applySetting changes one visible option the way a form post would.
func applySetting(set options.Set, state options.State, key, value string) (options.State, error) {
	visible := options.Visible(set, state)
	d, ok := visible[key]
	if !ok {
		return state, fmt.Errorf("unknown option %q", key)
	}
	switch d.Type {
	case options.KindTab:
		next, ok := options.SwitchTab(set, state, key, value)
		if !ok {
			return state, fmt.Errorf("%s: %q is not one of %v", key, value, d.Choices)
		}
		return next, nil
	case options.KindFile:
		return state, fmt.Errorf("%s is a file option, use --file", key)
	case options.KindSelect:
		if !d.HasChoice(value) {
			return state, fmt.Errorf("%s: %q is not one of %v", key, value, d.Choices)
		}
	}
	// Decode only descends into tabs that were posted.
	values := url.Values{key: {value}}
	for k, vd := range visible {
		if vd.Type == options.KindTab {
			values.Add(options.FieldPresent, k)
		}
	}
	values.Add(options.FieldPresent, key)
	return options.Decode(set, state, options.Submission{Values: values}), nil
}

// attachFile points a visible file option at a local file.
func attachFile(set options.Set, state options.State, key, path string) (options.State, error) {
	d, ok := options.Visible(set, state)[key]
	if !ok {
		return state, fmt.Errorf("unknown option %q", key)
	}
	if d.Type != options.KindFile {
		return state, fmt.Errorf("%s is not a file option", key)
	}
	info, err := os.Stat(path)
	if err != nil {
		return state, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return state, fmt.Errorf("%s is a directory", path)
	}
	return state.With(key, &options.FileRef{Name: filepath.Base(path), Path: path, Size: info.Size()}), nil
}
