// Package views renders the dashboard pages from the embedded templates.
package views

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/lumio-ai/benchdash/web"
)

// Page names.
const (
	PageHome       = "home"
	PageExtraction = "extraction"
	PageReports    = "reports"
	PageReport     = "report"
	PageNotFound   = "notfound"
)

var pageNames = []string{PageHome, PageExtraction, PageReports, PageReport, PageNotFound}

// Page is the layout around a page body. An empty Title hides the page
// header.
type Page struct {
	Title    string
	Subtitle string
	// Back shows a link to the landing page.
	Back bool
	Data any
}

// Renderer executes page templates. Each page is parsed together with the
// shared layout and partials.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

var funcs = template.FuncMap{
	"add": func(xs ...float64) float64 {
		var sum float64
		for _, x := range xs {
			sum += x
		}
		return sum
	},
	"sub": func(a, b float64) float64 { return a - b },
	"bytes": func(n int64) string {
		if n < 0 {
			n = 0
		}
		return humanize.Bytes(uint64(n))
	},
}

// New parses all page templates.
func New(logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsys, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("templates not available: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames)), logger: logger}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, "layout.html", "partials.html", name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page name with status. The page is rendered to a buffer
// first so a template error still produces a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	t, ok := r.pages[name]
	if !ok {
		r.logger.Error("unknown page", "page", name)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		r.logger.Error("template render failed", "page", name, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Debug("write page", "page", name, "error", err)
	}
}
