package views

import (
	"html/template"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lumio-ai/benchdash/internal/backend"
	"github.com/lumio-ai/benchdash/internal/options"
	"github.com/lumio-ai/benchdash/internal/present"
)

// ProviderOption is one entry of the provider select.
type ProviderOption struct {
	Label    string
	Name     string
	Selected bool
}

// ProviderOptions lists providers in backend order, marking selected.
func ProviderOptions(providers []backend.Provider, selected string) []ProviderOption {
	out := make([]ProviderOption, 0, len(providers))
	for _, p := range providers {
		out = append(out, ProviderOption{Label: p.Label, Name: p.Name, Selected: p.Label == selected})
	}
	return out
}

// Result is the extraction result panel.
type Result struct {
	Markdown string
	HTML     template.HTML
	Raw      bool

	RawURL      string
	RenderedURL string
	// DownloadURL serves the raw markdown, empty when there is none.
	DownloadURL string
}

// NewResult builds the panel for markdown shown on the page at path. The
// raw view is only rendered when asked for.
func NewResult(markdown string, raw bool, path string) *Result {
	r := &Result{
		Markdown:    markdown,
		Raw:         raw,
		RawURL:      path + "?raw=1",
		RenderedURL: path,
	}
	if !raw {
		r.HTML = present.Markdown(markdown)
	}
	return r
}

// ExtractionView is the extraction page.
type ExtractionView struct {
	Providers []ProviderOption
	SessionID string
	// Action is the form's post target.
	Action string
	// Form is nil until a provider's options are loaded.
	Form   *options.FormView
	Error  string
	Result *Result
}

// ReportRow is one line of the reports table.
type ReportRow struct {
	ID       string
	Href     string
	Created  string
	Relative string
}

// ReportRows formats reports for the table in backend order.
func ReportRows(reports []backend.Report, now time.Time) []ReportRow {
	rows := make([]ReportRow, 0, len(reports))
	for _, r := range reports {
		row := ReportRow{ID: r.ID, Href: ReportPath(r.ID)}
		if r.CreatedAt != "" {
			if t, ok := present.ParseTime(r.CreatedAt, now.Location()); ok {
				row.Created = t.In(now.Location()).Format(present.TimeLayout)
				row.Relative = humanize.RelTime(t, now, "ago", "from now")
			} else {
				row.Created = present.Missing
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ReportsView is the reports page.
type ReportsView struct {
	Reports []ReportRow
	Error   string
}

// ReportView is the report detail page.
type ReportView struct {
	Found   bool
	Error   string
	Inputs  []present.InputRow
	Metrics present.MetricsView
	Result  *Result
}

// NewReportView builds the detail page of r. A nil report is "not found".
func NewReportView(r *backend.Report, raw bool, now time.Time) ReportView {
	if r == nil {
		return ReportView{}
	}
	path := ReportPath(r.ID)
	res := NewResult(r.Markdown, raw, path)
	res.DownloadURL = path + "/markdown"
	return ReportView{
		Found:   true,
		Inputs:  present.InputRows(r.Inputs),
		Metrics: present.Metrics(r.Metadata, now),
		Result:  res,
	}
}

// ReportPath is the dashboard path of a report.
func ReportPath(id string) string {
	return "/reports/" + url.PathEscape(id)
}

// SessionPath is the dashboard path of a form session.
func SessionPath(id string) string {
	return "/extraction/" + url.PathEscape(id)
}
