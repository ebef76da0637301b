package present

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	sanitizer = newSanitizer()
)

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// GFM task list items.
	p.AllowAttrs("type").Matching(bluemonday.SpaceSeparatedTokens).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	return p
}

// Markdown renders extracted markdown to sanitized HTML. Raw HTML in the
// source is allowed through the sanitizer's UGC policy; tables are wrapped
// in a horizontally scrollable container.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	out := sanitizer.SanitizeBytes(buf.Bytes())
	s := strings.ReplaceAll(string(out), "<table>", `<div class="table-scroll"><table>`)
	s = strings.ReplaceAll(s, "</table>", "</table></div>")
	return template.HTML(s)
}
