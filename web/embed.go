// Package web provides the embedded page templates and static assets of the
// Lumio dashboard.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var assets embed.FS

// Templates returns the page templates with "templates" as the root, so
// files are accessed directly (e.g., "layout.html").
func Templates() (fs.FS, error) {
	return fs.Sub(assets, "templates")
}

// Static returns the static assets with "static" as the root.
func Static() (fs.FS, error) {
	return fs.Sub(assets, "static")
}
