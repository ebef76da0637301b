package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Endpoint defines both a dashboard route and its corresponding CLI command.
// The route renders a view for the browser; the command performs the same
// backend operation from a terminal.
type Endpoint interface {
	// Route returns the HTTP method, path, and handler for this endpoint.
	Route() (method, path string, handler http.HandlerFunc)

	// Command returns a Cobra command that performs the same operation against
	// the backend, or nil when the endpoint has no CLI counterpart.
	// getBackendURL is called at runtime (deferred evaluation).
	Command(getBackendURL func() string) *cobra.Command
}
