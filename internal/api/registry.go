package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

// Registry holds all registered endpoints.
type Registry struct {
	endpoints []Endpoint
}

// NewRegistry creates a new endpoint registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an endpoint to the registry.
func (r *Registry) Register(ep Endpoint) {
	r.endpoints = append(r.endpoints, ep)
}

// RegisterRoutes registers all endpoint HTTP routes with the given router.
func (r *Registry) RegisterRoutes(router chi.Router) {
	for _, ep := range r.endpoints {
		method, path, handler := ep.Route()
		router.MethodFunc(method, path, handler)
	}
}

// Commands returns the CLI commands of all registered endpoints, skipping
// endpoints without one.
func (r *Registry) Commands(getBackendURL func() string) []*cobra.Command {
	var cmds []*cobra.Command
	for _, ep := range r.endpoints {
		if cmd := ep.Command(getBackendURL); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// Endpoints returns all registered endpoints.
func (r *Registry) Endpoints() []Endpoint {
	return r.endpoints
}
