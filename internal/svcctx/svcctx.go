// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/lumio-ai/benchdash/internal/backend"
	"github.com/lumio-ai/benchdash/internal/config"
	"github.com/lumio-ai/benchdash/internal/export"
	"github.com/lumio-ai/benchdash/internal/session"
	"github.com/lumio-ai/benchdash/internal/views"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Backend  *backend.Client
	Sessions *session.Store
	Views    *views.Renderer
	Exporter *export.Exporter
	Config   *config.Manager
	Logger   *slog.Logger
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// BackendFrom extracts the backend loaders from context.
func BackendFrom(ctx context.Context) *backend.Client {
	if s := ServicesFrom(ctx); s != nil {
		return s.Backend
	}
	return nil
}

// SessionsFrom extracts the form session store from context.
func SessionsFrom(ctx context.Context) *session.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Sessions
	}
	return nil
}

// ViewsFrom extracts the page renderer from context.
func ViewsFrom(ctx context.Context) *views.Renderer {
	if s := ServicesFrom(ctx); s != nil {
		return s.Views
	}
	return nil
}

// ExporterFrom extracts the workbook exporter from context.
func ExporterFrom(ctx context.Context) *export.Exporter {
	if s := ServicesFrom(ctx); s != nil {
		return s.Exporter
	}
	return nil
}

// ConfigFrom returns the current configuration, or the defaults when no
// config manager is attached.
func ConfigFrom(ctx context.Context) *config.Config {
	if s := ServicesFrom(ctx); s != nil && s.Config != nil {
		return s.Config.Get()
	}
	return config.DefaultConfig()
}

// LoggerFrom extracts the logger from context, falling back to
// slog.Default().
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
