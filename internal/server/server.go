package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lumio-ai/benchdash/internal/api"
	"github.com/lumio-ai/benchdash/internal/backend"
	"github.com/lumio-ai/benchdash/internal/config"
	"github.com/lumio-ai/benchdash/internal/export"
	"github.com/lumio-ai/benchdash/internal/home"
	"github.com/lumio-ai/benchdash/internal/server/endpoints"
	"github.com/lumio-ai/benchdash/internal/session"
	"github.com/lumio-ai/benchdash/internal/svcctx"
	"github.com/lumio-ai/benchdash/internal/views"
)

// Server is the Lumio dashboard HTTP server.
// It owns the form sessions and their janitor, and retargets the backend
// client when the config file changes.
type Server struct {
	httpServer *http.Server
	apiClient  *api.Client
	sessions   *session.Store
	configMgr  *config.Manager
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	handler   http.Handler
	watchOnce sync.Once

	mu      sync.RWMutex
	running bool
	addr    string
}

// Config holds server configuration.
type Config struct {
	// Host overrides server.host from the config when set.
	Host string
	// Port overrides server.port from the config when set. "0" picks a
	// free port.
	Port string
	// ConfigManager provides configuration with hot-reload support.
	// Defaults are used when nil.
	ConfigManager *config.Manager
	// Home holds the uploads directory. A temporary directory is used when
	// nil.
	Home *home.Dir
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	appCfg := config.DefaultConfig()
	if cfg.ConfigManager != nil {
		appCfg = cfg.ConfigManager.Get()
	}
	if cfg.Host == "" {
		cfg.Host = appCfg.Server.Host
	}
	if cfg.Port == "" {
		cfg.Port = strconv.Itoa(appCfg.Server.Port)
	}

	uploads := filepath.Join(os.TempDir(), "lumio-uploads")
	if cfg.Home != nil {
		uploads = cfg.Home.UploadsPath()
	}

	renderer, err := views.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load views: %w", err)
	}

	apiClient := api.NewClient(appCfg.BackendURL(), appCfg.HTTP.Timeout)
	sessions := session.NewStore(uploads, appCfg.Session.TTL, cfg.Logger)

	s := &Server{
		apiClient: apiClient,
		sessions:  sessions,
		configMgr: cfg.ConfigManager,
		logger:    cfg.Logger,
	}
	s.services = &svcctx.Services{
		Backend:  backend.New(apiClient, cfg.Logger),
		Sessions: sessions,
		Views:    renderer,
		Exporter: export.NewExporter(cfg.Logger),
		Config:   cfg.ConfigManager,
		Logger:   cfg.Logger,
	}

	// Watch for config changes
	if cfg.ConfigManager != nil {
		cfg.ConfigManager.OnChange(func(c *config.Config) {
			apiClient.SetBaseURL(c.BackendURL())
			sessions.SetTTL(c.Session.TTL)
			cfg.Logger.Info("config reloaded", "api_url", c.BackendURL(), "session_ttl", c.Session.TTL)
		})
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All() {
		s.endpointRegistry.Register(ep)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(s.accessLog)
	router.Use(middleware.Recoverer)
	router.Use(s.withServices)
	s.endpointRegistry.RegisterRoutes(router)
	router.NotFound(endpoints.NotFound)
	s.handler = router

	// Extractions may run as long as the backend timeout allows, and
	// uploads are large, so only headers get a read deadline.
	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      appCfg.HTTP.Timeout + time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	return s, nil
}

// Start starts the server and the session janitor.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.setNotRunning()
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		s.sessions.Run(janitorCtx)
	}()

	if s.configMgr != nil {
		s.watchOnce.Do(s.configMgr.WatchConfig)
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.Addr(), "backend", s.apiClient.BaseURL())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			serveErr = fmt.Errorf("HTTP server error: %w", err)
		}
	}

	s.shutdown()
	stopJanitor()
	<-janitorDone
	s.setNotRunning()
	s.logger.Info("server stopped")
	return serveErr
}

// shutdown gracefully stops the HTTP server.
func (s *Server) shutdown() {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the address the server listens on, or the configured
// address before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.addr != "" {
		return s.addr
	}
	return s.httpServer.Addr
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// BackendURL returns the backend base URL currently in use.
func (s *Server) BackendURL() string {
	return s.apiClient.BaseURL()
}

// Sessions returns the form session store.
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := svcctx.WithServices(r.Context(), s.services)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessLog logs one line per request. Probes and assets log at debug.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			level := slog.LevelInfo
			if strings.HasPrefix(r.URL.Path, "/static/") || r.URL.Path == "/health" || r.URL.Path == "/ready" {
				level = slog.LevelDebug
			}
			s.logger.Log(r.Context(), level, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
