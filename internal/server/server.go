// Package server exposes the configured providers over a small read-only
// HTTP API: provider types and their configuration fields, provider
// instances, and each instance's model list.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/llmproviders/internal/appcontext"
	"github.com/agentstation/llmproviders/internal/server/handlers"
	"github.com/agentstation/llmproviders/internal/server/middleware"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app       appcontext.Interface
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New creates a new server instance with the given configuration.
func New(app appcontext.Interface, cfg Config) *Server {
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}
	return &Server{
		app:       app,
		logger:    app.Logger(),
		config:    cfg,
		startTime: time.Now(),
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// HTTPServer returns an http.Server for the configured address and timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux, handlers.New(s.app, s.logger, s.config.RequestTimeout, s.startTime))
	return s.applyMiddleware(mux)
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}

func (s *Server) applyMiddleware(h http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	}
	if s.config.CORSEnabled || len(s.config.CORSOrigins) > 0 {
		cors := middleware.DefaultCORSConfig()
		cors.AllowAll = s.config.CORSEnabled && len(s.config.CORSOrigins) == 0
		if len(s.config.CORSOrigins) > 0 {
			cors.AllowedOrigins = s.config.CORSOrigins
		}
		chain = append(chain, middleware.CORS(cors))
	}
	return middleware.Chain(chain...)(h)
}
