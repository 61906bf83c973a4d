package server

import (
	"net/http"

	"github.com/agentstation/llmproviders/internal/server/handlers"
)

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)

	mux.HandleFunc("GET "+prefix+"/types", h.HandleListTypes)
	mux.HandleFunc("GET "+prefix+"/types/{type}/fields", h.HandleTypeFields)

	mux.HandleFunc("GET "+prefix+"/providers", h.HandleListProviders)
	mux.HandleFunc("GET "+prefix+"/providers/{id}", h.HandleGetProvider)
	mux.HandleFunc("GET "+prefix+"/providers/{id}/models", h.HandleProviderModels)
}
