package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/llmproviders/internal/server/response"
)

// HandleHealth handles GET /health and GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "llmproviders-api",
		"version": h.app.Version(),
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}
