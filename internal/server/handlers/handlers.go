// Package handlers provides HTTP request handlers for the provider API.
package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/llmproviders/internal/appcontext"
	"github.com/agentstation/llmproviders/pkg/logging"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	app       appcontext.Interface
	logger    *zerolog.Logger
	timeout   time.Duration
	startTime time.Time
}

// New creates a new Handlers instance. A zero timeout leaves upstream
// calls bounded only by the request context.
func New(app appcontext.Interface, logger *zerolog.Logger, timeout time.Duration, startTime time.Time) *Handlers {
	return &Handlers{
		app:       app,
		logger:    logger,
		timeout:   timeout,
		startTime: startTime,
	}
}

// upstreamContext derives the context used for provider calls.
func (h *Handlers) upstreamContext(ctx context.Context, providerID string) (context.Context, context.CancelFunc) {
	ctx = logging.WithProvider(logging.WithLogger(ctx, h.logger), providerID)
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}
