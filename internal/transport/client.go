// Package transport is the HTTP layer used by provider adapters. It keeps
// two failure classes apart: a request that never produced a response is
// reported as *errors.TransportError, while any response, whatever its
// status, is handed back to the caller for DecodeResponse to judge.
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/agentstation/llmproviders/pkg/constants"
	"github.com/agentstation/llmproviders/pkg/errors"
	"github.com/agentstation/llmproviders/pkg/logging"
)

// Client provides HTTP client functionality with authentication.
type Client struct {
	http *resty.Client
	auth Authenticator
}

type options struct {
	timeout    time.Duration
	httpClient *http.Client
	logger     *zerolog.Logger
}

// Option configures a Client.
type Option func(*options)

// WithTimeout sets a client-side timeout for every request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHTTPClient builds the client on top of an existing *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithLogger routes resty's internal warnings to logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator, opts ...Option) *Client {
	o := &options{timeout: constants.DefaultHTTPTimeout}
	for _, opt := range opts {
		opt(o)
	}
	if auth == nil {
		auth = &NoAuth{}
	}
	if o.logger == nil {
		o.logger = logging.Default()
	}

	var rc *resty.Client
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
	} else {
		rc = resty.New()
	}
	rc.SetTimeout(o.timeout).
		SetLogger(&restyLogger{logger: o.logger})

	return &Client{http: rc, auth: auth}
}

// Get performs a JSON GET request. apiKey is applied through the client's
// Authenticator when non-empty.
func (c *Client) Get(ctx context.Context, url, apiKey string) (*resty.Response, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		c.auth.Apply(req, apiKey)
	}

	resp, err := req.Get(url)
	if err != nil {
		// The caller gave up; that is not a statement about the server.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &errors.TransportError{
			Method: http.MethodGet,
			URL:    url,
			Err:    err,
		}
	}
	return resp, nil
}

// restyLogger adapts zerolog to resty's Logger interface.
type restyLogger struct {
	logger *zerolog.Logger
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.logger.Error().Str("component", "resty").Msgf(format, v...)
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Str("component", "resty").Msgf(format, v...)
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Str("component", "resty").Msgf(format, v...)
}
