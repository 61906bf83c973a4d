package transport

import (
	"github.com/go-resty/resty/v2"
)

// Authenticator applies authentication to outgoing requests.
type Authenticator interface {
	Apply(req *resty.Request, apiKey string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *resty.Request, _ string) {}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *resty.Request, apiKey string) {
	req.SetHeader("Authorization", "Bearer "+apiKey)
}
