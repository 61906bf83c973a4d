package transport

import (
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
)

func TestNoAuth(t *testing.T) {
	req := resty.New().R()

	(&NoAuth{}).Apply(req, "test-api-key")

	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestBearerAuth(t *testing.T) {
	req := resty.New().R()

	(&BearerAuth{}).Apply(req, "test-api-key")

	assert.Equal(t, "Bearer test-api-key", req.Header.Get("Authorization"))
}
