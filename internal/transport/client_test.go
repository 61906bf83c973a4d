package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/llmproviders/pkg/errors"
	"github.com/agentstation/llmproviders/pkg/logging"
)

func TestClientGetHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	t.Run("with api key", func(t *testing.T) {
		client := New(&BearerAuth{}, WithLogger(logging.NewNopLogger()))
		resp, err := client.Get(context.Background(), server.URL, "secret")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
		assert.Equal(t, "Bearer secret", got.Get("Authorization"))
		assert.Equal(t, "application/json", got.Get("Content-Type"))
		assert.Equal(t, "application/json", got.Get("Accept"))
	})

	t.Run("without api key", func(t *testing.T) {
		client := New(&BearerAuth{})
		_, err := client.Get(context.Background(), server.URL, "")
		require.NoError(t, err)
		assert.Empty(t, got.Get("Authorization"))
	})

	t.Run("nil authenticator", func(t *testing.T) {
		client := New(nil)
		_, err := client.Get(context.Background(), server.URL, "secret")
		require.NoError(t, err)
		assert.Empty(t, got.Get("Authorization"))
	})
}

func TestClientGetHTTPStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resp, err := New(&NoAuth{}).Get(context.Background(), server.URL, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
}

func TestClientGetTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(&NoAuth{}).Get(context.Background(), url+"/api/tags", "")
	require.Error(t, err)

	var transportErr *pkgerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.MethodGet, transportErr.Method)
	assert.Equal(t, url+"/api/tags", transportErr.URL)
	assert.True(t, pkgerrors.IsConnection(err))
}

func TestClientGetCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(&NoAuth{}).Get(ctx, server.URL, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, pkgerrors.IsConnection(err))
}
