package models

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/llmproviders/pkg/errors"
)

type recorded struct {
	path   string
	auth   string
	body   map[string]any
	status int
}

func newServer(t *testing.T, status int, response string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&rec.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func TestChatComplete(t *testing.T) {
	server, rec := newServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "llama3",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello there"}, "finish_reason": "stop"}]
	}`)

	chat := NewChat(Options{BaseURL: server.URL + "/", Model: "llama3", APIKey: "secret"})
	out, err := chat.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "Be brief."},
		{Role: RoleUser, Content: "Hi"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello there", out)
	assert.Equal(t, "/v1/chat/completions", rec.path)
	assert.Equal(t, "Bearer secret", rec.auth)
	assert.Equal(t, "llama3", rec.body["model"])
	messages, ok := rec.body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
	assert.Equal(t, "llama3", chat.Model())
	assert.Equal(t, "secret", chat.Options().APIKey)
}

func TestChatCompleteNoChoices(t *testing.T) {
	server, _ := newServer(t, http.StatusOK, `{"id": "x", "choices": []}`)

	_, err := NewChat(Options{BaseURL: server.URL, Model: "llama3"}).
		Complete(context.Background(), []Message{{Role: RoleUser, Content: "Hi"}})

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "no choices")
}

func TestChatCompleteServerError(t *testing.T) {
	server, _ := newServer(t, http.StatusNotFound, `{"error": {"message": "model \"nope\" not found", "type": "api_error"}}`)

	_, err := NewChatModel(Options{BaseURL: server.URL, Model: "nope"}).
		Complete(context.Background(), []Message{{Role: RoleUser, Content: "Hi"}})

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "not found")
}

func TestEmbedDocuments(t *testing.T) {
	server, rec := newServer(t, http.StatusOK, `{
		"object": "list",
		"model": "nomic-embed-text",
		"data": [
			{"object": "embedding", "index": 1, "embedding": [0.3, 0.4]},
			{"object": "embedding", "index": 0, "embedding": [0.1, 0.2]}
		]
	}`)

	emb := NewEmbedding(Options{BaseURL: server.URL, Model: "nomic-embed-text"})
	vectors, err := emb.EmbedDocuments(context.Background(), []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, "/v1/embeddings", rec.path)
	assert.Equal(t, "nomic-embed-text", rec.body["model"])
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0.1, 0.2}, vectors[0])
	assert.Equal(t, []float32{0.3, 0.4}, vectors[1])
}

func TestEmbedDocumentsEmptyInput(t *testing.T) {
	vectors, err := NewEmbedding(Options{BaseURL: "http://127.0.0.1:1", Model: "m"}).
		EmbedDocuments(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}

func TestEmbedDocumentsCountMismatch(t *testing.T) {
	server, _ := newServer(t, http.StatusOK, `{"data": [{"index": 0, "embedding": [1]}]}`)

	_, err := NewEmbedding(Options{BaseURL: server.URL, Model: "m"}).
		EmbedDocuments(context.Background(), []string{"a", "b"})

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "1 vectors for 2 inputs")
}

func TestEmbedDocumentsBadIndex(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		message string
	}{
		{
			name:    "duplicate index",
			data:    `{"data": [{"index": 0, "embedding": [1]}, {"index": 0, "embedding": [2]}]}`,
			message: "duplicate embedding index 0",
		},
		{
			name:    "index out of range",
			data:    `{"data": [{"index": 0, "embedding": [1]}, {"index": 2, "embedding": [2]}]}`,
			message: "embedding index 2 out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newServer(t, http.StatusOK, tt.data)

			vectors, err := NewEmbedding(Options{BaseURL: server.URL, Model: "m"}).
				EmbedDocuments(context.Background(), []string{"a", "b"})

			assert.Nil(t, vectors)
			var apiErr *errors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestEmbedQueryDuplicateIndex(t *testing.T) {
	server, _ := newServer(t, http.StatusOK, `{"data": [{"index": 0, "embedding": [1]}, {"index": 0, "embedding": [2]}]}`)

	vector, err := NewEmbedding(Options{BaseURL: server.URL, Model: "m"}).
		EmbedQuery(context.Background(), "hello")
	assert.Nil(t, vector)
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "2 vectors for 1 inputs")
}

func TestEmbedQuery(t *testing.T) {
	server, _ := newServer(t, http.StatusOK, `{"data": [{"index": 0, "embedding": [0.5, 0.25]}]}`)

	vector, err := NewEmbeddingModel(Options{BaseURL: server.URL, Model: "m"}).
		EmbedQuery(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25}, vector)
}
