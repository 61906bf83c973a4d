package testhelper

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Ollama is a fake Ollama server. It lists Tags on /api/tags, echoes the
// last message on /v1/chat/completions and returns one two-dimensional
// vector per input on /v1/embeddings, where the first component is the
// input's length.
type Ollama struct {
	*httptest.Server
	Tags string
}

// NewOllama starts a fake Ollama server closed when the test ends.
func NewOllama(t *testing.T, tags string) *Ollama {
	t.Helper()

	o := &Ollama{Tags: tags}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tags", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(o.Tags))
	})
	mux.HandleFunc("POST /v1/chat/completions", o.chat)
	mux.HandleFunc("POST /v1/embeddings", o.embeddings)

	o.Server = httptest.NewServer(mux)
	t.Cleanup(o.Close)
	return o
}

func (o *Ollama) chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
		http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
		return
	}

	last := req.Messages[len(req.Messages)-1]
	writeJSON(w, map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  req.Model,
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message": map[string]any{
				"role":    "assistant",
				"content": "echo: " + last.Content,
			},
		}},
	})
}

func (o *Ollama) embeddings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model string   `json:"model"`
		Input []string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
		return
	}

	data := make([]map[string]any, 0, len(req.Input))
	for i, in := range req.Input {
		data = append(data, map[string]any{
			"object":    "embedding",
			"index":     i,
			"embedding": []float32{float32(len(in)), 0.5},
		})
	}
	writeJSON(w, map[string]any{
		"object": "list",
		"model":  req.Model,
		"data":   data,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
