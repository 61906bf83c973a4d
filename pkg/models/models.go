// Package models provides the chat and embedding model clients that provider
// adapters hand out. Clients speak the OpenAI-compatible API that Ollama
// serves under {BaseURL}/v1.
package models

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/agentstation/llmproviders/pkg/constants"
)

// Options are the construction parameters shared by every model client.
type Options struct {
	BaseURL string `json:"baseURL" yaml:"baseURL"`
	Model   string `json:"model" yaml:"model"`
	// APIKey is empty when the server needs no authentication.
	APIKey string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
}

// Role of a chat message author.
type Role string

// Chat roles.
const (
	RoleSystem    Role = openai.ChatMessageRoleSystem
	RoleUser      Role = openai.ChatMessageRoleUser
	RoleAssistant Role = openai.ChatMessageRoleAssistant
)

// Message is a single chat turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatModel generates completions for a conversation.
type ChatModel interface {
	Model() string
	Options() Options
	Complete(ctx context.Context, messages []Message) (string, error)
}

// EmbeddingModel turns text into vectors.
type EmbeddingModel interface {
	Model() string
	Options() Options
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// ChatFactory constructs a ChatModel.
type ChatFactory func(Options) ChatModel

// EmbeddingFactory constructs an EmbeddingModel.
type EmbeddingFactory func(Options) EmbeddingModel

// newOpenAIClient builds a go-openai client rooted at the server's
// OpenAI-compatible prefix.
func newOpenAIClient(opts Options) *openai.Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/") + constants.OpenAICompatPath
	return openai.NewClientWithConfig(cfg)
}
