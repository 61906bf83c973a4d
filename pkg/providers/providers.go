// Package providers defines the contract every model provider adapter
// implements, along with the type registry that turns raw configuration
// into live providers.
package providers

import (
	"context"

	"github.com/agentstation/llmproviders/pkg/models"
)

// Provider is a configured provider instance. Implementations are safe for
// concurrent use.
type Provider interface {
	// ID is the instance id the provider was configured under.
	ID() string
	// Metadata is the static identity of the provider type.
	Metadata() Metadata
	// ModelList returns the remote catalog merged with configured models.
	ModelList(ctx context.Context) (ModelList, error)
	// LoadChatModel constructs a chat client for a listed model key.
	LoadChatModel(ctx context.Context, key string) (models.ChatModel, error)
	// LoadEmbeddingModel constructs an embedding client for a listed model key.
	LoadEmbeddingModel(ctx context.Context, key string) (models.EmbeddingModel, error)
}

// Metadata identifies a provider type.
type Metadata struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
}

// Model is a selectable model. Key is what gets sent to the server.
type Model struct {
	Name string `json:"name" yaml:"name"`
	Key  string `json:"key" yaml:"key"`
}

// ModelKind selects a list within a ModelList.
type ModelKind string

// Model kinds.
const (
	KindChat      ModelKind = "chat"
	KindEmbedding ModelKind = "embedding"
)

// ModelList holds the chat and embedding candidates of a provider. Entries
// are not deduplicated.
type ModelList struct {
	Chat      []Model `json:"chat" yaml:"chat"`
	Embedding []Model `json:"embedding" yaml:"embedding"`
}

// Find returns the first model of kind with an exactly matching key.
func (l ModelList) Find(kind ModelKind, key string) (Model, bool) {
	var list []Model
	switch kind {
	case KindChat:
		list = l.Chat
	case KindEmbedding:
		list = l.Embedding
	}
	for _, m := range list {
		if m.Key == key {
			return m, true
		}
	}
	return Model{}, false
}

// Merge appends the configured models to l, kind by kind.
func (l ModelList) Merge(extra ConfiguredModels) ModelList {
	out := ModelList{
		Chat:      make([]Model, 0, len(l.Chat)+len(extra.Chat)),
		Embedding: make([]Model, 0, len(l.Embedding)+len(extra.Embedding)),
	}
	out.Chat = append(append(out.Chat, l.Chat...), extra.Chat...)
	out.Embedding = append(append(out.Embedding, l.Embedding...), extra.Embedding...)
	return out
}

// ConfiguredModels are the models a user declared for a provider instance,
// as opposed to the ones the remote catalog reports.
type ConfiguredModels struct {
	Chat      []Model `json:"chatModels" yaml:"chatModels"`
	Embedding []Model `json:"embeddingModels" yaml:"embeddingModels"`
}

// ModelLookup resolves the configured models of a provider instance.
type ModelLookup interface {
	ConfiguredModels(providerID string) (ConfiguredModels, error)
}
