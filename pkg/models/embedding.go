package models

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/agentstation/llmproviders/pkg/errors"
)

// Embedding is an EmbeddingModel backed by the OpenAI-compatible embeddings API.
type Embedding struct {
	opts   Options
	client *openai.Client
}

var _ EmbeddingModel = (*Embedding)(nil)

// NewEmbedding creates an embedding client for opts.Model.
func NewEmbedding(opts Options) *Embedding {
	return &Embedding{
		opts:   opts,
		client: newOpenAIClient(opts),
	}
}

// NewEmbeddingModel is an EmbeddingFactory returning an *Embedding.
func NewEmbeddingModel(opts Options) EmbeddingModel {
	return NewEmbedding(opts)
}

// Model returns the model key requests are sent for.
func (e *Embedding) Model() string {
	return e.opts.Model
}

// Options returns the construction options.
func (e *Embedding) Options() Options {
	return e.opts
}

// EmbedDocuments embeds texts in one request. Vectors are returned in input
// order regardless of the order the server lists them in.
func (e *Embedding) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.opts.Model),
	})
	if err != nil {
		return nil, wrapOpenAIError(err)
	}
	if len(resp.Data) != len(texts) {
		return nil, errors.NewAPIError("ollama", 0,
			fmt.Sprintf("embeddings returned %d vectors for %d inputs", len(resp.Data), len(texts)))
	}

	// Counts match, so every index must appear exactly once.
	out := make([][]float32, len(texts))
	filled := make([]bool, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, errors.NewAPIError("ollama", 0, fmt.Sprintf("embedding index %d out of range", d.Index))
		}
		if filled[d.Index] {
			return nil, errors.NewAPIError("ollama", 0, fmt.Sprintf("duplicate embedding index %d", d.Index))
		}
		filled[d.Index] = true
		out[d.Index] = d.Embedding
	}
	return out, nil
}

// EmbedQuery embeds a single text.
func (e *Embedding) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
