// Package ollama adapts an Ollama server, self-hosted or Ollama Cloud, to the
// providers.Provider contract.
package ollama

import (
	"context"
	"errors"
	"time"

	"github.com/agentstation/llmproviders/internal/transport"
	"github.com/agentstation/llmproviders/pkg/constants"
	pkgerrors "github.com/agentstation/llmproviders/pkg/errors"
	"github.com/agentstation/llmproviders/pkg/logging"
	"github.com/agentstation/llmproviders/pkg/models"
	"github.com/agentstation/llmproviders/pkg/providers"
)

const (
	connectionMessage        = "Error connecting to Ollama API. Please ensure the base URL is correct and the Ollama server is running."
	invalidChatModelMessage  = "Error Loading Ollama Chat Model. Invalid Model Selected"
	invalidEmbedModelMessage = "Error Loading Ollama Embedding Model. Invalid Model Selected"
)

// tagsResponse is the body of GET /api/tags.
type tagsResponse struct {
	Models []tagModel `json:"models"`
}

type tagModel struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

// Provider is a configured Ollama instance. It holds no mutable state after
// New returns.
type Provider struct {
	id        string
	cfg       Config
	lookup    providers.ModelLookup
	transport *transport.Client
	newChat   models.ChatFactory
	newEmbed  models.EmbeddingFactory
}

var _ providers.Provider = (*Provider)(nil)

type options struct {
	lookup    providers.ModelLookup
	newChat   models.ChatFactory
	newEmbed  models.EmbeddingFactory
	transport *transport.Client
	timeout   time.Duration
}

// Option configures a Provider.
type Option func(*options)

// WithModelLookup sets where user-configured models come from.
func WithModelLookup(lookup providers.ModelLookup) Option {
	return func(o *options) {
		o.lookup = lookup
	}
}

// WithChatFactory replaces the chat client constructor.
func WithChatFactory(f models.ChatFactory) Option {
	return func(o *options) {
		o.newChat = f
	}
}

// WithEmbeddingFactory replaces the embedding client constructor.
func WithEmbeddingFactory(f models.EmbeddingFactory) Option {
	return func(o *options) {
		o.newEmbed = f
	}
}

// WithTransport sets the HTTP client used for catalog requests.
func WithTransport(c *transport.Client) Option {
	return func(o *options) {
		o.transport = c
	}
}

// WithHTTPTimeout bounds catalog requests. Zero means no client-side limit.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// New creates a provider for an already validated config.
func New(id string, cfg Config, opts ...Option) *Provider {
	o := &options{
		newChat:  models.NewChatModel,
		newEmbed: models.NewEmbeddingModel,
		timeout:  constants.DefaultHTTPTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.transport == nil {
		o.transport = transport.New(&transport.BearerAuth{}, transport.WithTimeout(o.timeout))
	}

	return &Provider{
		id:        id,
		cfg:       cfg,
		lookup:    o.lookup,
		transport: o.transport,
		newChat:   o.newChat,
		newEmbed:  o.newEmbed,
	}
}

// Factory validates raw and creates a provider. It satisfies
// providers.Factory.
func Factory(id string, raw any, lookup providers.ModelLookup) (providers.Provider, error) {
	cfg, err := ParseAndValidate(raw)
	if err != nil {
		return nil, err
	}
	return New(id, cfg, WithModelLookup(lookup)), nil
}

// Type is the registry entry for Ollama.
func Type() providers.Type {
	return providers.Type{
		Metadata: ProviderMetadata(),
		Fields:   ConfigFields(),
		Factory:  Factory,
	}
}

// Register adds the Ollama type to r.
func Register(r *providers.Registry) error {
	return r.Register(Type())
}

// ID returns the instance id.
func (p *Provider) ID() string {
	return p.id
}

// Config returns the validated configuration.
func (p *Provider) Config() Config {
	return p.cfg
}

// Metadata returns the provider type identity.
func (p *Provider) Metadata() providers.Metadata {
	return ProviderMetadata()
}

// BaseURL returns the resolved server root.
func (p *Provider) BaseURL() string {
	return ResolveBaseURL(p.cfg)
}

// apiKey is the key sent to the server, set only in cloud mode.
func (p *Provider) apiKey() string {
	if p.cfg.IsCloud() {
		return p.cfg.APIKey
	}
	return ""
}

// DefaultModels lists the models the server reports. Every catalog entry is
// offered as both a chat and an embedding candidate.
func (p *Provider) DefaultModels(ctx context.Context) (providers.ModelList, error) {
	baseURL := p.BaseURL()
	url := baseURL + constants.OllamaTagsPath
	logger := logging.Ctx(ctx).With().
		Str("provider_id", p.id).
		Str("url", url).
		Logger()

	resp, err := p.transport.Get(ctx, url, p.apiKey())
	if err != nil {
		var transportErr *pkgerrors.TransportError
		if errors.As(err, &transportErr) {
			logger.Warn().Err(err).Msg("Ollama server unreachable")
			return providers.ModelList{}, &pkgerrors.ConnectionError{
				Provider: providerKey,
				BaseURL:  baseURL,
				Message:  connectionMessage,
				Err:      err,
			}
		}
		return providers.ModelList{}, err
	}

	var tags tagsResponse
	if err := transport.DecodeResponse(resp, providerKey, &tags); err != nil {
		return providers.ModelList{}, err
	}

	chat := make([]providers.Model, 0, len(tags.Models))
	for _, m := range tags.Models {
		chat = append(chat, providers.Model{Name: m.Name, Key: m.Model})
	}
	embedding := append([]providers.Model(nil), chat...)
	if embedding == nil {
		embedding = []providers.Model{}
	}

	logger.Debug().Int("count", len(chat)).Msg("Fetched Ollama catalog")
	return providers.ModelList{Chat: chat, Embedding: embedding}, nil
}

// ModelList returns the catalog followed by the models configured for this
// instance. Duplicates are kept.
func (p *Provider) ModelList(ctx context.Context) (providers.ModelList, error) {
	list, err := p.DefaultModels(ctx)
	if err != nil {
		return providers.ModelList{}, err
	}
	if p.lookup == nil {
		return list, nil
	}

	configured, err := p.lookup.ConfiguredModels(p.id)
	if err != nil {
		return providers.ModelList{}, err
	}
	return list.Merge(configured), nil
}

// LoadChatModel returns a chat client for key, which must be in the chat list.
func (p *Provider) LoadChatModel(ctx context.Context, key string) (models.ChatModel, error) {
	if err := p.ensureListed(ctx, providers.KindChat, key, invalidChatModelMessage); err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Debug().Str("provider_id", p.id).Str("model", key).Msg("Loading chat model")
	return p.newChat(p.modelOptions(key)), nil
}

// LoadEmbeddingModel returns an embedding client for key, which must be in
// the embedding list.
func (p *Provider) LoadEmbeddingModel(ctx context.Context, key string) (models.EmbeddingModel, error) {
	if err := p.ensureListed(ctx, providers.KindEmbedding, key, invalidEmbedModelMessage); err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Debug().Str("provider_id", p.id).Str("model", key).Msg("Loading embedding model")
	return p.newEmbed(p.modelOptions(key)), nil
}

func (p *Provider) ensureListed(ctx context.Context, kind providers.ModelKind, key, message string) error {
	list, err := p.ModelList(ctx)
	if err != nil {
		return err
	}
	if _, ok := list.Find(kind, key); !ok {
		return &pkgerrors.ModelNotFoundError{
			Provider: p.id,
			Kind:     string(kind),
			Key:      key,
			Message:  message,
		}
	}
	return nil
}

func (p *Provider) modelOptions(key string) models.Options {
	return models.Options{
		BaseURL: p.BaseURL(),
		Model:   key,
		APIKey:  p.apiKey(),
	}
}
