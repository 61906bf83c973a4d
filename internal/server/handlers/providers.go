package handlers

import (
	"net/http"

	"github.com/agentstation/llmproviders/internal/server/response"
	"github.com/agentstation/llmproviders/pkg/errors"
	"github.com/agentstation/llmproviders/pkg/providers"
)

// ProviderInfo describes a configured provider instance.
type ProviderInfo struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	BaseURL string `json:"baseURL,omitempty"`
}

// modelsPayload keeps the lists selected by kind, keyed by kind. Lists
// filtered out are absent; a selected empty list renders as [].
func modelsPayload(list providers.ModelList, kind providers.ModelKind) map[providers.ModelKind][]providers.Model {
	payload := make(map[providers.ModelKind][]providers.Model, 2)
	if kind == "" || kind == providers.KindChat {
		payload[providers.KindChat] = nonNil(list.Chat)
	}
	if kind == "" || kind == providers.KindEmbedding {
		payload[providers.KindEmbedding] = nonNil(list.Embedding)
	}
	return payload
}

func nonNil(models []providers.Model) []providers.Model {
	if models == nil {
		return []providers.Model{}
	}
	return models
}

func providerInfo(p providers.Provider) ProviderInfo {
	info := ProviderInfo{ID: p.ID(), Type: p.Metadata().Key, Name: p.Metadata().Name}
	if b, ok := p.(interface{ BaseURL() string }); ok {
		info.BaseURL = b.BaseURL()
	}
	return info
}

// HandleListProviders handles GET /api/v1/providers.
func (h *Handlers) HandleListProviders(w http.ResponseWriter, _ *http.Request) {
	instances, err := h.app.Providers()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build providers")
		response.ErrorFromType(w, err)
		return
	}

	list := make([]ProviderInfo, 0, len(instances))
	for _, p := range instances {
		list = append(list, providerInfo(p))
	}
	response.OK(w, map[string]any{
		"providers": list,
		"count":     len(list),
	})
}

// HandleGetProvider handles GET /api/v1/providers/{id}.
func (h *Handlers) HandleGetProvider(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Provider(r.PathValue("id"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, providerInfo(p))
}

// HandleProviderModels handles GET /api/v1/providers/{id}/models.
// The optional kind query parameter restricts the result to chat or
// embedding models.
func (h *Handlers) HandleProviderModels(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind != "" && kind != string(providers.KindChat) && kind != string(providers.KindEmbedding) {
		response.ErrorFromType(w, &errors.ValidationError{Field: "kind", Value: kind, Message: "must be chat or embedding"})
		return
	}

	p, err := h.app.Provider(r.PathValue("id"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	ctx, cancel := h.upstreamContext(r.Context(), p.ID())
	defer cancel()

	list, err := p.ModelList(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Str("provider_id", p.ID()).Msg("Failed to list models")
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{
		"provider": providerInfo(p),
		"models":   modelsPayload(list, providers.ModelKind(kind)),
	})
}
