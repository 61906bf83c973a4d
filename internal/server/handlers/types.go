package handlers

import (
	"net/http"

	"github.com/agentstation/llmproviders/internal/server/response"
	"github.com/agentstation/llmproviders/pkg/errors"
	"github.com/agentstation/llmproviders/pkg/providers"
)

// TypeInfo describes a registered provider type.
type TypeInfo struct {
	Key    string                  `json:"key"`
	Name   string                  `json:"name"`
	Fields []providers.ConfigField `json:"fields"`
}

// HandleListTypes handles GET /api/v1/types.
func (h *Handlers) HandleListTypes(w http.ResponseWriter, _ *http.Request) {
	types := h.app.Registry().Types()
	list := make([]TypeInfo, 0, len(types))
	for _, t := range types {
		list = append(list, TypeInfo{Key: t.Metadata.Key, Name: t.Metadata.Name, Fields: t.Fields})
	}
	response.OK(w, map[string]any{
		"types": list,
		"count": len(list),
	})
}

// HandleTypeFields handles GET /api/v1/types/{type}/fields.
func (h *Handlers) HandleTypeFields(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("type")
	t, ok := h.app.Registry().Get(key)
	if !ok {
		response.ErrorFromType(w, errors.NewNotFoundError("provider type", key))
		return
	}
	response.OK(w, map[string]any{
		"type":   t.Metadata,
		"fields": t.Fields,
	})
}
