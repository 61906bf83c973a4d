package providers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agentstation/llmproviders/pkg/errors"
)

// Factory builds a provider instance from raw, unvalidated configuration.
type Factory func(id string, raw any, lookup ModelLookup) (Provider, error)

// Type describes a provider implementation.
type Type struct {
	Metadata Metadata
	Fields   []ConfigField
	Factory  Factory
}

// Registry maps provider type keys to their implementations.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Type)}
}

// Register adds a provider type. Keys must be unique.
func (r *Registry) Register(t Type) error {
	if t.Metadata.Key == "" {
		return &errors.ValidationError{
			Field:   "key",
			Message: "provider type key is required",
		}
	}
	if t.Factory == nil {
		return &errors.ValidationError{
			Field:   "factory",
			Value:   t.Metadata.Key,
			Message: "provider type factory is required",
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[t.Metadata.Key]; exists {
		return &errors.ValidationError{
			Field:   "key",
			Value:   t.Metadata.Key,
			Message: fmt.Sprintf("provider type %s already registered", t.Metadata.Key),
		}
	}
	r.types[t.Metadata.Key] = t
	return nil
}

// Get returns the provider type registered under key.
func (r *Registry) Get(key string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[key]
	return t, ok
}

// Types returns every registered type, sorted by key.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	out := make([]Type, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Metadata.Key < out[j].Metadata.Key
	})
	return out
}

// New creates a provider instance of type typeKey.
func (r *Registry) New(typeKey, id string, raw any, lookup ModelLookup) (Provider, error) {
	t, ok := r.Get(typeKey)
	if !ok {
		return nil, errors.NewNotFoundError("provider type", typeKey)
	}
	return t.Factory(id, raw, lookup)
}
