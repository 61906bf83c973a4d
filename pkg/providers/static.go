package providers

import "sync"

// StaticModels is an in-memory ModelLookup.
type StaticModels struct {
	mu     sync.RWMutex
	models map[string]ConfiguredModels
}

// NewStaticModels creates an empty lookup.
func NewStaticModels() *StaticModels {
	return &StaticModels{models: make(map[string]ConfiguredModels)}
}

// Set replaces the configured models of providerID.
func (s *StaticModels) Set(providerID string, models ConfiguredModels) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.models == nil {
		s.models = make(map[string]ConfiguredModels)
	}
	s.models[providerID] = ConfiguredModels{
		Chat:      append([]Model(nil), models.Chat...),
		Embedding: append([]Model(nil), models.Embedding...),
	}
}

// ConfiguredModels implements ModelLookup. Unknown ids yield empty lists.
func (s *StaticModels) ConfiguredModels(providerID string) (ConfiguredModels, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m := s.models[providerID]
	return ConfiguredModels{
		Chat:      append([]Model(nil), m.Chat...),
		Embedding: append([]Model(nil), m.Embedding...),
	}, nil
}
