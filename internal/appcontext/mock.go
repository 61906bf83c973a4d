package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/llmproviders/pkg/errors"
	"github.com/agentstation/llmproviders/pkg/providers"
)

// Mock provides a mock implementation of Interface for testing.
// Registry and Instances back the default behavior; function fields
// override it when set.
type Mock struct {
	Reg       *providers.Registry
	Instances []providers.Provider
	Format    string

	ProvidersFunc func() ([]providers.Provider, error)
	LoggerFunc    func() *zerolog.Logger
}

var _ Interface = (*Mock)(nil)

// Registry returns Reg, or an empty registry.
func (m *Mock) Registry() *providers.Registry {
	if m.Reg == nil {
		m.Reg = providers.NewRegistry()
	}
	return m.Reg
}

// Providers returns the mock function result or Instances.
func (m *Mock) Providers() ([]providers.Provider, error) {
	if m.ProvidersFunc != nil {
		return m.ProvidersFunc()
	}
	return m.Instances, nil
}

// Provider finds id among Providers.
func (m *Mock) Provider(id string) (providers.Provider, error) {
	all, err := m.Providers()
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, errors.NewNotFoundError("provider", id)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// Version returns "dev".
func (m *Mock) Version() string {
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string {
	return "unknown"
}

// Date returns "unknown".
func (m *Mock) Date() string {
	return "unknown"
}

// BuiltBy returns "unknown".
func (m *Mock) BuiltBy() string {
	return "unknown"
}
