package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/llmproviders/pkg/errors"
	"github.com/agentstation/llmproviders/pkg/providers"
)

// ProviderEntry is one provider instance declared in the providers file.
type ProviderEntry struct {
	ID              string            `yaml:"id" json:"id"`
	Type            string            `yaml:"type" json:"type"`
	Config          map[string]any    `yaml:"config,omitempty" json:"config,omitempty"`
	ChatModels      []providers.Model `yaml:"chatModels,omitempty" json:"chatModels,omitempty"`
	EmbeddingModels []providers.Model `yaml:"embeddingModels,omitempty" json:"embeddingModels,omitempty"`
}

// ProvidersFile is the top-level layout of the providers file.
//
//	providers:
//	  - id: home
//	    type: ollama
//	    config:
//	      mode: local
//	      baseURL: http://gpu-box:11434
//	    chatModels:
//	      - name: Llama 3 (tuned)
//	        key: llama3-tuned
type ProvidersFile struct {
	Providers []ProviderEntry `yaml:"providers" json:"providers"`
}

// LoadProviders reads and parses the providers file at path.
func LoadProviders(path string) ([]ProviderEntry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is user configuration
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseProviders(data, path)
}

// ParseProviders parses providers file content. file is used in errors only.
func ParseProviders(data []byte, file string) ([]ProviderEntry, error) {
	var pf ProvidersFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, errors.WrapParse("yaml", file, err)
	}
	return pf.Providers, nil
}

// Build instantiates every entry through the registry. Configured models
// are collected into the returned lookup, which each provider consults on
// every listing. Empty config values of env-backed fields are filled from
// getenv.
func Build(r *providers.Registry, entries []ProviderEntry, getenv func(string) string) ([]providers.Provider, *providers.StaticModels, error) {
	lookup := providers.NewStaticModels()
	seen := make(map[string]bool, len(entries))

	for i, e := range entries {
		switch {
		case e.ID == "":
			return nil, nil, &errors.ValidationError{
				Field:   fmt.Sprintf("providers[%d].id", i),
				Message: "provider id is required",
			}
		case e.Type == "":
			return nil, nil, &errors.ValidationError{
				Field:   fmt.Sprintf("providers[%d].type", i),
				Value:   e.ID,
				Message: fmt.Sprintf("provider %s has no type", e.ID),
			}
		case seen[e.ID]:
			return nil, nil, &errors.ValidationError{
				Field:   fmt.Sprintf("providers[%d].id", i),
				Value:   e.ID,
				Message: fmt.Sprintf("duplicate provider id %s", e.ID),
			}
		}
		seen[e.ID] = true
		lookup.Set(e.ID, providers.ConfiguredModels{
			Chat:      e.ChatModels,
			Embedding: e.EmbeddingModels,
		})
	}

	out := make([]providers.Provider, 0, len(entries))
	for _, e := range entries {
		t, ok := r.Get(e.Type)
		if !ok {
			return nil, nil, errors.NewNotFoundError("provider type", e.Type)
		}
		raw := providers.ApplyEnvDefaults(t.Fields, e.Config, getenv)
		p, err := r.New(e.Type, e.ID, raw, lookup)
		if err != nil {
			return nil, nil, errors.WrapResource("create", "provider", e.ID, err)
		}
		out = append(out, p)
	}
	return out, lookup, nil
}
