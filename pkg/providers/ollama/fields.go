package ollama

import (
	"os"

	"github.com/agentstation/llmproviders/pkg/constants"
	"github.com/agentstation/llmproviders/pkg/providers"
)

const (
	providerKey  = "ollama"
	providerName = "Ollama"
)

// ProviderMetadata returns the identity of the Ollama provider type.
func ProviderMetadata() providers.Metadata {
	return providers.Metadata{Key: providerKey, Name: providerName}
}

// ConfigFields returns the configuration schema shown to users, in display
// order.
func ConfigFields() []providers.ConfigField {
	return configFields(os.Getenv)
}

func configFields(getenv func(string) string) []providers.ConfigField {
	placeholder := constants.OllamaLocalBaseURL
	if getenv(constants.EnvDocker) != "" {
		placeholder = constants.OllamaDockerBaseURL
	}

	return []providers.ConfigField{
		{
			Type:        providers.FieldSelect,
			Name:        "Mode",
			Key:         "mode",
			Description: "Use a self-hosted Ollama server or Ollama Cloud",
			Required:    true,
			Default:     string(ModeLocal),
			Options: []providers.FieldOption{
				{Name: "Local", Value: string(ModeLocal)},
				{Name: "Cloud", Value: string(ModeCloud)},
			},
			Scope: providers.ScopeServer,
		},
		{
			Type:        providers.FieldString,
			Name:        "Base URL",
			Key:         "baseURL",
			Description: "The base URL of the Ollama server (local mode only)",
			Placeholder: placeholder,
			Env:         constants.EnvOllamaBaseURL,
			Scope:       providers.ScopeServer,
		},
		{
			Type:        providers.FieldString,
			Name:        "API Key",
			Key:         "apiKey",
			Description: "Ollama Cloud API key (required in cloud mode)",
			Env:         constants.EnvOllamaAPIKey,
			Scope:       providers.ScopeServer,
		},
	}
}
