package ollama

import (
	"fmt"
	"strings"

	"github.com/agentstation/llmproviders/pkg/constants"
	"github.com/agentstation/llmproviders/pkg/errors"
)

// Mode selects between a self-hosted server and Ollama Cloud.
type Mode string

// Modes.
const (
	ModeLocal Mode = "local"
	ModeCloud Mode = "cloud"
)

// Config is the validated provider configuration. Empty strings mean unset.
type Config struct {
	Mode    Mode   `json:"mode" yaml:"mode"`
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
	APIKey  string `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
}

// IsCloud reports whether the config targets Ollama Cloud.
func (c Config) IsCloud() bool {
	return c.Mode == ModeCloud
}

// ParseAndValidate turns raw, untyped configuration into a Config. raw must
// be an object; mode defaults to local, and cloud mode requires an API key.
func ParseAndValidate(raw any) (Config, error) {
	var obj map[string]any
	switch v := raw.(type) {
	case map[string]any:
		obj = v
	case map[string]string:
		obj = make(map[string]any, len(v))
		for k, s := range v {
			obj[k] = s
		}
	default:
		if raw == nil {
			return Config{}, errors.NewConfigError(providerKey, "", "configuration must be an object, got null")
		}
		return Config{}, errors.NewConfigError(providerKey, "", fmt.Sprintf("configuration must be an object, got %T", raw))
	}

	mode := ModeLocal
	switch v := obj["mode"].(type) {
	case nil:
	case string:
		if v != "" {
			mode = Mode(v)
		}
	default:
		return Config{}, errors.NewConfigError(providerKey, "mode", fmt.Sprintf("mode must be a string, got %T", v))
	}
	if mode != ModeLocal && mode != ModeCloud {
		return Config{}, errors.NewConfigError(providerKey, "mode",
			fmt.Sprintf("invalid mode %q, expected %q or %q", mode, ModeLocal, ModeCloud))
	}

	cfg := Config{
		Mode:    mode,
		BaseURL: stringValue(obj["baseURL"]),
		APIKey:  stringValue(obj["apiKey"]),
	}
	if cfg.IsCloud() && cfg.APIKey == "" {
		return Config{}, errors.NewConfigError(providerKey, "apiKey", "an API key is required in cloud mode")
	}
	return cfg, nil
}

// ResolveBaseURL returns the server root every request is made against.
func ResolveBaseURL(cfg Config) string {
	base := constants.OllamaLocalBaseURL
	switch {
	case cfg.IsCloud():
		base = constants.OllamaCloudBaseURL
	case cfg.BaseURL != "":
		base = cfg.BaseURL
	}
	return strings.TrimRight(base, "/")
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
