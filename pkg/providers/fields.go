package providers

// FieldType is the input widget a configuration UI renders for a field.
type FieldType string

// Field types.
const (
	FieldString FieldType = "string"
	FieldSelect FieldType = "select"
)

// FieldScope tells where a field's value is consumed.
type FieldScope string

// ScopeServer marks a field read by the server-side adapter only.
const ScopeServer FieldScope = "server"

// FieldOption is one choice of a select field.
type FieldOption struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// ConfigField describes one provider configuration field for a UI renderer.
// It carries no validation logic.
type ConfigField struct {
	Type        FieldType     `json:"type" yaml:"type"`
	Name        string        `json:"name" yaml:"name"`
	Key         string        `json:"key" yaml:"key"`
	Description string        `json:"description" yaml:"description"`
	Required    bool          `json:"required" yaml:"required"`
	Default     string        `json:"default,omitempty" yaml:"default,omitempty"`
	Options     []FieldOption `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Env         string        `json:"env,omitempty" yaml:"env,omitempty"`
	Scope       FieldScope    `json:"scope" yaml:"scope"`
}

// ApplyEnvDefaults returns a copy of raw where every env-backed field that
// has no value is filled from getenv. Fields whose variable is unset or
// empty are left out. raw is not modified.
func ApplyEnvDefaults(fields []ConfigField, raw map[string]any, getenv func(string) string) map[string]any {
	out := make(map[string]any, len(raw)+len(fields))
	for k, v := range raw {
		out[k] = v
	}
	if getenv == nil {
		return out
	}
	for _, f := range fields {
		if f.Env == "" {
			continue
		}
		if v, ok := out[f.Key]; ok && v != nil && v != "" {
			continue
		}
		if env := getenv(f.Env); env != "" {
			out[f.Key] = env
		}
	}
	return out
}
