package output

import (
	"strings"

	"github.com/agentstation/llmproviders/pkg/providers"
)

// TypesData renders registered provider types.
func TypesData(types []providers.Type) Data {
	raw := make([]providers.Metadata, 0, len(types))
	rows := make([][]string, 0, len(types))
	for _, t := range types {
		raw = append(raw, t.Metadata)
		rows = append(rows, []string{t.Metadata.Key, t.Metadata.Name, fieldKeys(t.Fields)})
	}
	return Data{
		Headers: []string{"KEY", "NAME", "FIELDS"},
		Rows:    rows,
		Raw:     raw,
	}
}

// FieldsData renders a provider type's configuration schema.
func FieldsData(fields []providers.ConfigField) Data {
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{
			f.Key,
			string(f.Type),
			yesNo(f.Required),
			f.Default,
			f.Env,
			f.Placeholder,
			optionValues(f.Options),
		})
	}
	return Data{
		Headers:         []string{"KEY", "TYPE", "REQUIRED", "DEFAULT", "ENV", "PLACEHOLDER", "OPTIONS"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignCenter, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
		Raw:             fields,
	}
}

// ProviderRow is the structured form of a configured provider instance.
type ProviderRow struct {
	ID      string `json:"id" yaml:"id"`
	Type    string `json:"type" yaml:"type"`
	Name    string `json:"name" yaml:"name"`
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
}

// ProvidersData renders configured provider instances.
func ProvidersData(rows []ProviderRow) Data {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.ID, r.Type, r.Name, r.BaseURL})
	}
	return Data{
		Headers: []string{"ID", "TYPE", "NAME", "BASE URL"},
		Rows:    cells,
		Raw:     rows,
	}
}

// ModelsData renders a provider's model list, one row per entry and kind.
func ModelsData(list providers.ModelList) Data {
	rows := make([][]string, 0, len(list.Chat)+len(list.Embedding))
	for _, m := range list.Chat {
		rows = append(rows, []string{string(providers.KindChat), m.Key, m.Name})
	}
	for _, m := range list.Embedding {
		rows = append(rows, []string{string(providers.KindEmbedding), m.Key, m.Name})
	}
	return Data{
		Headers: []string{"KIND", "KEY", "NAME"},
		Rows:    rows,
		Raw:     list,
	}
}

func fieldKeys(fields []providers.ConfigField) string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	return strings.Join(keys, ", ")
}

func optionValues(opts []providers.FieldOption) string {
	values := make([]string, 0, len(opts))
	for _, o := range opts {
		values = append(values, o.Value)
	}
	return strings.Join(values, "|")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
