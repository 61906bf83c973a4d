// Package list implements the read-only commands: provider types, their
// configuration fields, configured providers and their models.
package list

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/llmproviders/internal/appcontext"
	"github.com/agentstation/llmproviders/internal/cmd/output"
	"github.com/agentstation/llmproviders/pkg/constants"
	"github.com/agentstation/llmproviders/pkg/errors"
	"github.com/agentstation/llmproviders/pkg/logging"
)

// NewTypesCommand lists the registered provider types.
func NewTypesCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported provider types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return render(cmd, app, output.TypesData(app.Registry().Types()))
		},
	}
}

// NewFieldsCommand shows the configuration schema of a provider type.
func NewFieldsCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <type>",
		Short: "Show the configuration fields of a provider type",
		Example: `  llmproviders fields ollama
  llmproviders fields ollama -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := app.Registry().Get(args[0])
			if !ok {
				return errors.NewNotFoundError("provider type", args[0])
			}
			return render(cmd, app, output.FieldsData(t.Fields))
		},
	}
}

// NewProvidersCommand lists the configured provider instances.
func NewProvidersCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List configured providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			instances, err := app.Providers()
			if err != nil {
				return err
			}
			rows := make([]output.ProviderRow, 0, len(instances))
			for _, p := range instances {
				row := output.ProviderRow{
					ID:   p.ID(),
					Type: p.Metadata().Key,
					Name: p.Metadata().Name,
				}
				if b, ok := p.(interface{ BaseURL() string }); ok {
					row.BaseURL = b.BaseURL()
				}
				rows = append(rows, row)
			}
			return render(cmd, app, output.ProvidersData(rows))
		},
	}
}

// NewModelsCommand lists a provider's chat and embedding models.
func NewModelsCommand(app appcontext.Interface) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "models <provider-id>",
		Short: "List the models of a configured provider",
		Long: `Models fetches the provider's remote catalog and appends the models
configured for it in the providers file. Entries are not deduplicated.`,
		Example: `  llmproviders models ollama
  llmproviders models home --kind embedding -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Provider(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()
			ctx = logging.WithOperation(logging.WithLogger(ctx, app.Logger()), "models")

			list, err := p.ModelList(ctx)
			if err != nil {
				return err
			}
			switch kind {
			case "":
			case "chat":
				list.Embedding = nil
			case "embedding":
				list.Chat = nil
			default:
				return &errors.ValidationError{Field: "kind", Value: kind, Message: "must be chat or embedding"}
			}

			app.Logger().Info().
				Int("chat", len(list.Chat)).
				Int("embedding", len(list.Embedding)).
				Msgf("Found models for %s", p.ID())
			return render(cmd, app, output.ModelsData(list))
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only show chat or embedding models")
	return cmd
}

func render(cmd *cobra.Command, app appcontext.Interface, data output.Data) error {
	return output.NewFormatter(output.Format(app.OutputFormat())).Format(cmd.OutOrStdout(), data)
}
