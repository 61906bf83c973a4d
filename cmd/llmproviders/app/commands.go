package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/llmproviders/cmd/llmproviders/cmd/completion"
	"github.com/agentstation/llmproviders/cmd/llmproviders/cmd/invoke"
	"github.com/agentstation/llmproviders/cmd/llmproviders/cmd/list"
	"github.com/agentstation/llmproviders/cmd/llmproviders/cmd/serve"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	core := []*cobra.Command{
		list.NewTypesCommand(a),
		list.NewFieldsCommand(a),
		list.NewProvidersCommand(a),
		serve.NewCommand(a),
	}
	for _, c := range core {
		c.GroupID = "core"
		rootCmd.AddCommand(c)
	}

	model := []*cobra.Command{
		list.NewModelsCommand(a),
		invoke.NewChatCommand(a),
		invoke.NewEmbedCommand(a),
	}
	for _, c := range model {
		c.GroupID = "models"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(a.NewVersionCommand())
	rootCmd.AddCommand(completion.NewCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("llmproviders %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s\n", runtime.Version())
			}
		},
	}
}
