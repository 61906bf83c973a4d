// Package invoke implements the commands that call a model: chat and embed.
package invoke

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/llmproviders/internal/appcontext"
	"github.com/agentstation/llmproviders/pkg/constants"
	"github.com/agentstation/llmproviders/pkg/logging"
	"github.com/agentstation/llmproviders/pkg/models"
)

// NewChatCommand sends a prompt to a chat model and prints the reply.
func NewChatCommand(app appcontext.Interface) *cobra.Command {
	var system string

	cmd := &cobra.Command{
		Use:   "chat <provider-id> <model> <prompt...>",
		Short: "Send a prompt to a chat model",
		Example: `  llmproviders chat ollama llama3 "Why is the sky blue?"
  llmproviders chat cloud gpt-oss:120b --system "Answer in one line" hello`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := modelContext(cmd, app, args[0], args[1])
			defer cancel()

			p, err := app.Provider(args[0])
			if err != nil {
				return err
			}
			chat, err := p.LoadChatModel(ctx, args[1])
			if err != nil {
				return err
			}

			var messages []models.Message
			if system != "" {
				messages = append(messages, models.Message{Role: models.RoleSystem, Content: system})
			}
			messages = append(messages, models.Message{Role: models.RoleUser, Content: strings.Join(args[2:], " ")})

			reply, err := chat.Complete(ctx, messages)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "system prompt")
	return cmd
}

// modelContext bounds a model call and carries the provider and model in
// the logger.
func modelContext(cmd *cobra.Command, app appcontext.Interface, providerID, model string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
	ctx = logging.WithLogger(ctx, app.Logger())
	ctx = logging.WithModel(logging.WithProvider(ctx, providerID), model)
	return ctx, cancel
}
