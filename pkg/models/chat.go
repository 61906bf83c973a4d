package models

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/agentstation/llmproviders/pkg/errors"
)

// Chat is a ChatModel backed by the OpenAI-compatible chat completions API.
type Chat struct {
	opts   Options
	client *openai.Client
}

var _ ChatModel = (*Chat)(nil)

// NewChat creates a chat client for opts.Model.
func NewChat(opts Options) *Chat {
	return &Chat{
		opts:   opts,
		client: newOpenAIClient(opts),
	}
}

// NewChatModel is a ChatFactory returning a *Chat.
func NewChatModel(opts Options) ChatModel {
	return NewChat(opts)
}

// Model returns the model key requests are sent for.
func (c *Chat) Model() string {
	return c.opts.Model
}

// Options returns the construction options.
func (c *Chat) Options() Options {
	return c.opts
}

// Complete sends the conversation and returns the first choice's content.
func (c *Chat) Complete(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.opts.Model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.NewAPIError("ollama", 0, "chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
