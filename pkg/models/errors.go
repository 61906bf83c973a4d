package models

import (
	stderrors "errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/agentstation/llmproviders/pkg/errors"
)

// wrapOpenAIError converts go-openai's error types into *errors.APIError so
// callers see one error vocabulary. Anything else passes through.
func wrapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if stderrors.As(err, &apiErr) {
		return &errors.APIError{
			Provider:   "ollama",
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	var reqErr *openai.RequestError
	if stderrors.As(err, &reqErr) {
		return &errors.APIError{
			Provider:   "ollama",
			StatusCode: reqErr.HTTPStatusCode,
			Message:    string(reqErr.Body),
			Err:        err,
		}
	}
	return err
}
