package transport

import (
	"encoding/json"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/agentstation/llmproviders/pkg/errors"
)

// DecodeResponse decodes a JSON response into target. A non-2xx status
// becomes an *errors.APIError carrying the response body; a body that is
// not valid JSON becomes an *errors.ParseError.
func DecodeResponse(resp *resty.Response, provider string, target any) error {
	body := resp.Body()

	if !resp.IsSuccess() {
		apiErr := errors.NewAPIError(provider, resp.StatusCode(), strings.TrimSpace(string(body)))
		if resp.Request != nil {
			apiErr.Endpoint = resp.Request.URL
		}
		return apiErr
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.NewParseError("json", "", "decode response: "+err.Error(), err)
	}

	return nil
}
