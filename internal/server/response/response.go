// Package response provides the JSON envelope used by every API endpoint:
// a data field on success and an error field on failure.
package response

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/agentstation/llmproviders/pkg/errors"
)

// Response represents the standardized API response structure.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error represents an API error with code, message, and optional details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{Error: &Error{Code: code, Message: message, Details: details}}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are sent; an encoding failure cannot be reported.
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail("BAD_REQUEST", message, details))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail("NOT_FOUND", message, details))
}

// BadGateway writes a 502 error response for upstream failures.
func BadGateway(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadGateway, Fail("BAD_GATEWAY", message, details))
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, message string) {
	JSON(w, http.StatusServiceUnavailable, Fail("SERVICE_UNAVAILABLE", "Service unavailable", message))
}

// GatewayTimeout writes a 504 error response.
func GatewayTimeout(w http.ResponseWriter, message string) {
	JSON(w, http.StatusGatewayTimeout, Fail("GATEWAY_TIMEOUT", "Upstream timed out", message))
}

// InternalError writes a 500 error response without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		"INTERNAL_ERROR",
		"Internal server error",
		"An unexpected error occurred",
	))
}

// ErrorFromType maps typed errors to HTTP responses. Upstream provider
// failures become 502/503/504; lookup failures become 404; bad input and
// bad configuration become 400.
func ErrorFromType(w http.ResponseWriter, err error) {
	var (
		conn     *errors.ConnectionError
		api      *errors.APIError
		parse    *errors.ParseError
		resource *errors.ResourceError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		GatewayTimeout(w, err.Error())
	case errors.As(err, &conn):
		ServiceUnavailable(w, conn.Error())
	case errors.As(err, &resource):
		// Provider construction failed; the cause decides the status.
		if resource.Err != nil && resource.Err != err {
			ErrorFromType(w, resource.Err)
			return
		}
		InternalError(w, err)
	case errors.IsNotFound(err):
		NotFound(w, err.Error(), "")
	case errors.IsValidationError(err), errors.IsConfigError(err):
		BadRequest(w, err.Error(), "")
	case errors.As(err, &api):
		if errors.IsProviderUnavailable(err) {
			ServiceUnavailable(w, api.Error())
			return
		}
		BadGateway(w, api.Error(), "")
	case errors.As(err, &parse) && parse.File == "":
		BadGateway(w, "Invalid response from provider", parse.Error())
	default:
		InternalError(w, err)
	}
}
