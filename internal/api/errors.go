package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pointcard/internal/models"
)

// TransportError covers connectivity failures. The user-visible text stays
// generic; the underlying error is kept for logging via Unwrap.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "network error, please check the connection and try again"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError is a non-2xx response. When the backend attached a
// structured `{message, errors}` body, Message carries its message;
// otherwise the status code is surfaced.
type ServerError struct {
	StatusCode int
	Message    string
	Errors     map[string]any
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("unexpected status code %d", e.StatusCode)
}

func decodeAPIError(resp *http.Response) *ServerError {
	serverErr := &ServerError{StatusCode: resp.StatusCode}

	var apiErr models.APIError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil {
		serverErr.Message = apiErr.Message
		serverErr.Errors = apiErr.Errors
	}

	return serverErr
}

const (
	doErr1 = "in internal/api/api.go/do(): error while the request body marshalling: %w"

	doErr2 = "in internal/api/api.go/do(): error while `http.NewRequestWithContext()` calling: %w"

	submitPointsErr1 = "incorrect points transaction request: %w"

	loginErr1 = "incorrect login request: %w"

	loginErr2 = "cannot decode the login response JSON body: %w"

	registerErr1 = "incorrect register request: %w"

	registerErr2 = "cannot decode the register response JSON body: %w"

	fetchUserDataErr1 = "cannot decode the user response JSON body: %w"

	listUsersErr1 = "cannot decode the users response JSON body: %w"
)
