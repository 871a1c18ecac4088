package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend, normalized to a
// human-readable message.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether the backend rejected our credential.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// errorBody is the backend's error envelope: either a single message or a
// list of field-validation failures.
type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// newAPIError builds an APIError from a failed response body. Validation
// failures (a 400 with an errors list) join each field message with ", ";
// anything else falls back to the body's message or a generic status line.
func newAPIError(statusCode int, body []byte) *APIError {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if statusCode == http.StatusBadRequest && len(parsed.Errors) > 0 {
			messages := make([]string, len(parsed.Errors))
			for i, e := range parsed.Errors {
				messages[i] = e.Message
			}
			return &APIError{
				StatusCode: statusCode,
				Message:    "Validation failed: " + strings.Join(messages, ", "),
			}
		}
		if parsed.Message != "" {
			return &APIError{StatusCode: statusCode, Message: parsed.Message}
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("Request failed with status %d", statusCode),
	}
}
