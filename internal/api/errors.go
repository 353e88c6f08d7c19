package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend. The backend's own
// error payload is preserved when it can be parsed; otherwise the
// message falls back to the status text.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}

	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func lower(s string) string {
	return strings.ToLower(s)
}

// errorBody covers the two payload shapes the backend uses for
// errors: {"message": ...} and {"detail": ...}.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func NewAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    lower(http.StatusText(statusCode)),
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			apiErr.Message = eb.Message
		} else if eb.Detail != "" {
			apiErr.Message = eb.Detail
		}
	}

	return apiErr
}

// IsStatus reports whether err is an APIError with the given status
// code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}
