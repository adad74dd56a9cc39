package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUnknownOp    = errors.New("unknown operation")
)

// APIError is a non-2xx response. Body is kept verbatim; Message is the
// server's "message" (or "detail") field when the body is a JSON object.
type APIError struct {
	Op      Operation
	Status  int
	Body    []byte
	Message string
}

func newAPIError(op Operation, status int, body []byte) *APIError {
	return &APIError{Op: op, Status: status, Body: body, Message: serverMessage(body)}
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %d %s: %s", e.Op, e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

// Is lets callers match status classes with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

func serverMessage(body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		return detail
	}
	return ""
}

// Message returns a human readable reason for err, preferring the server's
// own message, and fallback when there is none.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
