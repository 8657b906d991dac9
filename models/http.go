package models

import (
	"fmt"
	"strings"
)

// FieldError is one entry of the server's field-level validation list
// (the optional `errors` array of an error response body).
type FieldError struct {
	// Path is the name of the offending request field.
	Path string `json:"path"`

	// Msg is the human-readable validation message for that field.
	Msg string `json:"msg"`
}

// ErrorResponse is the JSON shape the server uses for every non-2xx body:
// a top-level `error` string and an optional `errors` validation list.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Errors []FieldError `json:"errors,omitempty"`
}

// APIError is the normalized failure produced by the HTTP adapter for any
// non-2xx response. It keeps the HTTP status and the raw body so callers
// that need field-level detail (form screens) can get at it, while the
// Message is already the best user-facing string the adapter could derive:
// the server's `error` field when present, else the transport-level message.
type APIError struct {
	// Message is the user-facing error summary.
	Message string

	// StatusCode is the HTTP status of the failed response, or zero for a
	// transport-level failure that produced no response.
	StatusCode int

	// Body is the raw response body, useful for diagnostics.
	Body string

	// Fields holds the server's field-level validation errors, if any.
	Fields []FieldError
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (http %d)", e.Message, e.StatusCode)
}

// FieldMessage returns the validation message for the given field path, or
// an empty string if the server reported none.
func (e *APIError) FieldMessage(path string) string {
	for _, f := range e.Fields {
		if strings.EqualFold(f.Path, path) {
			return f.Msg
		}
	}
	return ""
}
