// Package errors provides structured error types for the sparqlkit client.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the client library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes map onto the protocol outcome they describe:
//   - CONFIG_INVALID: endpoint configuration rejected before any request
//   - MALFORMED_QUERY: the endpoint rejected the query text (HTTP 400)
//   - CLIENT_ERROR / SERVER_ERROR: other non-success protocol responses
//   - TRANSPORT: the request never produced a usable response
//   - DECODE / UNSUPPORTED_FORMAT: the response body could not be turned
//     into a result
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfigInvalid, "endpoint URL is empty")
//	if errors.Is(err, errors.ErrCodeConfigInvalid) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "query %s", endpoint)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors, detected before a request is sent
	ErrCodeConfigInvalid Code = "CONFIG_INVALID"

	// Protocol errors, derived from the response status code
	ErrCodeMalformedQuery Code = "MALFORMED_QUERY"
	ErrCodeClientError    Code = "CLIENT_ERROR"
	ErrCodeServerError    Code = "SERVER_ERROR"

	// Transport errors: the exchange failed below the protocol layer
	ErrCodeTransport Code = "TRANSPORT"
	ErrCodeTimeout   Code = "TIMEOUT"

	// Decoding errors, raised while turning a success response into a result
	ErrCodeDecode            Code = "DECODE"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPError carries the status code and response body of a failed
// protocol exchange so callers can inspect what the endpoint said.
type HTTPError struct {
	StatusCode int    // HTTP status code of the response
	Body       string // Response body, usually the endpoint's error text
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("endpoint returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("endpoint returned %d", e.StatusCode)
}
