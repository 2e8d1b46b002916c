package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed request for caller-side branching.
type ErrorKind string

const (
	// ErrKindTimeout means the attempt's time budget elapsed before a response arrived.
	ErrKindTimeout ErrorKind = "TIMEOUT"
	// ErrKindNetwork means the request never produced an HTTP response.
	ErrKindNetwork ErrorKind = "NETWORK_UNAVAILABLE"
	// ErrKindHTTP means the server responded with a failure status.
	ErrKindHTTP ErrorKind = "HTTP_ERROR"
	// ErrKindProtocol means the response body could not be parsed as JSON.
	ErrKindProtocol ErrorKind = "PROTOCOL_ERROR"
)

// APIError is the normalized error surfaced for every terminal request failure.
type APIError struct {
	Kind    ErrorKind
	Status  int    // HTTP status, set only for ErrKindHTTP
	Message string // human-readable, server-supplied where available
	Details string // optional server-supplied detail
	cause   error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case ErrKindHTTP:
		return fmt.Sprintf("[%s] %d %s: %s", e.Kind, e.Status, http.StatusText(e.Status), e.Message)
	default:
		if e.cause != nil {
			return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.cause)
		}
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
}

func (e *APIError) Unwrap() error { return e.cause }

// Retryable reports whether another attempt could plausibly succeed.
// Timeouts, network-layer failures and 5xx responses qualify.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case ErrKindTimeout, ErrKindNetwork:
		return true
	case ErrKindHTTP:
		return e.Status >= http.StatusInternalServerError
	}
	return false
}

func timeoutError(cause error) *APIError {
	return &APIError{Kind: ErrKindTimeout, Message: "request timed out", cause: cause}
}

func networkError(cause error) *APIError {
	return &APIError{Kind: ErrKindNetwork, Message: "network unavailable", cause: cause}
}

func protocolError(cause error) *APIError {
	return &APIError{Kind: ErrKindProtocol, Message: "malformed response body", cause: cause}
}

func httpError(status int, message, details string) *APIError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{Kind: ErrKindHTTP, Status: status, Message: message, Details: details}
}

// AsAPIError unwraps err into an *APIError if one is present in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsStatus reports whether err is an HTTP error with the given status code.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == ErrKindHTTP && apiErr.Status == status
}
