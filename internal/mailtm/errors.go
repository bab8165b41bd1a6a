package mailtm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hay-kot/tempbox/internal/httpclient"
)

// Sentinel errors matched by *APIError via errors.Is.
var (
	ErrUnauthorized = errors.New("mailtm: unauthorized")
	ErrNotFound     = errors.New("mailtm: not found")
	ErrRateLimited  = errors.New("mailtm: rate limit exceeded")
	ErrNoDomains    = errors.New("mailtm: no active domains available")
)

// ErrorType groups failures by their likely remedy.
type ErrorType string

const (
	TypeNetwork    ErrorType = "network"
	TypeAPI        ErrorType = "api"
	TypeValidation ErrorType = "validation"
	TypeRateLimit  ErrorType = "rate_limit"
	TypeUnknown    ErrorType = "unknown"
)

// APIError is a classified failure talking to mail.tm. StatusCode is zero
// for failures that never produced a response.
type APIError struct {
	StatusCode int       `json:"code"`
	Message    string    `json:"message"`
	Type       ErrorType `json:"type"`

	// Upstream is the message the API itself returned, if any.
	Upstream string `json:"-"`
	err      error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("mailtm: %s (status %d)", e.Message, e.StatusCode)
	}
	return "mailtm: " + e.Message
}

func (e *APIError) Unwrap() error {
	return e.err
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusTooManyRequests:
		return target == ErrRateLimited
	}
	return false
}

// statusError classifies an HTTP error status. upstream is the API's own
// message and is used only for statuses without a fixed description.
func statusError(status int, upstream string) *APIError {
	e := &APIError{StatusCode: status, Type: TypeAPI, Upstream: upstream}

	switch status {
	case http.StatusBadRequest:
		e.Message, e.Type = "Bad request - check your input", TypeValidation
	case http.StatusUnauthorized:
		e.Message = "Unauthorized - invalid token"
	case http.StatusNotFound:
		e.Message = "Resource not found"
	case http.StatusMethodNotAllowed:
		e.Message = "Method not allowed"
	case http.StatusTeapot:
		e.Message = "Server temporarily unavailable"
	case http.StatusUnprocessableEntity:
		e.Message, e.Type = "Invalid input data", TypeValidation
	case http.StatusTooManyRequests:
		e.Message, e.Type = "Rate limit exceeded - please wait", TypeRateLimit
	default:
		e.Message = upstream
		if e.Message == "" {
			e.Message = "API error occurred"
		}
	}
	return e
}

// transportError classifies a failure that produced no response.
func transportError(err error) *APIError {
	var netErr *httpclient.NetworkError
	if errors.As(err, &netErr) {
		return &APIError{Message: "Network error - check your connection", Type: TypeNetwork, err: err}
	}
	msg := err.Error()
	if msg == "" {
		msg = "Unknown error occurred"
	}
	return &APIError{Message: msg, Type: TypeUnknown, err: err}
}
