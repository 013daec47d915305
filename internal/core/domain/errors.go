package domain

import (
	"errors"
	"net/http"
	"strings"
)

// FallbackMessage is the message of every failure that carries no usable
// server message.
const FallbackMessage = "An error occurred"

var (
	ErrNetwork           = errors.New("no response from api")
	ErrMalformedEnvelope = errors.New("malformed response envelope")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("access forbidden")
	ErrNotFound          = errors.New("not found")
	ErrSessionExpired    = errors.New("session expired")
)

// APIError is the normalized failure of a SkillSwap API call. Error returns
// exactly the message pages display.
type APIError struct {
	// Status is the HTTP status, or 0 when no response was received.
	Status  int
	Code    string
	Message string
	// Expired is set when a 401 could not be recovered by a session refresh.
	Expired bool
	// Err is the transport or decoding cause, if any.
	Err error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap lets callers test the error kind with errors.Is.
func (e *APIError) Unwrap() []error {
	errs := make([]error, 0, 3)
	switch e.Status {
	case 0:
		errs = append(errs, ErrNetwork)
	case http.StatusUnauthorized:
		errs = append(errs, ErrUnauthorized)
	case http.StatusForbidden:
		errs = append(errs, ErrForbidden)
	case http.StatusNotFound:
		errs = append(errs, ErrNotFound)
	}
	if e.Expired {
		errs = append(errs, ErrSessionExpired)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewNetworkError normalizes a failure that produced no HTTP response.
func NewNetworkError(cause error) *APIError {
	return &APIError{Message: FallbackMessage, Err: cause}
}

// IsUnauthorized reports whether err is a normalized 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// FormError carries the messages of a page form that failed validation.
type FormError struct {
	Messages []string
}

func NewFormError(messages ...string) *FormError {
	return &FormError{Messages: messages}
}

func (e *FormError) Error() string {
	return strings.Join(e.Messages, "; ")
}
