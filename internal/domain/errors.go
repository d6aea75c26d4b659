package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError carries a message meant to be shown next to a form
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// TransportError is a network level failure: refused connection, reset,
// timeout. Its message is shown to the user verbatim.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx answer from the backend
type StatusError struct {
	Code int
	// Message is the backend's own explanation, when the body carried one.
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.Code)
}

// Is maps status codes onto the sentinel errors below
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	}
	return false
}

// UnexpectedError wraps anything that went wrong outside the transport,
// such as a response body that does not decode.
type UnexpectedError struct {
	Op  string
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

var (
	// ErrUnauthorized is matched by a 401 StatusError
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is matched by a 404 StatusError
	ErrNotFound = errors.New("resource not found")
	// ErrAuthRequired is returned when a mutating action runs without a credential
	ErrAuthRequired = errors.New("authentication required")
	// ErrInvalidToken is returned when a stored credential cannot be read
	ErrInvalidToken = errors.New("invalid token")
)

// UnexpectedMessage is the generic text shown for non-transport failures
const UnexpectedMessage = "An unexpected error occurred"

// UserMessage turns an error into the single line shown in place of the list
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var transport *TransportError
	if errors.As(err, &transport) {
		return transport.Error()
	}

	var status *StatusError
	if errors.As(err, &status) {
		return status.Error()
	}

	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}

	return UnexpectedMessage
}

// Auth form messages
const (
	// FormFailureMessage is shown when nothing more specific applies
	FormFailureMessage = "An error occurred. Please try again."
	// UserNotFoundMessage switches the form to signup after a 404 on login
	UserNotFoundMessage = "User not found. Please sign up."
	// VerifyEmailMessage is shown when signup issued no token
	VerifyEmailMessage = "Please check your email to verify your account."
)

// FormMessage turns a login or signup failure into the line shown above
// the form. Only validation and network failures are specific.
func FormMessage(err error) string {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}
	var transport *TransportError
	if errors.As(err, &transport) {
		return transport.Error()
	}
	return FormFailureMessage
}
