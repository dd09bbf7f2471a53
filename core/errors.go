package core

import "github.com/pkg/errors"

// Shared error taxonomy for backend interactions. The transport layer maps
// HTTP status codes onto these; domain services only ever compare against
// them via errors.Cause.
var (
	// ErrAuthRequired is returned before any request is sent when a protected
	// call is attempted without an active session (fail closed).
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthenticationFailed covers 400/401/403 on login; the backend does
	// not reliably distinguish them so neither do we.
	ErrAuthenticationFailed = errors.New("invalid email or password")

	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")

	// ErrUnavailable covers transport failures: timeouts, refused connections,
	// unreachable backend. Always safe to retry.
	ErrUnavailable = errors.New("backend unavailable")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// ServerError is an unexpected backend status that fits none of the
// sentinels above; it carries the status code for display.
type ServerError struct {
	Status int
	Msg    string
}

func NewServerError(status int, msg string) error {
	return &ServerError{Status: status, Msg: msg}
}

func (e *ServerError) Error() string {
	if e.Msg == "" {
		return "server error"
	}
	return e.Msg
}
