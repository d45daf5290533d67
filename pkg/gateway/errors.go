package gateway

import (
	"errors"
	"fmt"
)

// Envelope codes the gateway uses for application-level results.
const (
	CodeOK           = 200
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
)

// Error types for common failure scenarios.
var (
	// ErrNoAccessKey indicates an endpoint requiring a session access key
	// was called without one configured.
	ErrNoAccessKey = errors.New("no session access key configured")

	// ErrEmptyEnvelope indicates the gateway returned a body that could
	// not be parsed as a response envelope.
	ErrEmptyEnvelope = errors.New("response is not a valid envelope")
)

// Error wraps a gateway API failure with operation context.
//
// Code carries the application-level envelope code when an envelope was
// decoded, or the HTTP status when the failure happened at the transport
// level before an envelope was available. Code 0 means the request never
// produced a response (network failure, timeout).
type Error struct {
	// Op is the operation that failed.
	Op string

	// Code is the envelope code or transport status.
	Code int

	// Message is the server-supplied or best-effort error message.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	if e.Code != 0 {
		return fmt.Sprintf("%s: [%d] %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError creates an Error with the given operation, code, and message.
func newError(op string, code int, message string) *Error {
	return &Error{Op: op, Code: code, Message: message}
}

// wrapError wraps an error with operation context.
func wrapError(op string, err error) *Error {
	return &Error{Op: op, Err: err, Message: err.Error()}
}

// IsAuthError returns true if the error is an authentication failure
// (envelope code or HTTP status 401).
func IsAuthError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == CodeUnauthorized
	}
	return false
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == CodeNotFound
	}
	return false
}

// ErrorCode returns the code carried by a gateway error, or 0.
func ErrorCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
