package streamhttp

import (
	"errors"
	"fmt"
)

// ErrorCode classifies execution errors.
type ErrorCode int

const (
	// ErrCodeMalformedTarget indicates the request target could not be
	// parsed as an absolute locator. Local and synchronous; never sent.
	ErrCodeMalformedTarget ErrorCode = iota
	// ErrCodeUnsupportedContent indicates no registered codec matched the
	// (type, media type) pair.
	ErrCodeUnsupportedContent
	// ErrCodeDoubleSend indicates the one-shot send guard was violated.
	// A programming error, fatal to that execution.
	ErrCodeDoubleSend
	// ErrCodeEmptyBody indicates single-value consumption of a body that
	// decoded to zero elements.
	ErrCodeEmptyBody
	// ErrCodeTransport wraps a lower-layer network fault.
	ErrCodeTransport
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeMalformedTarget:
		return "malformed_target"
	case ErrCodeUnsupportedContent:
		return "unsupported_content"
	case ErrCodeDoubleSend:
		return "double_send"
	case ErrCodeEmptyBody:
		return "empty_body"
	case ErrCodeTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is a structured execution error with classification. Every failure
// terminates its execution through the same path a success would use; there
// is exactly one terminal signal per execution and no local recovery.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Retryable indicates whether a collaborator may retry the operation.
	// This layer never retries.
	Retryable bool
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("streamhttp: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewMalformedTargetError creates a malformed-target error.
func NewMalformedTargetError(target string, err error) *Error {
	return &Error{
		Code:      ErrCodeMalformedTarget,
		Message:   fmt.Sprintf("cannot parse target %q", target),
		Retryable: false,
		Err:       err,
	}
}

// NewUnsupportedContentError creates an unsupported-content error.
func NewUnsupportedContentError(msg string) *Error {
	return &Error{
		Code:      ErrCodeUnsupportedContent,
		Message:   msg,
		Retryable: false,
	}
}

// NewDoubleSendError creates a double-send error.
func NewDoubleSendError() *Error {
	return &Error{
		Code:      ErrCodeDoubleSend,
		Message:   "request already sent",
		Retryable: false,
	}
}

// NewEmptyBodyError creates an empty-body error.
func NewEmptyBodyError() *Error {
	return &Error{
		Code:      ErrCodeEmptyBody,
		Message:   "response body decoded to zero elements",
		Retryable: false,
	}
}

// NewTransportError creates a transport error wrapping the original cause.
func NewTransportError(err error) *Error {
	return &Error{
		Code:      ErrCodeTransport,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// IsMalformedTarget checks if an error is a malformed-target error.
func IsMalformedTarget(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeMalformedTarget
}

// IsUnsupportedContent checks if an error is an unsupported-content error.
func IsUnsupportedContent(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeUnsupportedContent
}

// IsDoubleSend checks if an error is a double-send error.
func IsDoubleSend(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeDoubleSend
}

// IsEmptyBody checks if an error is an empty-body error.
func IsEmptyBody(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeEmptyBody
}

// IsTransport checks if an error is a transport error.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTransport
}

// IsRetryable checks if an error may be retried by a collaborator.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
