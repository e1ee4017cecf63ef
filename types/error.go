package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unified error code across the client.
type ErrorCode string

// Configuration and input error codes
const (
	ErrConfigMissing ErrorCode = "CONFIG_MISSING"
	ErrInputMissing  ErrorCode = "INPUT_MISSING"
)

// Remote job lifecycle error codes
const (
	ErrSubmissionRejected  ErrorCode = "SUBMISSION_REJECTED"
	ErrPollingFailed       ErrorCode = "POLLING_FAILED"
	ErrGenerationFailed    ErrorCode = "GENERATION_FAILED"
	ErrGenerationCancelled ErrorCode = "GENERATION_CANCELLED"
	ErrGenerationTimedOut  ErrorCode = "GENERATION_TIMED_OUT"
	ErrDownloadFailed      ErrorCode = "DOWNLOAD_FAILED"
)

// ErrorKind groups error codes into the stage that produced them.
type ErrorKind string

const (
	KindConfig     ErrorKind = "config"
	KindInput      ErrorKind = "input"
	KindSubmission ErrorKind = "submission"
	KindPolling    ErrorKind = "polling"
	KindDownload   ErrorKind = "download"
	KindUnknown    ErrorKind = "unknown"
)

// Kind returns the stage an error code belongs to.
func (c ErrorCode) Kind() ErrorKind {
	switch c {
	case ErrConfigMissing:
		return KindConfig
	case ErrInputMissing:
		return KindInput
	case ErrSubmissionRejected:
		return KindSubmission
	case ErrPollingFailed, ErrGenerationFailed, ErrGenerationCancelled, ErrGenerationTimedOut:
		return KindPolling
	case ErrDownloadFailed:
		return KindDownload
	default:
		return KindUnknown
	}
}

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Body       string    `json:"body,omitempty"`
	Retryable  bool      `json:"retryable"`
	Provider   string    `json:"provider,omitempty"`
	Cause      error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.HTTPStatus != 0 {
		msg += fmt.Sprintf(" (status=%d)", e.HTTPStatus)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Kind returns the stage that produced the error.
func (e *Error) Kind() ErrorKind {
	return e.Code.Kind()
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithHTTPStatus sets the HTTP status code.
func (e *Error) WithHTTPStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

// WithBody records the raw response body returned by the remote service.
func (e *Error) WithBody(body string) *Error {
	e.Body = body
	return e
}

// WithProvider sets the provider name.
func (e *Error) WithProvider(provider string) *Error {
	e.Provider = provider
	return e
}

// NewConfigError reports configuration missing before any network call.
func NewConfigError(message string) *Error {
	return NewError(ErrConfigMissing, message)
}

// NewInputError reports a missing or unreadable input file.
func NewInputError(message string, cause error) *Error {
	return NewError(ErrInputMissing, message).WithCause(cause)
}

// NewSubmissionError reports a rejected job submission.
func NewSubmissionError(provider string, status int, body string) *Error {
	return NewError(ErrSubmissionRejected, "submission rejected").
		WithProvider(provider).
		WithHTTPStatus(status).
		WithBody(body)
}

// AsError extracts a *Error from the error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if e, ok := AsError(err); ok {
		return e.Retryable
	}
	return false
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// KindOf returns the stage of an error, or KindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	if e, ok := AsError(err); ok {
		return e.Kind()
	}
	return KindUnknown
}
