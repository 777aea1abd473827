package core

import (
	"errors"
	"fmt"
)

// Error codes attached to pipeline failures.
const (
	ErrCodeNetwork        = "NETWORK_ERROR"
	ErrCodeTimeout        = "FETCH_TIMEOUT"
	ErrCodeAuxiliaryFetch = "AUXILIARY_FETCH_FAILED"
	ErrCodeScoreAPI       = "SCORE_API_FAILED"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeRateLimited    = "RATE_LIMITED"
)

// Error is the pipeline error type carrying a code.
// It implements the error interface and supports error wrapping via Unwrap.
type Error struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error.
func NewError(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether any Error in err's chain carries the given code.
func HasCode(err error, code string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	if e.Code == code {
		return true
	}
	return HasCode(e.Err, code)
}

// IsNetwork reports whether err is a primary fetch failure (connection,
// non-success status or timeout).
func IsNetwork(err error) bool {
	return HasCode(err, ErrCodeNetwork) || HasCode(err, ErrCodeTimeout)
}
