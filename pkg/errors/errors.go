package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an AppError; each code maps to one HTTP status.
type ErrorCode int

const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrConflict
)

var statusByCode = map[ErrorCode]int{
	ErrNotFound:     http.StatusNotFound,
	ErrBadRequest:   http.StatusBadRequest,
	ErrUnauthorized: http.StatusUnauthorized,
	ErrForbidden:    http.StatusForbidden,
	ErrConflict:     http.StatusConflict,
}

// AppError is an error the API reports to the caller. Message is safe to
// show; Err carries the cause for logs.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func newError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NotFound reports a missing record, e.g. NotFound("client", nil) reads
// "client not found".
func NotFound(resource string, err error) *AppError {
	return newError(ErrNotFound, fmt.Sprintf("%s not found", resource), err)
}

func BadRequest(message string, err error) *AppError {
	return newError(ErrBadRequest, message, err)
}

func Unauthorized(err error) *AppError {
	return newError(ErrUnauthorized, "unauthorized", err)
}

func Forbidden(message string) *AppError {
	return newError(ErrForbidden, message, nil)
}

func Conflict(message string) *AppError {
	return newError(ErrConflict, message, nil)
}

// As extracts an AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// Is is errors.Is from the standard library, so callers need one import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
