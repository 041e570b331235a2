package apperror

import (
	"errors"
	"net/http"
)

// Code is the stable machine-readable error code sent to clients.
type Code string

const (
	CodeBadRequest   Code = "BAD_REQUEST"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeRateLimited  Code = "RATE_LIMITED"
	CodeUnavailable  Code = "UNAVAILABLE"
	CodeInternal     Code = "INTERNAL"
)

type AppError struct {
	Status       int      `json:"-"`
	Code         Code     `json:"code"`
	Message      string   `json:"error"`
	ExistingSlug string   `json:"existingSlug,omitempty"`
	Details      []string `json:"details,omitempty"`
	Err          error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, code Code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, CodeBadRequest, message, nil)
}

// Invalid is a BadRequest carrying one message per violated rule.
func Invalid(message string, details []string) *AppError {
	e := BadRequest(message)
	e.Details = details
	return e
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, CodeNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, CodeConflict, message, nil)
}

// OwnedConflict reports that the caller already owns a record under existingSlug.
func OwnedConflict(message, existingSlug string) *AppError {
	e := Conflict(message)
	e.ExistingSlug = existingSlug
	return e
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, CodeRateLimited, message, nil)
}

func Unavailable(message string, err error) *AppError {
	return New(http.StatusServiceUnavailable, CodeUnavailable, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, CodeInternal, "Internal Server Error", err)
}

// InternalMessage is an Internal error whose message is safe to show.
func InternalMessage(message string, err error) *AppError {
	return New(http.StatusInternalServerError, CodeInternal, message, err)
}

// Upstream forwards a failing dependency's HTTP status under the INTERNAL code.
func Upstream(status int, message string, err error) *AppError {
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	return New(status, CodeInternal, message, err)
}

// As extracts an *AppError from err.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code carried by err, or CodeInternal.
func CodeOf(err error) Code {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternal
}
