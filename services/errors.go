package services

import (
	"errors"
	"net/http"
)

// Domain error codes returned to callers. Anything not carrying one of these
// is treated as internal and must not leak detail past the envelope message.
type ErrorCode string

const (
	CodeNotFound      ErrorCode = "not_found"
	CodeUnauthorized  ErrorCode = "unauthorized"
	CodeInvalidState  ErrorCode = "invalid_state"
	CodeInvalidAmount ErrorCode = "invalid_amount"
	CodeExpired       ErrorCode = "expired"
	CodeAlreadyFunded ErrorCode = "already_funded"
	CodeConflict      ErrorCode = "conflict"
	CodeInternal      ErrorCode = "internal"
)

type DomainError struct {
	Code    ErrorCode
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func notFound(msg string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: msg}
}

func unauthorized(msg string) *DomainError {
	return &DomainError{Code: CodeUnauthorized, Message: msg}
}

func invalidState(msg string) *DomainError {
	return &DomainError{Code: CodeInvalidState, Message: msg}
}

func invalidAmount(msg string) *DomainError {
	return &DomainError{Code: CodeInvalidAmount, Message: msg}
}

// IsCode reports whether err is a DomainError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// HTTPError maps a service error to an HTTP status and a user-facing message.
// Non-domain errors come back as a generic 500 so storage details never reach
// the caller.
func HTTPError(err error) (int, string) {
	var de *DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, "Something went wrong, please try again"
	}
	switch de.Code {
	case CodeNotFound:
		return http.StatusNotFound, de.Message
	case CodeUnauthorized:
		return http.StatusForbidden, de.Message
	case CodeInvalidState, CodeInvalidAmount, CodeExpired, CodeAlreadyFunded:
		return http.StatusBadRequest, de.Message
	case CodeConflict:
		return http.StatusConflict, de.Message
	default:
		return http.StatusInternalServerError, "Something went wrong, please try again"
	}
}
