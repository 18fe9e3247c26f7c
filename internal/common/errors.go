package common

import (
	"errors"
	"net/http"
)

// ErrorKind classifies failures surfaced at the handler boundary
type ErrorKind string

const (
	KindUnauthenticated     ErrorKind = "UNAUTHENTICATED"
	KindInvalidToken        ErrorKind = "INVALID_TOKEN"
	KindValidation          ErrorKind = "VALIDATION_ERROR"
	KindNotFound            ErrorKind = "NOT_FOUND_OR_FORBIDDEN"
	KindReference           ErrorKind = "REFERENCE_ERROR"
	KindConflict            ErrorKind = "CONFLICT"
	KindOrderCreationFailed ErrorKind = "ORDER_CREATION_FAILED"
	KindOrderUpdateFailed   ErrorKind = "ORDER_UPDATE_FAILED"
	KindRollbackFailed      ErrorKind = "ROLLBACK_FAILED"
	KindDatabaseUnavailable ErrorKind = "DATABASE_UNAVAILABLE"
	KindRateLimited         ErrorKind = "RATE_LIMITED"
	KindInternal            ErrorKind = "INTERNAL_ERROR"
)

var kindStatus = map[ErrorKind]int{
	KindUnauthenticated:     http.StatusUnauthorized,
	KindInvalidToken:        http.StatusForbidden,
	KindValidation:          http.StatusBadRequest,
	KindNotFound:            http.StatusNotFound,
	KindReference:           http.StatusUnprocessableEntity,
	KindConflict:            http.StatusConflict,
	KindOrderCreationFailed: http.StatusInternalServerError,
	KindOrderUpdateFailed:   http.StatusInternalServerError,
	KindRollbackFailed:      http.StatusInternalServerError,
	KindDatabaseUnavailable: http.StatusServiceUnavailable,
	KindRateLimited:         http.StatusTooManyRequests,
	KindInternal:            http.StatusInternalServerError,
}

// AppError is a classified error carrying a user-facing message and its cause
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewError creates a classified error
func NewError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func ValidationError(message string) *AppError {
	return NewError(KindValidation, message, nil)
}

func NotFoundError(message string) *AppError {
	return NewError(KindNotFound, message, nil)
}

func InternalError(message string, err error) *AppError {
	return NewError(KindInternal, message, err)
}

// KindOf returns the kind of the outermost AppError in err's chain
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether any AppError in err's chain has the given kind
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		var appErr *AppError
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Kind == kind {
			return true
		}
		err = appErr.Err
	}
	return false
}

// StatusOf maps an error to its HTTP status. Aborted order transactions take
// the status of a wrapped reference error so a missing product stays a client error.
func StatusOf(err error) int {
	kind := KindOf(err)
	if (kind == KindOrderCreationFailed || kind == KindOrderUpdateFailed) && IsKind(err, KindReference) {
		return kindStatus[KindReference]
	}
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the message meant for the client. Causes of internal
// failures are never exposed.
func MessageOf(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return "Internal server error."
	}
	switch appErr.Kind {
	case KindInternal, KindDatabaseUnavailable, KindRollbackFailed:
		if appErr.Message != "" {
			return appErr.Message
		}
		return "Internal server error."
	case KindOrderCreationFailed, KindOrderUpdateFailed:
		if !IsKind(err, KindReference) {
			return appErr.Message + "."
		}
	}
	return appErr.Error()
}
