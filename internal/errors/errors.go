// Package errors defines the domain error taxonomy shared by the stores,
// services and HTTP layer.
//
// Stores return typed errors; callers match them with errors.Is against the
// sentinel values:
//
//	entry, err := store.SetProgress(ctx, id, -1)
//	if errors.Is(err, errors.ErrInvalidArgument) {
//	    // reject input
//	}
//
// Or inspect the Code directly:
//
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    c.JSON(domainErr.HTTPStatus(), domainErr)
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

const (
	CodeNotFound         Code = "NOT_FOUND"
	CodeDuplicateEntry   Code = "DUPLICATE_ENTRY"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	CodeForbidden        Code = "FORBIDDEN"
)

// HTTPStatus returns the HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicateEntry:
		return http.StatusConflict
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of the error carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// Sentinel errors for errors.Is checks.
var (
	ErrNotFound         = &Error{Code: CodeNotFound, Message: "not found"}
	ErrDuplicateEntry   = &Error{Code: CodeDuplicateEntry, Message: "duplicate entry"}
	ErrInvalidArgument  = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrStoreUnavailable = &Error{Code: CodeStoreUnavailable, Message: "store unavailable"}
	ErrForbidden        = &Error{Code: CodeForbidden, Message: "forbidden"}
)

// NotFound reports that a referenced entity is absent.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// DuplicateEntry reports a uniqueness violation on create.
func DuplicateEntry(message string) *Error {
	return &Error{Code: CodeDuplicateEntry, Message: message}
}

// InvalidArgument reports a caller-supplied value that violates a documented constraint.
func InvalidArgument(message string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: message}
}

// InvalidArgumentWithDetails is InvalidArgument with per-field details.
func InvalidArgumentWithDetails(message string, details any) *Error {
	return &Error{Code: CodeInvalidArgument, Message: message, Details: details}
}

// StoreUnavailable wraps a transport or backing-store fault.
func StoreUnavailable(message string, cause error) *Error {
	return &Error{Code: CodeStoreUnavailable, Message: message, cause: cause}
}

// Forbidden reports that the caller may not see or change the entity.
func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// Wrap attaches a cause to an error of the given code.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}
