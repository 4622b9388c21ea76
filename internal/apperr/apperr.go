// Package apperr defines the error kinds surfaced by the services and the
// HTTP status each one maps to.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind classifies a service error
type Kind int

const (
	KindStoreFailure Kind = iota
	KindInvalidReference
	KindValidationFailed
	KindInvalidPageParameters
	KindInvalidSortField
	KindForbidden
	KindNotFound
)

var kindNames = map[Kind]string{
	KindStoreFailure:          "store_failure",
	KindInvalidReference:      "invalid_reference",
	KindValidationFailed:      "validation_failed",
	KindInvalidPageParameters: "invalid_page_parameters",
	KindInvalidSortField:      "invalid_sort_field",
	KindForbidden:             "forbidden",
	KindNotFound:              "not_found",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Status returns the HTTP status code for the kind
func (k Kind) Status() int {
	switch k {
	case KindInvalidReference, KindValidationFailed, KindInvalidPageParameters, KindInvalidSortField:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error with a message safe to show to clients
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error
func (e *Error) Status() int { return e.Kind.Status() }

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func InvalidReference(format string, args ...any) error {
	return newf(KindInvalidReference, format, args...)
}

func ValidationFailed(format string, args ...any) error {
	return newf(KindValidationFailed, format, args...)
}

func InvalidPageParameters(format string, args ...any) error {
	return newf(KindInvalidPageParameters, format, args...)
}

func InvalidSortField(format string, args ...any) error {
	return newf(KindInvalidSortField, format, args...)
}

func Forbidden(format string, args ...any) error {
	return newf(KindForbidden, format, args...)
}

func NotFound(format string, args ...any) error {
	return newf(KindNotFound, format, args...)
}

// StoreFailure wraps cause with a client-facing message
func StoreFailure(cause error, message string) error {
	return &Error{Kind: KindStoreFailure, Message: message, Err: cause}
}
