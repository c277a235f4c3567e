// Package apperr defines the error kinds returned by the API and renders
// them as JSON responses. Domain packages declare sentinel errors with New
// and the echo error handler maps each kind to its HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the machine-readable error category sent to clients.
type Kind string

const (
	KindValidation          Kind = "validation_failed"
	KindDuplicateEmail      Kind = "duplicate_email"
	KindMissingPassword     Kind = "missing_password"
	KindInvalidCredentials  Kind = "invalid_credentials"
	KindAccountDisabled     Kind = "account_disabled"
	KindInvalidRole         Kind = "invalid_role"
	KindUnauthenticated     Kind = "unauthenticated"
	KindInvalidToken        Kind = "invalid_token"
	KindForbidden           Kind = "forbidden"
	KindNotFoundOrForbidden Kind = "not_found_or_forbidden"
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
	KindServer              Kind = "server_error"
)

var statusByKind = map[Kind]int{
	KindValidation:          http.StatusBadRequest,
	KindDuplicateEmail:      http.StatusBadRequest,
	KindMissingPassword:     http.StatusBadRequest,
	KindInvalidCredentials:  http.StatusBadRequest,
	KindAccountDisabled:     http.StatusBadRequest,
	KindInvalidRole:         http.StatusBadRequest,
	KindUnauthenticated:     http.StatusUnauthorized,
	KindInvalidToken:        http.StatusUnauthorized,
	KindForbidden:           http.StatusForbidden,
	KindNotFoundOrForbidden: http.StatusNotFound,
	KindNotFound:            http.StatusNotFound,
	KindConflict:            http.StatusConflict,
	KindServer:              http.StatusInternalServerError,
}

// Error is an API-facing error. Fields carries per-field messages for
// validation failures.
type Error struct {
	Kind    Kind              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on Kind so that wrapped copies still satisfy errors.Is against
// the package-level sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || e.Message == t.Message)
}

// Status returns the HTTP status for the error's kind.
func (e *Error) Status() int {
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a validation error carrying per-field messages.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// Field builds a validation error for a single field.
func Field(field, msg string) *Error {
	return Validation(map[string]string{field: msg})
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindServer for anything unrecognised.
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return KindServer
}
