package apperr

import (
	"errors"
	"strings"
)

// Kind classifies an error for transport mapping
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindConflict
	KindUpstream
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is the application error type
type Error struct {
	Kind    Kind
	Message string
	Fields  []string // Offending input fields for validation errors
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is checks
var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrUpstream     = &Error{Kind: KindUpstream}
)

// Validation builds a validation error from a list of problems.
// Each problem is expected to start with the field name.
func Validation(problems ...string) *Error {
	fields := make([]string, 0, len(problems))
	for _, p := range problems {
		name, _, _ := strings.Cut(p, " ")
		fields = append(fields, name)
	}
	return &Error{
		Kind:    KindValidation,
		Message: strings.Join(problems, "; "),
		Fields:  fields,
	}
}

// NotFound builds a not found error for the named resource
func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

// Unauthorized builds an authentication failure
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Conflict builds a uniqueness failure
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Upstream wraps a failure of a collaborator (store, ingestion)
func Upstream(msg string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Cause: cause}
}

// KindOf returns the kind of err, or KindInternal for foreign errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
