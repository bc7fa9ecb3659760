package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error leaving the service layer unwraps to one of these
// so the transport can map it to a status code and a stable error code.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrValidation         = errors.New("validation failed")
	ErrDatabase           = errors.New("database error")
	ErrExternalService    = errors.New("external service error")
)

// ErrCurrentPasswordMismatch is an InvalidCredentials failure raised by a
// password change; it is reported as a bad request rather than a 401.
var ErrCurrentPasswordMismatch = fmt.Errorf("%w: current password mismatch", ErrInvalidCredentials)

var (
	ErrUserNotFound    = &Error{Kind: ErrNotFound, Message: "user not found"}
	ErrArticleNotFound = &Error{Kind: ErrNotFound, Message: "article not found"}
)

// Error is a classified failure with a client-facing message and optional
// per-field details.
type Error struct {
	Kind    error
	Message string
	Details map[string][]string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithDetail returns a copy of e with msg appended to the details of field.
func (e *Error) WithDetail(field, msg string) *Error {
	out := &Error{Kind: e.Kind, Message: e.Message, Details: make(map[string][]string, len(e.Details)+1)}
	for k, v := range e.Details {
		out.Details[k] = append([]string(nil), v...)
	}
	out.Details[field] = append(out.Details[field], msg)
	return out
}

func Unauthorized(msg string) *Error  { return NewError(ErrUnauthorized, msg) }
func Forbidden(msg string) *Error     { return NewError(ErrForbidden, msg) }
func AlreadyExists(msg string) *Error { return NewError(ErrAlreadyExists, msg) }

// Invalid returns a validation error carrying a single field detail.
func Invalid(field, msg string) *Error {
	return NewError(ErrValidation, "validation failed").WithDetail(field, msg)
}

// InvalidCredentials is the single login failure. The message must not reveal
// whether the account exists.
func InvalidCredentials() *Error {
	return NewError(ErrInvalidCredentials, "email or password is incorrect")
}
