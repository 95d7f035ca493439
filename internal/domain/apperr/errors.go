// Package apperr holds the error kinds shared by every domain package.
//
// Domain errors are *Error values carrying one of the kind sentinels below, a
// stable machine code and a human message. Callers match on the specific
// error or on its kind with errors.Is.
package apperr

import "errors"

var (
	ErrInvalidState = errors.New("invalid state")
	ErrExpired      = errors.New("expired")
	ErrNotFound     = errors.New("not found")
	ErrPermission   = errors.New("permission denied")
	ErrValidation   = errors.New("validation failed")
)

type Error struct {
	kind    error
	code    string
	message string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.kind
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Kind() error {
	return e.kind
}

func InvalidState(code, message string) *Error {
	return &Error{kind: ErrInvalidState, code: code, message: message}
}

func Expired(code, message string) *Error {
	return &Error{kind: ErrExpired, code: code, message: message}
}

func NotFound(code, message string) *Error {
	return &Error{kind: ErrNotFound, code: code, message: message}
}

func Permission(code, message string) *Error {
	return &Error{kind: ErrPermission, code: code, message: message}
}

func Validation(code, message string) *Error {
	return &Error{kind: ErrValidation, code: code, message: message}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
