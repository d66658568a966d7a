package domain

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeUserExists         Code = "USER_EXISTS"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeInvalidStatus      Code = "INVALID_STATUS"
	CodeInvalidToken       Code = "INVALID_TOKEN"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeInternal           Code = "INTERNAL_ERROR"
)

// Error is the structured failure every component returns for expected conditions.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

// Is matches on code only, so errors.Is(err, ErrNotFound) holds for any NOT_FOUND error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrValidation   = &Error{Code: CodeValidation}
	ErrUnauthorized = &Error{Code: CodeUnauthorized, Message: "authentication required"}
	ErrForbidden    = &Error{Code: CodeForbidden, Message: "not allowed to access this resource"}
	ErrNotFound     = &Error{Code: CodeNotFound}
	ErrExists       = &Error{Code: CodeAlreadyExists}
	ErrUserExists   = &Error{Code: CodeUserExists, Message: "an account with this email already exists"}
	// ErrInvalidCredentials is shared by unknown email and wrong secret.
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Message: "invalid email or password"}
	ErrInvalidStatus      = &Error{Code: CodeInvalidStatus}
	ErrInvalidToken       = &Error{Code: CodeInvalidToken, Message: "token is invalid or expired"}
	ErrRateLimited        = &Error{Code: CodeRateLimited, Message: "too many requests, try again later"}
)

func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf reports the code of a domain error, or CodeInternal for anything else.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
