package mensa

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EPARSE    = "parse"
	ENETWORK  = "network"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code & message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("mensa error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// A ParseError anywhere in the chain reports EPARSE.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return EPARSE
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ParseError reports a structural mismatch between a page and the markup the
// parsers expect. Field names the entity or field that failed; Err is the
// nested cause, which is often another ParseError one level further down.
type ParseError struct {
	Field string
	Err   error
}

// NewParseError returns a ParseError for field wrapping cause.
func NewParseError(field string, cause error) *ParseError {
	return &ParseError{Field: field, Err: cause}
}

func (e *ParseError) Error() string {
	return "parse " + e.describe()
}

func (e *ParseError) describe() string {
	switch cause := e.Err.(type) {
	case nil:
		return e.Field
	case *ParseError:
		return e.Field + " < " + cause.describe()
	case *Error:
		return e.Field + ": " + cause.Message
	default:
		return e.Field + ": " + cause.Error()
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldPath returns the field names of every ParseError in err's chain,
// outermost first. It returns nil if err contains no ParseError.
func FieldPath(err error) []string {
	var path []string
	for err != nil {
		var pe *ParseError
		if !errors.As(err, &pe) {
			break
		}
		path = append(path, pe.Field)
		err = pe.Err
	}
	return path
}
