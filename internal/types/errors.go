package types

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable identifier for a failure category.
type ErrorCode string

const (
	// Grammar errors
	CodeGrammar             ErrorCode = "GRAMMAR"
	CodeUnterminatedInput   ErrorCode = "UNTERMINATED_INPUT"
	CodeUnresolvedReference ErrorCode = "UNRESOLVED_REFERENCE"

	// Scope errors
	CodeUnstartedTag  ErrorCode = "UNSTARTED_TAG"
	CodeMismatchedTag ErrorCode = "MISMATCHED_TAG"
	CodeUnclosedTag   ErrorCode = "UNCLOSED_TAG"

	// Ownership errors
	CodeDuplicatedResource ErrorCode = "DUPLICATED_RESOURCE"

	// Configuration errors
	CodeConfigLoad  ErrorCode = "CONFIG_LOAD"
	CodeConfigParse ErrorCode = "CONFIG_PARSE"
)

// Error is a coded compilation error. Two Errors compare equal under
// errors.Is when their codes match, so the sentinels below can be used as
// targets.
type Error struct {
	Code    ErrorCode
	Message string
	Pos     Pos
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Pos.IsValid() {
		msg = fmt.Sprintf("[%s] %s: %s", e.Code, e.Pos, e.Message)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	return msg
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// Sentinels for errors.Is.
var (
	ErrGrammar             = &Error{Code: CodeGrammar, Message: "grammar error"}
	ErrUnterminatedInput   = &Error{Code: CodeUnterminatedInput, Message: "unterminated input"}
	ErrUnresolvedReference = &Error{Code: CodeUnresolvedReference, Message: "unresolved reference"}
	ErrUnstartedTag        = &Error{Code: CodeUnstartedTag, Message: "unstarted tag"}
	ErrMismatchedTag       = &Error{Code: CodeMismatchedTag, Message: "mismatched tag"}
	ErrUnclosedTag         = &Error{Code: CodeUnclosedTag, Message: "unclosed tag"}
	ErrDuplicatedResource  = &Error{Code: CodeDuplicatedResource, Message: "duplicated resource"}
	ErrConfigLoad          = &Error{Code: CodeConfigLoad, Message: "config load failed"}
	ErrConfigParse         = &Error{Code: CodeConfigParse, Message: "config parse failed"}
)

// NewError creates an Error at pos with a formatted message.
func NewError(code ErrorCode, pos Pos, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// WrapError wraps err with a code. Returns nil if err is nil.
func WrapError(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// CodeOf extracts the ErrorCode from err, or "" when err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
