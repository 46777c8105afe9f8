// Package errors provides structured error types for box deform sessions.
//
// This package defines error codes and types that enable:
//   - Consistent reporting of aborted session starts in the CLI and TUI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes follow the session's failure taxonomy:
//   - PRECONDITION: wrong surface, object kind or mode, or missing active object
//   - INSUFFICIENT_SELECTION: no points, or fewer than two where two are required
//   - CONFLICT: a deformer or live session already occupies the target
//   - MID_SESSION_FAULT: a collaborator handle vanished while a session was active
//   - UNSUPPORTED: the invocation is silently ignored (e.g. sculpt mode)
//
// Precondition-class errors are always raised before any cage is built, so the
// host is left exactly as it was before the invocation.
//
// # Usage
//
//	err := errors.New(errors.ErrCodePrecondition, "no active object")
//	if errors.Is(err, errors.ErrCodePrecondition) {
//	    // Report and abort
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "read scene %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Session start failures
	ErrCodePrecondition          Code = "PRECONDITION"
	ErrCodeInsufficientSelection Code = "INSUFFICIENT_SELECTION"
	ErrCodeConflict              Code = "CONFLICT"
	ErrCodeUnsupported           Code = "UNSUPPORTED"

	// Failures inside an active session
	ErrCodeMidSessionFault Code = "MID_SESSION_FAULT"

	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidKey    Code = "INVALID_KEY"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Silent reports whether err should abort without being shown to the user.
func Silent(err error) bool {
	return Is(err, ErrCodeUnsupported)
}
