package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType identifies the pipeline step that failed
type ErrorType string

const (
	ErrorTypeConfigLoad      ErrorType = "config_load"
	ErrorTypeInvalidURL      ErrorType = "invalid_url"
	ErrorTypeUserNotFound    ErrorType = "user_not_found"
	ErrorTypeNetwork         ErrorType = "network"
	ErrorTypeTemplateRead    ErrorType = "template_read"
	ErrorTypeInvalidTimezone ErrorType = "invalid_timezone"
	ErrorTypeOutputWrite     ErrorType = "output_write"
)

// Exit codes returned by the CLI.
// 1 = the user has to fix something (config, URL, user name, timezone, template)
// 2 = the environment failed (network, server, output file)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
)

// Error is a terminal pipeline error with type information
type Error struct {
	Type    ErrorType
	Message string
	// Code is the HTTP status code for network errors, 0 otherwise
	Code int
	Err  error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Code != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given type
func New(errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message}
}

// Wrap creates an Error of the given type around a cause
func Wrap(errorType ErrorType, message string, cause error) *Error {
	return &Error{Type: errorType, Message: message, Err: cause}
}

// TypeOf returns the ErrorType of the first *Error in err's chain, or "" if there is none
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

// IsType reports whether err carries the given ErrorType
func IsType(err error, errorType ErrorType) bool {
	return err != nil && TypeOf(err) == errorType
}

// Step returns a short, human readable name of the pipeline step an error type belongs to
func Step(errorType ErrorType) string {
	switch errorType {
	case ErrorTypeConfigLoad:
		return "loading configuration"
	case ErrorTypeInvalidURL:
		return "parsing profile URL"
	case ErrorTypeUserNotFound:
		return "looking up user"
	case ErrorTypeNetwork:
		return "fetching posts"
	case ErrorTypeTemplateRead:
		return "reading template"
	case ErrorTypeInvalidTimezone:
		return "loading timezone"
	case ErrorTypeOutputWrite:
		return "writing output"
	default:
		return "running"
	}
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch TypeOf(err) {
	case ErrorTypeNetwork, ErrorTypeOutputWrite:
		return ExitSystemError
	default:
		return ExitUserError
	}
}
