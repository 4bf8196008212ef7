// Package errors defines the stable error codes used across the discovery
// pipeline. Only the fatal root-path case crosses the engine boundary as an
// error; every per-file condition is absorbed into the execution log of the
// final inventory.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// PathNotFound indicates the scan root is missing or not a directory.
	// This is the only fatal code: it aborts before any scanning.
	PathNotFound ErrorCode = "PATH_NOT_FOUND"
	// FileReadError indicates a single file could not be read.
	// Recoverable: the file is skipped and the scan continues.
	FileReadError ErrorCode = "FILE_READ_ERROR"
	// ParseFailure indicates a business-component file failed to parse as
	// Java. Recoverable: the file contributes zero structural units.
	ParseFailure ErrorCode = "PARSE_FAILURE"
	// FileSkipped indicates a file exceeded the scan size limit and was
	// left unclassified. Recoverable: recorded so the skip is visible in
	// every renderer.
	FileSkipped ErrorCode = "FILE_SKIPPED"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// DiscoError represents a discovery error with a stable code and message
type DiscoError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`
	cause   error     // Underlying error (not exported to JSON)
}

// New creates a new DiscoError
func New(code ErrorCode, message string, cause error) *DiscoError {
	return &DiscoError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *DiscoError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DiscoError) Unwrap() error {
	return e.cause
}

// WithPath attaches the offending path to the error
func (e *DiscoError) WithPath(path string) *DiscoError {
	e.Path = path
	return e
}

// IsFatal reports whether the error aborts the whole scan.
func IsFatal(err error) bool {
	if de, ok := err.(*DiscoError); ok {
		return de.Code == PathNotFound
	}
	return false
}
