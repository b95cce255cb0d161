package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ParseError indicates the block source is not valid Python
	ParseError ErrorCode = "PARSE_ERROR"
	// FileAccess indicates the target file could not be read or written
	FileAccess ErrorCode = "FILE_ACCESS"
	// Usage indicates the command line was malformed
	Usage ErrorCode = "USAGE"
	// InvalidConfig indicates the configuration file could not be loaded
	InvalidConfig ErrorCode = "INVALID_CONFIG"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// BlockError represents a blockmeta error with code, message and the file it concerns
type BlockError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Path    string      `json:"path,omitempty"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// NewBlockError creates a new BlockError
func NewBlockError(code ErrorCode, message string, cause error) *BlockError {
	return &BlockError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *BlockError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Path != "" {
		msg = fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *BlockError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a BlockError with the same code.
func (e *BlockError) Is(target error) bool {
	t, ok := target.(*BlockError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithPath sets the file the error concerns
func (e *BlockError) WithPath(path string) *BlockError {
	e.Path = path
	return e
}

// WithDetails adds details to the error
func (e *BlockError) WithDetails(details interface{}) *BlockError {
	e.Details = details
	return e
}

// HasCode reports whether err or anything it wraps is a BlockError with code.
func HasCode(err error, code ErrorCode) bool {
	var be *BlockError
	if !errors.As(err, &be) {
		return false
	}
	return be.Code == code
}
