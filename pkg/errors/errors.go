package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Resolution errors
	ErrUnknownProfile ErrorCode = "UNKNOWN_PROFILE"
	ErrCycle          ErrorCode = "CYCLE"
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"

	// I/O errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrWrite     ErrorCode = "WRITE"
	ErrDirCreate ErrorCode = "DIR_CREATE"
	ErrFileWrite ErrorCode = "FILE_WRITE"

	// Update errors
	ErrUpdateCheck    ErrorCode = "UPDATE_CHECK"
	ErrUpdateDownload ErrorCode = "UPDATE_DOWNLOAD"
	ErrUpdateVerify   ErrorCode = "UPDATE_VERIFY"
	ErrUpdateInstall  ErrorCode = "UPDATE_INSTALL"
)

// PrompterError represents a structured error with code and details
type PrompterError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PrompterError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

// Unwrap implements the errors.Unwrap interface
func (e *PrompterError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PrompterError) Is(target error) bool {
	var targetErr *PrompterError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PrompterError with the given code and message
func New(code ErrorCode, message string) *PrompterError {
	return &PrompterError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PrompterError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PrompterError {
	return &PrompterError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PrompterError
func Wrap(err error, code ErrorCode, message string) *PrompterError {
	if err == nil {
		return nil
	}
	return &PrompterError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PrompterError {
	if err == nil {
		return nil
	}
	return &PrompterError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PrompterError) WithDetail(key string, value interface{}) *PrompterError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var perr *PrompterError
	if errors.As(err, &perr) {
		return perr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PrompterError
func GetErrorCode(err error) ErrorCode {
	var perr *PrompterError
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PrompterError
func GetErrorDetails(err error) map[string]interface{} {
	var perr *PrompterError
	if errors.As(err, &perr) {
		return perr.Details
	}
	return nil
}
