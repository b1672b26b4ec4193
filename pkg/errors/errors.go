package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure category independently of its message.
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrDuplicate    ErrorCode = "DUPLICATE"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrConfigMissing ErrorCode = "CONFIG_MISSING"
	ErrReservedKey   ErrorCode = "RESERVED_KEY"

	// Pipeline errors
	ErrUnitState ErrorCode = "UNIT_STATE"
	ErrUnitFault ErrorCode = "UNIT_FAULT"

	// Copy errors
	ErrCopyGlob ErrorCode = "COPY_GLOB"
	ErrTemplate ErrorCode = "TEMPLATE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrChmod      ErrorCode = "CHMOD"

	// Clone errors
	ErrCloneExists ErrorCode = "CLONE_EXISTS"
	ErrCloneFailed ErrorCode = "CLONE_FAILED"

	// Download errors
	ErrDownloadTransport ErrorCode = "DOWNLOAD_TRANSPORT"
	ErrDownloadStatus    ErrorCode = "DOWNLOAD_STATUS"
	ErrDownloadWrite     ErrorCode = "DOWNLOAD_WRITE"
)

// PolkadotError represents a structured error with code and details
type PolkadotError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PolkadotError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PolkadotError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a PolkadotError with the same code.
func (e *PolkadotError) Is(target error) bool {
	var targetErr *PolkadotError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PolkadotError with the given code and message
func New(code ErrorCode, message string) *PolkadotError {
	return &PolkadotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PolkadotError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PolkadotError {
	return &PolkadotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &PolkadotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &PolkadotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PolkadotError) WithDetail(key string, value interface{}) *PolkadotError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var pErr *PolkadotError
		if !errors.As(err, &pErr) {
			return false
		}
		if pErr.Code == code {
			return true
		}
		err = pErr.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if err is not a PolkadotError
func GetErrorCode(err error) ErrorCode {
	var pErr *PolkadotError
	if errors.As(err, &pErr) {
		return pErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PolkadotError
func GetErrorDetails(err error) map[string]interface{} {
	var pErr *PolkadotError
	if errors.As(err, &pErr) {
		return pErr.Details
	}
	return nil
}
