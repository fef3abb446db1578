package errors

import (
	stderrors "errors"
	"fmt"

	"legumedash/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeDataUnavailable = "DATA_UNAVAILABLE"
	CodeUnknownCategory = "UNKNOWN_CATEGORY"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// DataUnavailable reports that the dataset could not be loaded. The cause is
// always joined with core.ErrDataUnavailable so callers can use errors.Is.
func DataUnavailable(message string, cause error) *AppError {
	if cause == nil {
		cause = core.ErrDataUnavailable
	} else if !stderrors.Is(cause, core.ErrDataUnavailable) {
		cause = fmt.Errorf("%w: %w", core.ErrDataUnavailable, cause)
	}
	return &AppError{
		Code:    CodeDataUnavailable,
		Message: message,
		Cause:   cause,
	}
}

// UnknownCategory reports a selection that is not in the category catalog.
func UnknownCategory(category string) *AppError {
	return &AppError{
		Code:    CodeUnknownCategory,
		Message: fmt.Sprintf("category %q", category),
		Cause:   core.ErrUnknownCategory,
	}
}

// InvalidInput reports a malformed request parameter
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
