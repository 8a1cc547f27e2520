package apperr

import (
	"errors"
	"fmt"

	"relifit/domain/core"
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

// Wrap wraps an error with additional context, keeping the code of any
// AppError already in the chain
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    codeFor(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an AppError sits anywhere in the chain
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode returns the code of the nearest AppError in the chain, or
// "UNKNOWN" when there is none
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInsufficientData   = "INSUFFICIENT_DATA"
	CodeDegenerateInput    = "DEGENERATE_INPUT"
	CodeOptimizationFailed = "OPTIMIZATION_FAILED"
	CodeGoodnessOfFit      = "GOODNESS_OF_FIT"
	CodeInternalError      = "INTERNAL_ERROR"
)

// codeFor maps an error chain onto an application code: a wrapped AppError
// keeps its code, domain sentinels map onto theirs
func codeFor(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case core.IsInsufficientDataError(err):
		return CodeInsufficientData
	case core.IsDegenerateInputError(err):
		return CodeDegenerateInput
	case core.IsGoodnessOfFitError(err):
		return CodeGoodnessOfFit
	case core.IsInvalidInputError(err):
		return CodeInvalidInput
	case core.IsOptimizationError(err):
		return CodeOptimizationFailed
	default:
		return CodeInternalError
	}
}

// FromDomain lifts an error into an AppError with its mapped code. An
// AppError anywhere in the chain is returned as-is.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    codeFor(err),
		Message: err.Error(),
		Cause:   err,
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
