package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Data errors
	ErrInsufficientData = errors.New("insufficient failure data for analysis")
	ErrDegenerateInput  = errors.New("degenerate input data")
	ErrInvalidInput     = errors.New("invalid input")

	// Estimation errors
	ErrOptimizationFailed = errors.New("optimization failed")
	ErrInfeasibleEstimate = errors.New("estimate outside plausible bounds")

	// Goodness-of-fit errors
	ErrGoodnessOfFit = errors.New("goodness-of-fit test unavailable")
)

// Error constructors with context
func NewInsufficientDataError(found, required int) error {
	return fmt.Errorf("%w: %d failures observed, %d required", ErrInsufficientData, found, required)
}

func NewDegenerateInputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrDegenerateInput, reason)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, reason)
}

func NewOptimizationError(method string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrOptimizationFailed, method, reason)
}

func NewInfeasibleEstimateError(param string, value float64) error {
	return fmt.Errorf("%w: %s=%g", ErrInfeasibleEstimate, param, value)
}

func NewGoodnessOfFitError(test string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrGoodnessOfFit, test, reason)
}

// Error checking helpers
func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsDegenerateInputError(err error) bool {
	return errors.Is(err, ErrDegenerateInput)
}

func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsOptimizationError(err error) bool {
	return errors.Is(err, ErrOptimizationFailed)
}

func IsGoodnessOfFitError(err error) bool {
	return errors.Is(err, ErrGoodnessOfFit)
}

// IsFatalFitError reports errors that abort a fit outright.
func IsFatalFitError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrDegenerateInput) ||
		errors.Is(err, ErrInvalidInput)
}

// IsRecoverableFitError reports errors the estimator recovers from by
// falling back to rank regression.
func IsRecoverableFitError(err error) bool {
	return errors.Is(err, ErrOptimizationFailed) ||
		errors.Is(err, ErrInfeasibleEstimate)
}
