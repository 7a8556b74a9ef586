package errors

import (
	"errors"
	"fmt"
)

// InsufficientDataError represents an error when there is not enough data
// for a calculation (e.g., indicator look-back windows exceeding the
// available history). Callers typically recover by widening the date range
// or excluding the strategy from a comparison.
type InsufficientDataError struct {
	Required int    // Minimum data points required
	Actual   int    // Actual data points available
	Symbol   string // Optional: symbol context
	Message  string // Human-readable message
}

// NewInsufficientDataError creates a new InsufficientDataError.
func NewInsufficientDataError(required, actual int, symbol, message string) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  message,
	}
}

// NewInsufficientDataErrorf creates a new InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return e.Message
}

// IsInsufficientDataError checks if an error is an InsufficientDataError.
// It uses errors.As to check the error chain.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}

// InvalidParamsError represents strategy parameters that violate positivity
// or ordering invariants. It fails fast before any computation runs.
type InvalidParamsError struct {
	StrategyName string
	Message      string
	Cause        error
}

// NewInvalidParamsError creates a new InvalidParamsError.
func NewInvalidParamsError(strategyName, message string, cause error) *InvalidParamsError {
	return &InvalidParamsError{
		StrategyName: strategyName,
		Message:      message,
		Cause:        cause,
	}
}

// Error implements the error interface.
func (e *InvalidParamsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying validation error.
func (e *InvalidParamsError) Unwrap() error {
	return e.Cause
}

// IsInvalidParamsError checks if an error is an InvalidParamsError.
func IsInvalidParamsError(err error) bool {
	var paramsErr *InvalidParamsError

	return errors.As(err, &paramsErr)
}

// EmptyEquityCurveError indicates a degenerate simulation output, usually a
// caller bug such as an empty price series.
type EmptyEquityCurveError struct {
	Points  int // Number of equity points produced
	Message string
}

// NewEmptyEquityCurveError creates a new EmptyEquityCurveError.
func NewEmptyEquityCurveError(points int, message string) *EmptyEquityCurveError {
	return &EmptyEquityCurveError{
		Points:  points,
		Message: message,
	}
}

// Error implements the error interface.
func (e *EmptyEquityCurveError) Error() string {
	return e.Message
}

// IsEmptyEquityCurveError checks if an error is an EmptyEquityCurveError.
func IsEmptyEquityCurveError(err error) bool {
	var emptyErr *EmptyEquityCurveError

	return errors.As(err, &emptyErr)
}
