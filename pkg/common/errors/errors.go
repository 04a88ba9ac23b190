package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the runstats library

var (
	// ErrShapeMismatch indicates that a batch shape is incompatible with the
	// accumulator's configured channel count
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrEmptyAccumulator indicates that a result was requested from an
	// accumulator that has seen no observations
	ErrEmptyAccumulator = errors.New("accumulator is empty")

	// ErrReductionMismatch indicates an attempt to merge accumulators that
	// track different reductions
	ErrReductionMismatch = errors.New("reduction mismatch")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrClosed indicates that an operation was attempted on a closed resource
	ErrClosed = errors.New("resource is closed")
)

// IsShapeError returns true if the error was caused by an incompatible
// batch or channel shape
func IsShapeError(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

// IsEmptyAccumulator returns true if the error indicates a read from an
// accumulator with zero observations
func IsEmptyAccumulator(err error) bool {
	return errors.Is(err, ErrEmptyAccumulator)
}

// ValidationError describes a configuration value that failed validation.
type ValidationError struct {
	Module string      // component reporting the error, e.g. "runstats"
	Field  string      // name of the invalid field
	Value  interface{} // the offending value
	Reason string      // why the value is invalid
	Hint   string      // optional suggestion for fixing the value
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a suggestion to the error and returns the same instance
// for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrInvalidConfiguration) to match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IsValidationError returns true if the error is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// OperationError describes a failed operation on a component, wrapping the
// underlying cause.
type OperationError struct {
	Module    string // component where the failure occurred
	Operation string // operation that failed, e.g. "Accumulate"
	Cause     error  // underlying error
	Context   string // optional additional detail
}

// NewOperationError creates an OperationError for the given module and operation.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches additional detail to the error and returns the same
// instance for chaining.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *OperationError) Unwrap() error {
	return e.Cause
}
