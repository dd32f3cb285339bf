package analytics

import "fmt"

// EmptyCategoryError represents an analysis request for a category with no
// records. Downstream components must never receive an empty series, so this
// is a hard failure rather than a silent empty result.
type EmptyCategoryError struct {
	Category string
}

// Error returns the error message string.
func (e *EmptyCategoryError) Error() string {
	return fmt.Sprintf("no records found for category %q", e.Category)
}

// NewEmptyCategoryError creates a new EmptyCategoryError for a category.
func NewEmptyCategoryError(category string) error {
	return &EmptyCategoryError{Category: category}
}

// ModelFitError represents a forecast model failure: either the history is
// too short for a seasonal fit or the optimizer did not converge. No default
// forecast is substituted on failure.
type ModelFitError struct {
	Message string
	Err     error
}

// Error returns the error message string.
func (e *ModelFitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *ModelFitError) Unwrap() error {
	return e.Err
}

// NewModelFitError creates a new ModelFitError with a formatted message.
func NewModelFitError(err error, format string, args ...interface{}) error {
	return &ModelFitError{Message: fmt.Sprintf(format, args...), Err: err}
}

// InsufficientDataError represents a seasonal computation over a series that
// covers no calendar months.
type InsufficientDataError struct {
	Message string
}

// Error returns the error message string.
func (e *InsufficientDataError) Error() string {
	return e.Message
}

// NewInsufficientDataError creates a new InsufficientDataError.
func NewInsufficientDataError(message string) error {
	return &InsufficientDataError{Message: message}
}

// DivisionByZeroError represents a percentage-change computation whose base
// value is zero.
type DivisionByZeroError struct {
	Message string
}

// Error returns the error message string.
func (e *DivisionByZeroError) Error() string {
	return e.Message
}

// NewDivisionByZeroErrorf creates a new DivisionByZeroError with a formatted
// message.
func NewDivisionByZeroErrorf(format string, args ...interface{}) error {
	return &DivisionByZeroError{Message: fmt.Sprintf(format, args...)}
}
