package selectable

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by all generated selection packages.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("selectable: record not found")

	// ErrNotSingular is returned when a query that expects exactly one
	// result returns more than one.
	ErrNotSingular = errors.New("selectable: record not singular")
)

// NotFoundError is returned by generated First/Only when no row matched.
type NotFoundError struct {
	label string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("selectable: %s not found", e.label)
}

// Is lets errors.Is(err, ErrNotFound) match a NotFoundError.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the record label.
func (e *NotFoundError) Label() string {
	return e.label
}

// NewNotFoundError returns a new NotFoundError for the given record label.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// NotSingularError is returned by generated Only when a query matched
// more than one row.
type NotSingularError struct {
	label string
	count int // number of matched rows, -1 if unknown
}

// Error returns the error string.
func (e *NotSingularError) Error() string {
	if e.count >= 0 {
		return fmt.Sprintf("selectable: %s not singular (got %d results, expected 1)", e.label, e.count)
	}
	return fmt.Sprintf("selectable: %s not singular", e.label)
}

// Is lets errors.Is(err, ErrNotSingular) match a NotSingularError.
func (e *NotSingularError) Is(err error) bool {
	return err == ErrNotSingular
}

// Label returns the record label.
func (e *NotSingularError) Label() string {
	return e.label
}

// Count returns the number of matched rows, or -1 if unknown.
func (e *NotSingularError) Count() int {
	return e.count
}

// NewNotSingularError returns a new NotSingularError for the given
// record label.
func NewNotSingularError(label string) *NotSingularError {
	return &NotSingularError{label: label, count: -1}
}

// NewNotSingularErrorWithCount returns a new NotSingularError with the
// matched row count.
func NewNotSingularErrorWithCount(label string, count int) *NotSingularError {
	return &NotSingularError{label: label, count: count}
}

// IsNotSingular returns true if the error is a NotSingularError.
func IsNotSingular(err error) bool {
	if err == nil {
		return false
	}
	var e *NotSingularError
	return errors.As(err, &e) || errors.Is(err, ErrNotSingular)
}

// ValidationError reports a value that failed a column validation, such
// as ordering by a column the record does not declare.
type ValidationError struct {
	Name string // column or record name
	Err  error  // underlying validation error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("selectable: validation failed for %q: %s", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a new ValidationError for the given name.
func NewValidationError(name string, err error) *ValidationError {
	return &ValidationError{Name: name, Err: err}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

// QueryError wraps a driver error with the record and operation that
// produced it.
type QueryError struct {
	Record string // record label being queried
	Op     string // operation ("All", "Only", "Count", ...)
	Err    error  // underlying error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("selectable: querying %s (%s): %v", e.Record, e.Op, e.Err)
	}
	return fmt.Sprintf("selectable: querying %s: %v", e.Record, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError returns a new QueryError.
func NewQueryError(record, op string, err error) *QueryError {
	return &QueryError{Record: record, Op: op, Err: err}
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// AggregateError collects multiple errors from one operation, such as
// generating several record packages in parallel.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "selectable: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("selectable: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// NewAggregateError returns a combined error if any of the given errors
// is non-nil, and nil otherwise. A single error is returned unwrapped.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
