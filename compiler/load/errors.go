package load

import (
	"errors"
	"strings"
)

// Sentinel errors for the definition-time failure conditions. Every loader
// failure wraps exactly one of them, so callers can match the condition with
// errors.Is while the wrapping RecordError carries the diagnostic context.
var (
	// ErrNoFields is returned when a record declares zero selectable fields.
	ErrNoFields = errors.New("selectable: record declares no selectable fields")

	// ErrInvalidFieldName is returned when a field name or column override
	// cannot map to a legal column identifier.
	ErrInvalidFieldName = errors.New("selectable: field name cannot map to a column identifier")

	// ErrMissingTable is returned when the record directive lacks a table
	// identifier.
	ErrMissingTable = errors.New("selectable: missing table identifier")

	// ErrDuplicateTable is returned when the table identifier is given more
	// than once for a single record.
	ErrDuplicateTable = errors.New("selectable: duplicate table identifier")
)

// RecordError describes a definition-time failure for one record type.
// It names the record, the offending field (when applicable) and the source
// position of the declaration, so the diagnostic points the developer at
// the exact line to fix.
type RecordError struct {
	// Record is the record type name.
	Record string

	// Field is the offending field name, if the failure is field-scoped.
	Field string

	// Pos is the source position of the declaration ("file.go:12").
	Pos string

	// Message describes what is wrong.
	Message string

	// Cause is the matching sentinel (ErrNoFields, ErrMissingTable, ...).
	Cause error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	var sb strings.Builder
	sb.WriteString("selectable: record ")
	sb.WriteString(e.Record)
	if e.Field != "" {
		sb.WriteString(" field ")
		sb.WriteString(e.Field)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Pos != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Pos)
		sb.WriteString(")")
	}
	return sb.String()
}

// Unwrap returns the sentinel condition, making the error matchable with
// errors.Is(err, load.ErrMissingTable) and friends.
func (e *RecordError) Unwrap() error {
	return e.Cause
}

// NewRecordError creates a RecordError for the given record and field.
func NewRecordError(record, fieldName, pos, message string, cause error) *RecordError {
	return &RecordError{
		Record:  record,
		Field:   fieldName,
		Pos:     pos,
		Message: message,
		Cause:   cause,
	}
}

// IsRecordError returns true if the error is a RecordError.
func IsRecordError(err error) bool {
	if err == nil {
		return false
	}
	var e *RecordError
	return errors.As(err, &e)
}

// IsNoFields returns true if the error reports a record with zero
// selectable fields.
func IsNoFields(err error) bool {
	return errors.Is(err, ErrNoFields)
}

// IsInvalidFieldName returns true if the error reports a field that cannot
// map to a column identifier.
func IsInvalidFieldName(err error) bool {
	return errors.Is(err, ErrInvalidFieldName)
}

// IsMissingTable returns true if the error reports a record without a table
// identifier.
func IsMissingTable(err error) bool {
	return errors.Is(err, ErrMissingTable)
}

// IsDuplicateTable returns true if the error reports a table identifier
// declared more than once.
func IsDuplicateTable(err error) bool {
	return errors.Is(err, ErrDuplicateTable)
}
