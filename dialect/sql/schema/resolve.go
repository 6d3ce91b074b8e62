package schema

import (
	"context"
	"errors"
	"fmt"
)

// Expectation lists the columns a record type maps onto its table.
// Column order is irrelevant for resolution; only existence is checked.
type Expectation struct {
	Record  string
	Table   string
	Columns []string
}

// MissingTableError reports a record whose table does not exist in the
// inspected schema.
type MissingTableError struct {
	Record string
	Table  string
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("schema: table %q for record %s not found", e.Table, e.Record)
}

// IsMissingTable reports whether the error is a MissingTableError.
func IsMissingTable(err error) bool {
	var e *MissingTableError
	return errors.As(err, &e)
}

// UnresolvedColumnError reports a mapped column that does not exist in
// the record's table.
type UnresolvedColumnError struct {
	Record string
	Table  string
	Column string
}

func (e *UnresolvedColumnError) Error() string {
	return fmt.Sprintf("schema: column %q for record %s not found in table %q", e.Column, e.Record, e.Table)
}

// IsUnresolvedColumn reports whether the error is an UnresolvedColumnError.
func IsUnresolvedColumn(err error) bool {
	var e *UnresolvedColumnError
	return errors.As(err, &e)
}

// Resolve checks every expectation against the inspected tables. All
// failures are reported, joined into a single error.
func Resolve(tables []*Table, expects ...*Expectation) error {
	var errs []error
	for _, ex := range expects {
		t, ok := lookupTable(tables, ex.Table)
		if !ok {
			errs = append(errs, &MissingTableError{Record: ex.Record, Table: ex.Table})
			continue
		}
		for _, col := range ex.Columns {
			if _, ok := t.Column(col); !ok {
				errs = append(errs, &UnresolvedColumnError{Record: ex.Record, Table: ex.Table, Column: col})
			}
		}
	}
	return errors.Join(errs...)
}

// Resolve inspects the connected schema and checks the expectations
// against it.
func (i *Inspector) Resolve(ctx context.Context, expects ...*Expectation) error {
	tables, err := i.Tables(ctx)
	if err != nil {
		return err
	}
	return Resolve(tables, expects...)
}
