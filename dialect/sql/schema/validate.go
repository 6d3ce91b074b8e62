package schema

import (
	"fmt"
	"strings"
)

// ValidationError is one finding of a schema validation pass.
type ValidationError struct {
	Table   string
	Column  string
	Message string
	// Breaking indicates the change breaks previously resolved selections.
	Breaking bool
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the findings of a validation pass.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors reports whether any errors were found.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether any warnings were found.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// HasBreakingChanges reports whether any finding is breaking.
func (r *ValidationResult) HasBreakingChanges() bool {
	for _, e := range r.Errors {
		if e.Breaking {
			return true
		}
	}
	for _, w := range r.Warnings {
		if w.Breaking {
			return true
		}
	}
	return false
}

// String returns a human-readable summary of the result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			if e.Breaking {
				sb.WriteString(" [BREAKING]")
			}
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			if w.Breaking {
				sb.WriteString(" [BREAKING]")
			}
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

// ValidateDrift compares a previously captured schema (e.g. from a
// snapshot) with the current one and reports changes that affect
// resolved selections: dropped tables and columns break them outright,
// type and nullability changes may break row scanning.
func ValidateDrift(previous, current []*Table) *ValidationResult {
	result := &ValidationResult{}
	for _, prev := range previous {
		cur, ok := lookupTable(current, prev.Name)
		if !ok {
			result.Errors = append(result.Errors, &ValidationError{
				Table:    prev.Name,
				Message:  "table was dropped",
				Breaking: true,
			})
			continue
		}
		validateTableDrift(prev, cur, result)
	}
	return result
}

func validateTableDrift(prev, cur *Table, result *ValidationResult) {
	for _, pc := range prev.Columns {
		cc, ok := cur.Column(pc.Name)
		if !ok {
			result.Errors = append(result.Errors, &ValidationError{
				Table:    prev.Name,
				Column:   pc.Name,
				Message:  "column was dropped",
				Breaking: true,
			})
			continue
		}
		if pc.Type != cc.Type {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:   prev.Name,
				Column:  pc.Name,
				Message: fmt.Sprintf("column type changed from %q to %q", pc.Type, cc.Type),
			})
		}
		// A column turning nullable starts producing NULLs the scanner
		// of a non-optional field cannot hold.
		if !pc.Nullable && cc.Nullable {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:    prev.Name,
				Column:   pc.Name,
				Message:  "column changed from NOT NULL to NULL",
				Breaking: true,
			})
		}
	}
}

// ValidateTable checks a single inspected table for inconsistencies.
func ValidateTable(t *Table) *ValidationResult {
	result := &ValidationResult{}
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if seen[c.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: "duplicate column name",
			})
		}
		seen[c.Name] = true
	}
	return result
}

// ValidateSchema checks all inspected tables for inconsistencies.
func ValidateSchema(tables []*Table) *ValidationResult {
	result := &ValidationResult{}
	seen := make(map[string]bool, len(tables))
	for _, t := range tables {
		if seen[t.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Message: "duplicate table name",
			})
		}
		seen[t.Name] = true

		tr := ValidateTable(t)
		result.Errors = append(result.Errors, tr.Errors...)
		result.Warnings = append(result.Warnings, tr.Warnings...)
	}
	return result
}
