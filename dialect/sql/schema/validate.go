package schema

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ValidationError represents a table-level problem found before handing
// the tables to a storage planner.
type ValidationError struct {
	Table   string
	Column  string
	Message string
	// Breaking marks problems that would make the DDL fail.
	Breaking bool
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of schema validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// HasBreakingChanges returns true if there are any breaking changes.
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

// String returns a human-readable summary of the validation result.
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

// ValidateTable validates a single table definition.
func ValidateTable(t *Table) *ValidationResult {
	var (
		result = &ValidationResult{}
		fold   = cases.Fold()
	)
	if len(t.PrimaryKey) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Table:    t.Name,
			Message:  "table has no primary key",
			Breaking: true,
		})
	}

	// Column names are compared case-insensitively, as most databases do.
	colNames := make(map[string]string)
	for _, c := range t.Columns {
		key := fold.String(c.Name)
		if prev, ok := colNames[key]; ok {
			result.Errors = append(result.Errors, &ValidationError{
				Table:    t.Name,
				Column:   c.Name,
				Message:  fmt.Sprintf("duplicate column name (collides with %q)", prev),
				Breaking: true,
			})
			continue
		}
		colNames[key] = c.Name
	}
	has := func(name string) bool {
		_, ok := colNames[fold.String(name)]
		return ok
	}
	for _, c := range t.PrimaryKey {
		if c.Nullable {
			result.Errors = append(result.Errors, &ValidationError{
				Table:    t.Name,
				Column:   c.Name,
				Message:  "primary key column is nullable",
				Breaking: true,
			})
		}
	}

	idxNames := make(map[string]bool)
	for _, idx := range t.Indexes {
		if idxNames[idx.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:    t.Name,
				Message:  fmt.Sprintf("duplicate index name: %s", idx.Name),
				Breaking: true,
			})
		}
		idxNames[idx.Name] = true
		for _, col := range idx.Columns {
			if col != nil && !has(col.Name) {
				result.Errors = append(result.Errors, &ValidationError{
					Table:    t.Name,
					Message:  fmt.Sprintf("index %q references non-existent column %q", idx.Name, col.Name),
					Breaking: true,
				})
			}
		}
	}

	for _, fk := range t.ForeignKeys {
		for _, col := range fk.Columns {
			if !has(col.Name) {
				result.Errors = append(result.Errors, &ValidationError{
					Table:    t.Name,
					Message:  fmt.Sprintf("foreign key references non-existent column %q", col.Name),
					Breaking: true,
				})
			}
		}
		if len(fk.Columns) != len(fk.RefColumns) {
			result.Errors = append(result.Errors, &ValidationError{
				Table:    t.Name,
				Message:  fmt.Sprintf("foreign key %q has %d column(s) for %d referenced column(s)", fk.Symbol, len(fk.Columns), len(fk.RefColumns)),
				Breaking: true,
			})
			continue
		}
		nullable := len(fk.Columns) > 0 && fk.Columns[0].Nullable
		for i, col := range fk.Columns {
			ref := fk.RefColumns[i]
			if !col.Type.Compatible(ref.Type) {
				result.Errors = append(result.Errors, &ValidationError{
					Table:    t.Name,
					Column:   col.Name,
					Message:  fmt.Sprintf("foreign key column is %s, referenced column %s is %s", col.Type, ref.Name, ref.Type),
					Breaking: true,
				})
			}
			if col.Nullable != nullable {
				result.Warnings = append(result.Warnings, &ValidationError{
					Table:   t.Name,
					Column:  col.Name,
					Message: fmt.Sprintf("foreign key %q mixes nullable and non-null columns", fk.Symbol),
				})
			}
		}
	}

	return result
}

// ValidateSchema validates all tables in a schema.
func ValidateSchema(tables []*Table) *ValidationResult {
	result := &ValidationResult{}

	fold := cases.Fold()
	tableNames := make(map[string]*Table)
	folded := make(map[string]*Table)
	for _, t := range tables {
		if prev, ok := folded[fold.String(t.Name)]; ok {
			result.Errors = append(result.Errors, &ValidationError{
				Table:    t.Name,
				Message:  fmt.Sprintf("duplicate table name (collides with %q)", prev.Name),
				Breaking: true,
			})
		} else {
			folded[fold.String(t.Name)] = t
		}
		tableNames[t.Name] = t

		tableResult := ValidateTable(t)
		result.Errors = append(result.Errors, tableResult.Errors...)
		result.Warnings = append(result.Warnings, tableResult.Warnings...)
	}

	// Foreign keys must reference the primary key of a known table.
	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			ref, ok := tableNames[fk.RefTable.Name]
			if !ok {
				result.Errors = append(result.Errors, &ValidationError{
					Table:    t.Name,
					Message:  fmt.Sprintf("foreign key references non-existent table %q", fk.RefTable.Name),
					Breaking: true,
				})
				continue
			}
			if !samePK(ref.PrimaryKey, fk.RefColumns) {
				result.Errors = append(result.Errors, &ValidationError{
					Table:    t.Name,
					Message:  fmt.Sprintf("foreign key %q does not reference the primary key of %q", fk.Symbol, ref.Name),
					Breaking: true,
				})
			}
		}
	}

	return result
}

func samePK(pk, cols []*Column) bool {
	if len(pk) != len(cols) {
		return false
	}
	for i := range pk {
		if pk[i].Name != cols[i].Name {
			return false
		}
	}
	return true
}
