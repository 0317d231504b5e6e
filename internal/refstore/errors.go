package refstore

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from a reference table.
// It is fatal: no resolution can start on a table with an unknown shape.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s table: missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// DuplicateKeyError reports a repeated primary key in a reference table.
// It is fatal for the same reason as SchemaError.
type DuplicateKeyError struct {
	Table  string
	Column string
	Value  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s table: duplicate %s %q", e.Table, e.Column, e.Value)
}
