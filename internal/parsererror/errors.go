// Package parsererror defines the typed errors raised while loading a
// point-of-sale CSV export. All of them abort the load as a whole; there is
// no partial apply.
package parsererror

import (
	"fmt"
	"strings"
)

// SchemaError reports required header columns that are absent from the input.
// The load is rejected before any row is converted.
type SchemaError struct {
	MissingColumns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s",
		strings.Join(e.MissingColumns, ", "))
}

// EmptyInputError reports an input with fewer than two rows, i.e. no header
// plus at least one data row.
type EmptyInputError struct {
	RowCount int
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("input has %d row(s), need a header and at least one data row", e.RowCount)
}

// ParseError represents a row-level failure on a field that is structurally
// required, such as a time value that cannot be normalized while deriving
// synthetic transaction keys.
type ParseError struct {
	Column string
	Value  string
	Row    int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: failed to parse %s='%s': %v",
		e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
