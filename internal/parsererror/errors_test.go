package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaError(t *testing.T) {
	err := &SchemaError{MissingColumns: []string{"member_id", "amount"}}
	assert.Contains(t, err.Error(), "member_id, amount")
}

func TestEmptyInputError(t *testing.T) {
	err := &EmptyInputError{RowCount: 1}
	assert.Contains(t, err.Error(), "1 row(s)")
}

func TestParseErrorUnwrap(t *testing.T) {
	inner := errors.New("not a time value")
	err := &ParseError{Column: "time", Value: "abc", Row: 3, Err: inner}

	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "time='abc'")
	assert.Equal(t, inner, errors.Unwrap(err))
}
