// Package table reads input rows from and writes results to CSV files.
package table

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is returned when the input header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// ErrMalformedRow marks a data row that could not be parsed. The row has been
// consumed, so reading can continue with the next one.
var ErrMalformedRow = errors.New("malformed row")

// MissingInputError is returned when the input table does not exist.
type MissingInputError struct {
	Path  string
	Cause error
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input table not found: %s", e.Path)
}

func (e *MissingInputError) Unwrap() error {
	return e.Cause
}

// Error represents a failure reading or writing a table
type Error struct {
	Path    string
	Line    int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	where := e.Path
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Cause != nil {
		return fmt.Sprintf("table error at %s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("table error at %s: %s", where, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
