package rowassembly

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indicates the source contained no header line.
	ErrEmptyInput = errors.New("rowassembly: input has no header line")
	// ErrNoValues indicates a header line with no value line after it.
	ErrNoValues = errors.New("rowassembly: header has no value line")
	// ErrTooManyRows indicates more value lines than a single-row parse accepts.
	ErrTooManyRows = errors.New("rowassembly: more than one value line")
	// ErrColumnCount indicates a value line whose column count differs from the header.
	ErrColumnCount = errors.New("rowassembly: column count mismatch")
	// ErrNotNumeric indicates a value cell that is not a number.
	ErrNotNumeric = errors.New("rowassembly: value is not numeric")
	// ErrDuplicateField indicates two header names that match the same key.
	ErrDuplicateField = errors.New("rowassembly: duplicate field name")
	// ErrEmptyFieldName indicates a blank header cell.
	ErrEmptyFieldName = errors.New("rowassembly: empty field name")
)

// ParseError reports malformed tabular input. Line is 1-based; it is 0 for
// rows built from a map rather than read from text.
type ParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Field != "":
		return fmt.Sprintf("line %d: field %q: %v", e.Line, e.Field, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	case e.Field != "":
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// ProgrammingError is raised (via panic) when a slot list is inconsistent with
// the vector it describes. It is never returned as an ordinary error.
type ProgrammingError struct {
	Op  string
	Msg string
}

func (e *ProgrammingError) Error() string {
	return fmt.Sprintf("rowassembly: %s: %s", e.Op, e.Msg)
}
