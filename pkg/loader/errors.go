package loader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound is returned when the export file does not exist.
var ErrFileNotFound = errors.New("armor export not found")

// MissingColumnsError lists every required column absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("column data missing in file: %s (regenerate the export in DIM with these columns visible)", strings.Join(e.Columns, ", "))
}

// RecordError reports a row whose values cannot be parsed.
type RecordError struct {
	Row    int
	ID     string
	Column string
	Err    error
}

func (e *RecordError) Error() string {
	id := e.ID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("row %d (item %s): bad value in column %q: %v", e.Row, id, e.Column, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
