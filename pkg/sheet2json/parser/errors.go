package parser

import (
	"errors"
	"fmt"
)

// ErrEmptyWorksheet indicates the worksheet has no data rows.
var ErrEmptyWorksheet = errors.New("worksheet has no data rows")

// ErrMalformedRow indicates a row whose cell count disagrees with the header.
var ErrMalformedRow = errors.New("row width disagrees with header")

// RowError carries the 1-based worksheet row number where conversion failed.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// NewRowError wraps err with the worksheet row it occurred on.
func NewRowError(row int, err error) *RowError {
	return &RowError{Row: row, Err: err}
}
