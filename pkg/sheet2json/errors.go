package sheet2json

import (
	"errors"

	"github.com/ArtUshak/sheet2json/pkg/sheet2json/output"
	"github.com/ArtUshak/sheet2json/pkg/sheet2json/parser"
)

// ErrInputNotFound indicates the input file does not exist or is unreadable.
var ErrInputNotFound = errors.New("input file not found")

// ErrUnsupportedFormat indicates the input file is not a parseable workbook.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ErrEmptyWorksheet indicates the worksheet has no data rows.
var ErrEmptyWorksheet = parser.ErrEmptyWorksheet

// ErrMalformedRow indicates a row whose cell count disagrees with the header.
var ErrMalformedRow = parser.ErrMalformedRow

// ErrOutputWrite indicates the output file could not be written.
var ErrOutputWrite = output.ErrWriteFailed

// RowError carries the 1-based worksheet row number where conversion failed.
type RowError = parser.RowError
