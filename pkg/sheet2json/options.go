// Package sheet2json converts spreadsheet workbooks of receipt data to JSON.
package sheet2json

import (
	"path/filepath"
	"strings"
)

// Mode selects how worksheet rows map to output records.
type Mode string

const (
	// ModeTable emits one JSON object per data row, keyed by header name.
	ModeTable Mode = "table"
	// ModeReceipts groups rows into fiscal receipts by bill ID.
	ModeReceipts Mode = "receipts"
)

// Format identifies the input file format.
type Format string

const (
	// FormatAuto infers the format from the file extension.
	FormatAuto Format = ""
	// FormatXLSX is an Office Open XML workbook.
	FormatXLSX Format = "xlsx"
	// FormatCSV is a comma-separated values file.
	FormatCSV Format = "csv"
)

// Options configures a conversion.
type Options struct {
	// SheetName selects a worksheet by name; empty means the first sheet.
	// Ignored for CSV input.
	SheetName string
	// Format overrides input format inference from the file extension.
	Format Format
	// Mode selects table or receipts conversion.
	Mode Mode
	// Pretty enables indented JSON output.
	Pretty bool
	// CheckMX enables MX-record verification of customer e-mail domains
	// in receipts mode. Off by default: it makes conversion depend on
	// DNS availability.
	CheckMX bool
}

// DefaultOptions returns the standard conversion options.
func DefaultOptions() Options {
	return Options{Mode: ModeTable, Format: FormatAuto}
}

// DetectFormat infers an input format from the path's extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	default:
		return FormatXLSX
	}
}

func (o Options) format(path string) Format {
	if o.Format != FormatAuto {
		return o.Format
	}
	return DetectFormat(path)
}
