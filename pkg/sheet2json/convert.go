package sheet2json

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ArtUshak/sheet2json/pkg/sheet2json/models"
	"github.com/ArtUshak/sheet2json/pkg/sheet2json/output"
	"github.com/ArtUshak/sheet2json/pkg/sheet2json/parser"
	"github.com/xuri/excelize/v2"
)

// ConvertTable reads the workbook at path and maps each data row to one
// record keyed by header name, preserving worksheet row order.
func ConvertTable(path string, opts Options) ([]models.Record, error) {
	rows, err := readRows(path, opts)
	if err != nil {
		return nil, err
	}
	table, err := parser.NewTable(rows)
	if err != nil {
		return nil, err
	}
	return table.Records(), nil
}

// ConvertReceipts reads the workbook at path and groups its rows into
// fiscal receipts by bill ID. Receipt rows address fixed column
// positions, so they are read without table mode's header-width check.
func ConvertReceipts(ctx context.Context, path string, opts Options) (*models.ReceiptDocument, error) {
	rows, err := readRows(path, opts)
	if err != nil {
		return nil, err
	}
	table, err := parser.NewRawTable(rows)
	if err != nil {
		return nil, err
	}
	builder := parser.NewReceiptBuilder()
	builder.CheckMX = opts.CheckMX
	return builder.Build(ctx, table)
}

// ConvertFile runs the full pipeline: read the input workbook, convert
// per opts.Mode, and write the JSON document to outputPath atomically.
// On any failure the output file is left untouched.
func ConvertFile(ctx context.Context, inputPath, outputPath string, opts Options) error {
	var doc interface{}
	var err error

	switch opts.Mode {
	case ModeReceipts:
		doc, err = ConvertReceipts(ctx, inputPath, opts)
	case ModeTable, "":
		doc, err = ConvertTable(inputPath, opts)
	default:
		return fmt.Errorf("invalid mode %q", opts.Mode)
	}
	if err != nil {
		return err
	}

	data, err := output.ToJSON(doc, opts.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return output.WriteFile(outputPath, data)
}

// readRows opens the input file in the configured format and reads one
// worksheet as raw string rows. A path that does not resolve to a
// readable file is ErrInputNotFound; a readable file that is not a
// parseable workbook is ErrUnsupportedFormat.
func readRows(path string, opts Options) ([][]string, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}

	switch opts.format(path) {
	case FormatCSV:
		defer fh.Close()
		return readCSV(fh)
	default:
		fh.Close()
		return readWorkbook(path, opts.SheetName)
	}
}

func readWorkbook(path, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyWorksheet
		}
		sheetName = sheets[0]
	} else {
		idx, err := f.GetSheetIndex(sheetName)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("sheet %q not found", sheetName)
		}
	}

	return f.GetRows(sheetName)
}

func readCSV(f *os.File) ([][]string, error) {
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return rows, nil
}
