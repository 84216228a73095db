package parser

import (
	"fmt"

	"github.com/ArtUshak/sheet2json/pkg/sheet2json/models"
)

// Table is one worksheet interpreted as a header row plus data rows.
type Table struct {
	// Headers are the field names from row 1, deduplicated.
	Headers []string
	// Rows holds the data rows, each padded to len(Headers).
	Rows [][]models.Value
	// FirstDataRow is the 1-based worksheet row number of Rows[0].
	FirstDataRow int
}

// NewTable builds a Table from raw string rows. Row 1 is the header;
// a fully blank row terminates the table. Rows wider than the header
// are malformed; shorter rows are padded with nulls.
func NewTable(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyWorksheet
	}

	headers := headerNames(rows[0])

	table := &Table{
		Headers:      headers,
		FirstDataRow: 2,
	}
	for idx, raw := range rows[1:] {
		if isBlankRow(raw) {
			break
		}
		if len(raw) > len(headers) {
			return nil, NewRowError(idx+2, fmt.Errorf("%w: %d cells, %d headers", ErrMalformedRow, len(raw), len(headers)))
		}
		row := make([]models.Value, len(headers))
		for col := range headers {
			if col < len(raw) {
				row[col] = CoerceValue(raw[col])
			} else {
				row[col] = models.Null()
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, ErrEmptyWorksheet
	}
	return table, nil
}

// NewRawTable builds a Table whose data rows keep their original widths:
// no header-width check and no null padding. Receipt rows address fixed
// column positions, so rows wider than the header row are legitimate
// (extra columns are simply never read) and width policing is left to
// the consumer.
func NewRawTable(rows [][]string) (*Table, error) {
	if len(rows) == 0 || len(rows) == 1 {
		return nil, ErrEmptyWorksheet
	}

	table := &Table{
		Headers:      headerNames(rows[0]),
		FirstDataRow: 2,
	}
	for _, raw := range rows[1:] {
		row := make([]models.Value, len(raw))
		for col, cell := range raw {
			row[col] = CoerceValue(cell)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// Records maps each data row to an ordered Record keyed by header name.
func (t *Table) Records() []models.Record {
	records := make([]models.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(models.Record, len(t.Headers))
		for col, name := range t.Headers {
			record[col] = models.Field{Name: name, Value: row[col]}
		}
		records = append(records, record)
	}
	return records
}

// headerNames derives field names from the header row. Empty header
// cells get positional names, duplicates get numeric suffixes so no
// column silently shadows another.
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	count := make(map[string]int, len(raw))
	taken := make(map[string]bool, len(raw))
	for i, cell := range raw {
		name := cell
		if name == "" {
			name = fmt.Sprintf("col%d", i+1)
		}
		base := name
		for taken[name] {
			count[base]++
			name = fmt.Sprintf("%s_%d", base, count[base]+1)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
