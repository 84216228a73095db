// Package parser reads worksheet rows and turns them into typed values,
// generic records, and fiscal receipts.
package parser

import (
	"strconv"
	"time"

	"github.com/ArtUshak/sheet2json/pkg/sheet2json/models"
)

// dateLayouts are the cell date formats recognized during coercion.
// excelize renders date cells through the cell's number format, so the
// common Excel presentations are tried alongside ISO dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01-02-06 15:04",
	"01-02-06",
}

// CoerceValue interprets a formatted cell string as a typed Value.
// Empty cells become Null; "TRUE"/"FALSE" become booleans; integers and
// decimals become numbers; recognized date formats become dates;
// everything else stays text.
func CoerceValue(s string) models.Value {
	if s == "" {
		return models.Null()
	}
	switch s {
	case "TRUE":
		return models.BoolValue(true)
	case "FALSE":
		return models.BoolValue(false)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.NumberValue(float64(i))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.NumberValue(f)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.DateValue(t)
		}
	}
	return models.TextValue(s)
}

// stringCell returns the cell at index i rendered as a string.
// Missing and null cells render as "".
func stringCell(row []models.Value, i int) string {
	if i >= len(row) {
		return ""
	}
	v := row[i]
	switch v.Kind {
	case models.KindText:
		return v.Text
	case models.KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case models.KindBool:
		return strconv.FormatBool(v.Bool)
	case models.KindDate:
		return v.Date.Format(time.RFC3339)
	default:
		return ""
	}
}

// floatCell returns the cell at index i as a number, parsing numeric text.
func floatCell(row []models.Value, i int) (float64, error) {
	if i >= len(row) {
		return 0, strconv.ErrSyntax
	}
	v := row[i]
	switch v.Kind {
	case models.KindNumber:
		return v.Number, nil
	case models.KindText:
		return strconv.ParseFloat(v.Text, 64)
	default:
		return 0, strconv.ErrSyntax
	}
}
