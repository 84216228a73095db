// Package models defines data structures for spreadsheet conversion.
package models

import (
	"encoding/json"
	"time"
)

// Kind identifies the type of content a cell carries.
type Kind int

const (
	// KindNull is an empty cell.
	KindNull Kind = iota
	// KindText is a plain string cell.
	KindText
	// KindNumber is a numeric cell (integers and decimals alike).
	KindNumber
	// KindBool is a boolean cell.
	KindBool
	// KindDate is a date or datetime cell.
	KindDate
)

// Value is a closed variant over spreadsheet cell content.
// Exactly one of the payload fields is meaningful, selected by Kind.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
	Bool   bool
	Date   time.Time
}

// Null returns the empty-cell value.
func Null() Value {
	return Value{Kind: KindNull}
}

// TextValue returns a string value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// NumberValue returns a numeric value.
func NumberValue(n float64) Value {
	return Value{Kind: KindNumber, Number: n}
}

// BoolValue returns a boolean value.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// DateValue returns a date value.
func DateValue(t time.Time) Value {
	return Value{Kind: KindDate, Date: t}
}

// IsNull reports whether the value is an empty cell.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// MarshalJSON serializes the value as its JSON-native equivalent:
// null, string, number, boolean, or an ISO-8601 date string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindText:
		return json.Marshal(v.Text)
	case KindNumber:
		return json.Marshal(v.Number)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindDate:
		if v.Date.Hour() == 0 && v.Date.Minute() == 0 && v.Date.Second() == 0 {
			return json.Marshal(v.Date.Format(time.DateOnly))
		}
		return json.Marshal(v.Date.Format(time.RFC3339))
	default:
		return []byte("null"), nil
	}
}
