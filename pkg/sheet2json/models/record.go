package models

import (
	"bytes"
	"encoding/json"
)

// Field is one named value within a Record.
type Field struct {
	Name  string
	Value Value
}

// Record represents one data row as an ordered sequence of fields.
// Field order follows the header row, so serialization is deterministic.
type Record []Field

// Get returns the value for the named field and whether it exists.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// MarshalJSON serializes the record as a JSON object with fields
// in header order. A plain map would randomize key order and break
// byte-for-byte idempotence of the output document.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
