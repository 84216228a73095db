package parser

import (
	"testing"
	"time"

	"github.com/ArtUshak/sheet2json/pkg/sheet2json/models"
)

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Value
	}{
		{"", models.Null()},
		{"123", models.NumberValue(123)},
		{"-100", models.NumberValue(-100)},
		{"12.50", models.NumberValue(12.5)},
		{"TRUE", models.BoolValue(true)},
		{"FALSE", models.BoolValue(false)},
		{"hello", models.TextValue("hello")},
		{"true", models.TextValue("true")},
		{"2020-03-15", models.DateValue(time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC))},
	}

	for _, tt := range tests {
		result := CoerceValue(tt.input)
		if result != tt.expected {
			t.Errorf("CoerceValue(%q) = %+v, expected %+v", tt.input, result, tt.expected)
		}
	}
}

func TestStringCell(t *testing.T) {
	row := []models.Value{
		models.TextValue("Bread"),
		models.NumberValue(12.5),
		models.Null(),
	}

	if got := stringCell(row, 0); got != "Bread" {
		t.Errorf("stringCell(0) = %q", got)
	}
	if got := stringCell(row, 1); got != "12.5" {
		t.Errorf("stringCell(1) = %q", got)
	}
	if got := stringCell(row, 2); got != "" {
		t.Errorf("stringCell(2) = %q", got)
	}
	if got := stringCell(row, 99); got != "" {
		t.Errorf("stringCell(99) = %q", got)
	}
}

func TestFloatCell(t *testing.T) {
	row := []models.Value{
		models.NumberValue(12.5),
		models.TextValue("2.5"),
		models.TextValue("abc"),
		models.Null(),
	}

	if v, err := floatCell(row, 0); err != nil || v != 12.5 {
		t.Errorf("floatCell(0) = %v, %v", v, err)
	}
	if v, err := floatCell(row, 1); err != nil || v != 2.5 {
		t.Errorf("floatCell(1) = %v, %v", v, err)
	}
	if _, err := floatCell(row, 2); err == nil {
		t.Error("floatCell(2) should fail on non-numeric text")
	}
	if _, err := floatCell(row, 3); err == nil {
		t.Error("floatCell(3) should fail on null")
	}
}
