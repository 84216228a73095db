package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ArtUshak/sheet2json/pkg/sheet2json/models"
)

func testReceiptBuilder() *ReceiptBuilder {
	ids := 0
	return &ReceiptBuilder{
		now: func() time.Time {
			return time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
		},
		newID: func() string {
			ids++
			return fmt.Sprintf("ID%04d", ids)
		},
	}
}

// goodRow returns a valid 15-column receipt row. The tax value is
// consistent with price, quantity, and vat20.
func goodRow(billID, name string, price, qty float64) []models.Value {
	sum := price * qty
	return []models.Value{
		models.TextValue("x"),
		models.TextValue("y"),
		models.TextValue(billID),
		models.TextValue("sale"),
		models.TextValue("user@example.com"),
		models.TextValue("+79000000000"),
		models.TextValue("osn"),
		models.TextValue(name),
		models.NumberValue(price),
		models.NumberValue(qty),
		models.NumberValue(sum),
		models.TextValue("vat20"),
		models.NumberValue(sum * 0.2),
		models.TextValue("full_payment"),
		models.TextValue("commodity"),
	}
}

func receiptTable(rows ...[]models.Value) *Table {
	return &Table{Rows: rows, FirstDataRow: 2}
}

func TestReceiptBuilderGroupsByBillID(t *testing.T) {
	b := testReceiptBuilder()
	doc, err := b.Build(context.Background(), receiptTable(
		goodRow("bill-1", "Bread", 12.5, 2),
		goodRow("bill-1", "Milk", 2, 1),
		goodRow("bill-2", "Tea", 5, 1),
	))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if doc.Timestamp != "2021-06-01T12:00:00Z" {
		t.Errorf("unexpected timestamp %q", doc.Timestamp)
	}
	if len(doc.Receipts) != 2 {
		t.Fatalf("expected 2 receipts, got %d", len(doc.Receipts))
	}

	first := doc.Receipts[0]
	if first.ID != "ID0001" {
		t.Errorf("unexpected receipt ID %q", first.ID)
	}
	if len(first.Goods) != 2 {
		t.Fatalf("expected 2 goods on first receipt, got %d", len(first.Goods))
	}
	if first.Total != 27 {
		t.Errorf("expected total 27, got %v", first.Total)
	}
	if first.OperationType != "sale" || first.TaxSystem != "OSN" {
		t.Errorf("unexpected receipt header: %+v", first)
	}
	if first.Email != "user@example.com" || first.Phone != "+79000000000" {
		t.Errorf("unexpected contact fields: %+v", first)
	}

	second := doc.Receipts[1]
	if len(second.Goods) != 1 || second.Goods[0].Name != "Tea" {
		t.Errorf("unexpected second receipt: %+v", second)
	}
}

func TestReceiptBuilderValidatesEveryRow(t *testing.T) {
	// Header fields are checked on every row of a bill, not just the
	// first one.
	bad := goodRow("bill-1", "Milk", 2, 1)
	bad[colOpType] = models.TextValue("not-a-dt")

	b := testReceiptBuilder()
	_, err := b.Build(context.Background(), receiptTable(
		goodRow("bill-1", "Bread", 12.5, 2),
		bad,
	))
	if err == nil {
		t.Fatal("expected invalid dt on the second row of a bill to fail")
	}
	if !strings.Contains(err.Error(), "invalid dt value") {
		t.Errorf("error %q does not mention the dt value", err)
	}

	var rowErr *RowError
	if !errors.As(err, &rowErr) || rowErr.Row != 3 {
		t.Errorf("expected row 3 in error, got %v", err)
	}
}

func TestReceiptBuilderEmptyTableEmitsEmptyList(t *testing.T) {
	blank := goodRow("bill-1", "Bread", 12.5, 2)
	blank[0] = models.Null()

	b := testReceiptBuilder()
	doc, err := b.Build(context.Background(), receiptTable(blank))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if doc.Receipts == nil {
		t.Fatal("receipts must be an empty list, not nil")
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"i":[]`) {
		t.Errorf("expected empty receipts array, got %s", data)
	}
}

func TestReceiptBuilderBlankLeadingCellEndsTable(t *testing.T) {
	blank := goodRow("bill-2", "Tea", 5, 1)
	blank[0] = models.Null()

	b := testReceiptBuilder()
	doc, err := b.Build(context.Background(), receiptTable(
		goodRow("bill-1", "Bread", 12.5, 2),
		blank,
		goodRow("bill-3", "Milk", 2, 1),
	))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(doc.Receipts) != 1 {
		t.Errorf("expected table to end at blank cell, got %d receipts", len(doc.Receipts))
	}
}

func TestReceiptBuilderRowWidth(t *testing.T) {
	short := goodRow("bill-1", "Bread", 12.5, 2)[:10]

	b := testReceiptBuilder()
	_, err := b.Build(context.Background(), receiptTable(short))
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
}

func TestReceiptBuilderValidation(t *testing.T) {
	corrupt := func(col int, v models.Value) []models.Value {
		row := goodRow("bill-1", "Bread", 12.5, 2)
		row[col] = v
		return row
	}

	tests := []struct {
		name string
		row  []models.Value
		want string
	}{
		{"invalid dt", corrupt(colOpType, models.TextValue("purchase")), "invalid dt value"},
		{"missing email", corrupt(colEmail, models.Null()), "no e-mail given"},
		{"bad email", corrupt(colEmail, models.TextValue("not-an-email")), "invalid em value"},
		{"bad price", corrupt(colPrice, models.TextValue("abc")), "invalid i.p value"},
		{"bad quantity", corrupt(colQty, models.TextValue("abc")), "invalid i.q value"},
		{"bad sum", corrupt(colSum, models.Null()), "invalid i.s value"},
		{"bad tax rate", corrupt(colTax, models.TextValue("vat0")), "invalid i.ts value"},
		{"bad tax value", corrupt(colTaxVal, models.NumberValue(99)), "invalid i.tv value"},
		{"bad method", corrupt(colMethod, models.TextValue("barter")), "invalid i.smc value"},
	}

	for _, tt := range tests {
		b := testReceiptBuilder()
		_, err := b.Build(context.Background(), receiptTable(tt.row))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.want)
		}

		var rowErr *RowError
		if !errors.As(err, &rowErr) || rowErr.Row != 2 {
			t.Errorf("%s: expected row 2 in error, got %v", tt.name, err)
		}
	}
}

func TestReceiptBuilderTaxValueTolerance(t *testing.T) {
	// A discrepancy within a cent passes the consistency check.
	row := goodRow("bill-1", "Bread", 12.5, 2)
	row[colTaxVal] = models.NumberValue(12.5*2*0.2 + 0.009)

	b := testReceiptBuilder()
	if _, err := b.Build(context.Background(), receiptTable(row)); err != nil {
		t.Errorf("discrepancy within tolerance should pass, got %v", err)
	}
}

func TestNewReceiptID(t *testing.T) {
	id := newReceiptID()
	if len(id) != 32 {
		t.Errorf("expected 32 hex characters, got %d (%q)", len(id), id)
	}
	if id != strings.ToUpper(id) {
		t.Errorf("expected uppercase ID, got %q", id)
	}
}
