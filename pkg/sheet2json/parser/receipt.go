package parser

import (
	"context"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ArtUshak/sheet2json/pkg/sheet2json/models"
	"github.com/google/uuid"
)

// Receipt worksheet columns (0-based). Columns 0 and 1 carry bookkeeping
// data the converter does not consume.
const (
	colBillID = 2
	colOpType = 3
	colEmail  = 4
	colPhone  = 5
	colTaxSys = 6
	colName   = 7
	colPrice  = 8
	colQty    = 9
	colSum    = 10
	colTax    = 11
	colTaxVal = 12
	colMethod = 13
	colType   = 14

	receiptRowWidth = 15
)

// taxVATRates maps tax rate codes to their numeric VAT rate.
var taxVATRates = map[string]float64{
	"vat10": 0.1,
	"vat20": 0.2,
}

var operationTypes = map[string]bool{
	"sale":        true,
	"sale_refund": true,
}

var settlementMethods = map[string]bool{
	"full_prepayment": true,
	"prepayment":      true,
	"advance":         true,
	"full_payment":    true,
	"partial_payment": true,
	"credit":          true,
	"credit_payment":  true,
}

// vatTolerance is the largest accepted |p*q*rate - tv| discrepancy.
const vatTolerance = 0.01

// ReceiptBuilder groups worksheet rows into fiscal receipts by bill ID.
type ReceiptBuilder struct {
	// CheckMX enables MX-record verification of e-mail domains.
	CheckMX bool

	now   func() time.Time
	newID func() string
}

// NewReceiptBuilder returns a builder using the wall clock and random
// receipt IDs.
func NewReceiptBuilder() *ReceiptBuilder {
	return &ReceiptBuilder{
		now:   time.Now,
		newID: newReceiptID,
	}
}

// newReceiptID mints an uppercase hex UUID.
func newReceiptID() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:]))
}

// Build converts the table's rows into a receipt document. Rows sharing
// a bill ID merge into one receipt, first-seen order preserved. A blank
// leading cell ends the table. Any validation failure is fatal and is
// reported with its worksheet row number.
func (b *ReceiptBuilder) Build(ctx context.Context, table *Table) (*models.ReceiptDocument, error) {
	byBill := make(map[string]*models.Receipt)
	receipts := []*models.Receipt{}

	for idx, row := range table.Rows {
		rowNum := table.FirstDataRow + idx
		if stringCell(row, 0) == "" {
			break
		}

		if len(row) < receiptRowWidth {
			return nil, NewRowError(rowNum, fmt.Errorf("%w: got %d cells, need %d", ErrMalformedRow, len(row), receiptRowWidth))
		}

		// Header columns are validated on every row, not just the first
		// row of a bill; the built receipt is discarded when the bill is
		// already known.
		receipt, err := b.receiptFromRow(ctx, row)
		if err != nil {
			return nil, NewRowError(rowNum, err)
		}
		billID := stringCell(row, colBillID)
		if existing, ok := byBill[billID]; ok {
			receipt = existing
		} else {
			byBill[billID] = receipt
			receipts = append(receipts, receipt)
		}

		good, err := goodFromRow(row)
		if err != nil {
			return nil, NewRowError(rowNum, err)
		}
		receipt.Goods = append(receipt.Goods, good)
		receipt.Total += good.Sum
	}

	return &models.ReceiptDocument{
		Timestamp: b.now().Format(time.RFC3339),
		Receipts:  receipts,
	}, nil
}

// receiptFromRow builds the receipt header from the first row of a bill.
func (b *ReceiptBuilder) receiptFromRow(ctx context.Context, row []models.Value) (*models.Receipt, error) {
	opType := stringCell(row, colOpType)
	if !operationTypes[opType] {
		return nil, fmt.Errorf("invalid dt value %q", opType)
	}

	email := stringCell(row, colEmail)
	if email == "" {
		return nil, fmt.Errorf("no e-mail given")
	}
	domain, err := ValidateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("invalid em value: %w", err)
	}
	if b.CheckMX && !CheckEmailDomainMX(ctx, domain) {
		return nil, fmt.Errorf("invalid em value: domain %q does not exist or has no MX record", domain)
	}

	return &models.Receipt{
		ID:            b.newID(),
		OperationType: opType,
		TaxSystem:     taxSystem(stringCell(row, colTaxSys)),
		Email:         email,
		Phone:         stringCell(row, colPhone),
	}, nil
}

// taxSystem normalizes the worksheet tax system column. Only the general
// system is supported.
func taxSystem(string) string {
	return "OSN"
}

// goodFromRow builds one item line from a row.
func goodFromRow(row []models.Value) (models.Good, error) {
	price, err := floatCell(row, colPrice)
	if err != nil {
		return models.Good{}, fmt.Errorf("invalid i.p value")
	}
	qty, err := floatCell(row, colQty)
	if err != nil {
		return models.Good{}, fmt.Errorf("invalid i.q value")
	}
	sum, err := floatCell(row, colSum)
	if err != nil {
		return models.Good{}, fmt.Errorf("invalid i.s value")
	}
	taxValue, err := floatCell(row, colTaxVal)
	if err != nil {
		return models.Good{}, fmt.Errorf("invalid i.tv value")
	}

	taxRate := stringCell(row, colTax)
	if _, ok := taxVATRates[taxRate]; !ok {
		return models.Good{}, fmt.Errorf("invalid i.ts value %q", taxRate)
	}

	method := stringCell(row, colMethod)
	if !settlementMethods[method] {
		return models.Good{}, fmt.Errorf("invalid i.smc value %q", method)
	}

	good := models.Good{
		Name:             stringCell(row, colName),
		Price:            price,
		Quantity:         qty,
		Sum:              sum,
		TaxRate:          taxRate,
		TaxValue:         taxValue,
		SettlementMethod: method,
		GoodType:         stringCell(row, colType),
	}
	if err := checkGood(good); err != nil {
		return models.Good{}, err
	}
	return good, nil
}

// checkGood verifies that the declared tax value agrees with price,
// quantity, and tax rate.
func checkGood(g models.Good) error {
	rate := taxVATRates[g.TaxRate]
	delta := g.Price*g.Quantity*rate - g.TaxValue
	if math.Abs(delta) > vatTolerance {
		return fmt.Errorf("invalid i.tv value (contradicts i.p, i.q and i.ts)")
	}
	return nil
}
