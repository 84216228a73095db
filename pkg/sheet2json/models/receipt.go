package models

// Good is one purchased item line on a receipt. JSON keys follow the
// fiscal exchange format: n (name), p (price), q (quantity), s (sum),
// ts (tax rate code), tv (tax value), smc (settlement method code),
// sco (subject of calculation, the good type).
type Good struct {
	Name             string  `json:"n"`
	Price            float64 `json:"p"`
	Quantity         float64 `json:"q"`
	Sum              float64 `json:"s"`
	TaxRate          string  `json:"ts"`
	TaxValue         float64 `json:"tv"`
	SettlementMethod string  `json:"smc"`
	GoodType         string  `json:"sco"`
}

// Receipt groups the goods of one bill into a single fiscal receipt.
type Receipt struct {
	// ID is an uppercase hex UUID minted per receipt.
	ID string `json:"id"`
	// OperationType is "sale" or "sale_refund".
	OperationType string `json:"dt"`
	// Total is the sum of the goods' Sum fields.
	Total float64 `json:"cr"`
	// TaxSystem is the tax system code.
	TaxSystem string `json:"ts"`
	// Email is the customer e-mail address.
	Email string `json:"em"`
	// Phone is the customer phone number, possibly empty.
	Phone string `json:"ph"`
	// Goods are the item lines, in worksheet order.
	Goods []Good `json:"i"`
}

// ReceiptDocument is the top-level receipts-mode output: a conversion
// timestamp and the receipts in first-seen bill order.
type ReceiptDocument struct {
	Timestamp string     `json:"t"`
	Receipts  []*Receipt `json:"i"`
}
