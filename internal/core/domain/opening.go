package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningVoucherNumber identifies the one system voucher the opening position creates.
const OpeningVoucherNumber = "OP-BAL-01"

// Stock-in-Hand ledger that carries the rolled-up inventory value.
const (
	StockAccountCode = "CA-STOCK"
	StockAccountName = "Stock-in-Hand"
)

// Ledger that absorbs the sub-tolerance variance of an opening position.
const (
	RoundingAccountCode = "EX-ROUNDING"
	RoundingAccountName = "Rounding Difference"
)

// OpeningBalanceLine seeds one ledger. EntryType may be empty, in which case
// it is inferred from the ledger and group names.
type OpeningBalanceLine struct {
	LedgerName string
	GroupName  string
	EntryType  EntryType
	Amount     decimal.Decimal
}

// OpeningStockItem seeds one inventory item.
type OpeningStockItem struct {
	SKU      string
	Name     string
	Category string
	UOM      string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Value is quantity times unit cost.
func (i OpeningStockItem) Value() decimal.Decimal {
	return i.Quantity.Mul(i.UnitCost)
}

// OpeningPosition is the one-time bootstrap payload of a business.
type OpeningPosition struct {
	BusinessID string
	Date       *time.Time
	Narration  string
	Lines      []OpeningBalanceLine
	Items      []OpeningStockItem
	ActorID    string
}

// OpeningPositionResult summarises an accepted opening position. DebitTotal
// and CreditTotal are the submitted sides; RoundingAdjustment is the amount
// posted to the rounding ledger to make the stored voucher balance.
type OpeningPositionResult struct {
	VoucherID          string          `json:"voucherID"`
	VoucherNumber      string          `json:"voucherNumber"`
	VoucherDate        time.Time       `json:"voucherDate"`
	LedgerCount        int             `json:"ledgerCount"`
	StockValue         decimal.Decimal `json:"stockValue"`
	DebitTotal         decimal.Decimal `json:"debitTotal"`
	CreditTotal        decimal.Decimal `json:"creditTotal"`
	RoundingAdjustment decimal.Decimal `json:"roundingAdjustment"`
}
