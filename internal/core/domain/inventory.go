package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stock item. Name is unique per business.
type Product struct {
	ProductID  string `json:"productID"`
	BusinessID string `json:"businessID"`
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	Category   string `json:"category"`
	UOM        string `json:"uom"`
	AuditFields
}

// InventoryValuation records the value of a product quantity at a date,
// linked to the voucher that carried it into the ledger.
type InventoryValuation struct {
	ValuationID   string          `json:"valuationID"`
	BusinessID    string          `json:"businessID"`
	ProductID     string          `json:"productID"`
	VoucherID     string          `json:"voucherID"`
	ValuationDate time.Time       `json:"valuationDate"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}

// StockSummary aggregates inventory for dashboard KPIs.
type StockSummary struct {
	TotalValue  decimal.Decimal `json:"totalValue"`
	UniqueItems int64           `json:"uniqueItems"`
}
