package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a row of the products table.
type Product struct {
	ProductID  string  `db:"product_id"`
	BusinessID string  `db:"business_id"`
	Name       string  `db:"name"`
	SKU        string  `db:"sku"`
	Category   *string `db:"category"`
	UOM        *string `db:"uom"`
	AuditFields
}

// InventoryValuation is a row of the inventory_valuations table.
type InventoryValuation struct {
	ValuationID   string          `db:"valuation_id"`
	BusinessID    string          `db:"business_id"`
	ProductID     string          `db:"product_id"`
	VoucherID     string          `db:"voucher_id"`
	ValuationDate time.Time       `db:"valuation_date"`
	Quantity      decimal.Decimal `db:"quantity"`
	UnitCost      decimal.Decimal `db:"unit_cost"`
	TotalValue    decimal.Decimal `db:"total_value"`
}
