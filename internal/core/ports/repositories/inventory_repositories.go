package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// InventoryRepository defines operations for products and their valuations
type InventoryRepository interface {
	// EnsureProduct upserts a product on (business_id, name) within tx.
	EnsureProduct(ctx context.Context, tx pgx.Tx, product domain.Product) (*domain.Product, error)

	// SaveValuations inserts valuation rows within tx.
	SaveValuations(ctx context.Context, tx pgx.Tx, valuations []domain.InventoryValuation) error

	// GetStockSummary aggregates valuations of posted vouchers dated on or before asOf.
	GetStockSummary(ctx context.Context, businessID string, asOf time.Time) (domain.StockSummary, error)
}
