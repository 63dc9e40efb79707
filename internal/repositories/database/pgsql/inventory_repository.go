package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInventoryRepository struct {
	BaseRepository
}

func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepository {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepository = (*PgxInventoryRepository)(nil)

// EnsureProduct finds a product by name or creates it.
func (r *PgxInventoryRepository) EnsureProduct(ctx context.Context, tx pgx.Tx, product domain.Product) (*domain.Product, error) {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (product_id, business_id, name, sku, category, uom, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (business_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING product_id, business_id, name, sku, category, uom, created_at, created_by, last_updated_at, last_updated_by;
	`
	var out models.Product
	err := tx.QueryRow(ctx, query,
		m.ProductID,
		m.BusinessID,
		m.Name,
		m.SKU,
		m.Category,
		m.UOM,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(
		&out.ProductID,
		&out.BusinessID,
		&out.Name,
		&out.SKU,
		&out.Category,
		&out.UOM,
		&out.CreatedAt,
		&out.CreatedBy,
		&out.LastUpdatedAt,
		&out.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure product "+m.Name, err)
	}
	p := mapping.ToDomainProduct(out)
	return &p, nil
}

// SaveValuations inserts every valuation in one batch.
func (r *PgxInventoryRepository) SaveValuations(ctx context.Context, tx pgx.Tx, valuations []domain.InventoryValuation) error {
	if len(valuations) == 0 {
		return nil
	}
	query := `
		INSERT INTO inventory_valuations (valuation_id, business_id, product_id, voucher_id, valuation_date, quantity, unit_cost, total_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, v := range valuations {
		m := mapping.ToModelInventoryValuation(v)
		batch.Queue(query, m.ValuationID, m.BusinessID, m.ProductID, m.VoucherID, m.ValuationDate, m.Quantity, m.UnitCost, m.TotalValue)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert inventory valuations", err)
	}
	return nil
}

// GetStockSummary totals valuations carried by posted vouchers.
func (r *PgxInventoryRepository) GetStockSummary(ctx context.Context, businessID string, asOf time.Time) (domain.StockSummary, error) {
	query := `
		SELECT COALESCE(SUM(iv.total_value), 0), COUNT(DISTINCT iv.product_id)
		FROM inventory_valuations iv
		JOIN vouchers v ON v.voucher_id = iv.voucher_id AND v.status = 'POSTED'
		WHERE iv.business_id = $1 AND iv.valuation_date <= $2;
	`
	var summary domain.StockSummary
	if err := r.Pool.QueryRow(ctx, query, businessID, asOf).Scan(&summary.TotalValue, &summary.UniqueItems); err != nil {
		return domain.StockSummary{}, apperrors.NewAppError(500, "failed to summarise stock for business "+businessID, err)
	}
	return summary, nil
}
