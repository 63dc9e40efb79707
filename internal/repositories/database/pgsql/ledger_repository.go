package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository reads posted postings per account. Draft and
// cancelled vouchers never reach a statement.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) SumMovementBefore(ctx context.Context, businessID, accountID string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN p.entry_type = 'DR' THEN p.amount ELSE -p.amount END), 0)
		FROM postings p
		JOIN vouchers v ON v.voucher_id = p.voucher_id
		WHERE p.business_id = $1 AND p.account_id = $2 AND v.status = 'POSTED' AND p.posting_date < $3;
	`
	var movement decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, businessID, accountID, before).Scan(&movement); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum movement for account "+accountID, err)
	}
	return movement, nil
}

func (r *PgxLedgerRepository) FindLedgerLines(ctx context.Context, businessID, accountID string, from, to *time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT p.posting_id, p.voucher_id, v.voucher_type, v.voucher_number, COALESCE(v.narration, ''),
		       p.posting_date, p.entry_type, p.amount
		FROM postings p
		JOIN vouchers v ON v.voucher_id = p.voucher_id
		WHERE p.business_id = $1 AND p.account_id = $2 AND v.status = 'POSTED'
		  AND ($3::date IS NULL OR p.posting_date >= $3::date)
		  AND ($4::date IS NULL OR p.posting_date <= $4::date)
		ORDER BY p.posting_date, v.voucher_number, p.amount;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, accountID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger lines for account "+accountID, err)
	}
	defer rows.Close()

	lines := []domain.LedgerLine{}
	for rows.Next() {
		var l domain.LedgerLine
		var voucherType, entryType string
		if err := rows.Scan(
			&l.PostingID,
			&l.VoucherID,
			&voucherType,
			&l.VoucherNumber,
			&l.Narration,
			&l.TxnDate,
			&entryType,
			&l.Amount,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger line for account "+accountID, err)
		}
		l.VoucherType = domain.VoucherType(voucherType)
		l.EntryType = domain.EntryType(entryType)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger lines for account "+accountID, err)
	}
	return lines, nil
}
