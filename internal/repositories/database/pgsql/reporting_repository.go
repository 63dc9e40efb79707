package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetAccountBalances aggregates posted movement per account in one pass.
// Accounts without postings still appear so their opening balance is reported.
func (r *reportingRepository) GetAccountBalances(ctx context.Context, businessID string, from *time.Time, to time.Time) ([]domain.AccountBalance, error) {
	query := `
		SELECT ` + accountColumns + `,
			COALESCE(SUM(CASE WHEN pv.entry_type = 'DR' THEN pv.amount ELSE -pv.amount END)
				FILTER (WHERE $2::date IS NOT NULL AND pv.posting_date < $2::date), 0) AS movement_before,
			COALESCE(SUM(pv.amount)
				FILTER (WHERE pv.entry_type = 'DR' AND ($2::date IS NULL OR pv.posting_date >= $2::date)), 0) AS period_debit,
			COALESCE(SUM(pv.amount)
				FILTER (WHERE pv.entry_type = 'CR' AND ($2::date IS NULL OR pv.posting_date >= $2::date)), 0) AS period_credit
		FROM accounts a
		LEFT JOIN account_groups g ON g.account_group_id = a.account_group_id
		LEFT JOIN (
			SELECT p.account_id, p.entry_type, p.amount, p.posting_date
			FROM postings p
			JOIN vouchers v ON v.voucher_id = p.voucher_id
			WHERE v.business_id = $1 AND v.status = 'POSTED'
		) pv ON pv.account_id = a.account_id AND pv.posting_date <= $3::date
		WHERE a.business_id = $1
		GROUP BY a.account_id, g.name, g.category
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying account balances: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountBalance{}
	for rows.Next() {
		var m models.Account
		var row domain.AccountBalance
		if err := rows.Scan(
			&m.AccountID,
			&m.BusinessID,
			&m.AccountGroupID,
			&m.Code,
			&m.Name,
			&m.NormalBalance,
			&m.OpeningBalance,
			&m.OpeningBalanceType,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.GroupName,
			&m.GroupCategory,
			&row.MovementBefore,
			&row.PeriodDebit,
			&row.PeriodCredit,
		); err != nil {
			return nil, fmt.Errorf("error scanning account balance row: %w", err)
		}
		row.Account = mapping.ToDomainAccount(m)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account balance rows: %w", err)
	}
	return result, nil
}
