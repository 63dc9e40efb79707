package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBusinessRepository struct {
	BaseRepository
}

func newPgxBusinessRepository(pool *pgxpool.Pool) portsrepo.BusinessRepositoryFacade {
	return &PgxBusinessRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BusinessRepositoryFacade = (*PgxBusinessRepository)(nil)

const businessColumns = `business_id, name, financial_year_start, is_initialized, created_at, created_by, last_updated_at, last_updated_by`

func scanBusiness(row pgx.Row) (*domain.Business, error) {
	var m models.Business
	err := row.Scan(
		&m.BusinessID,
		&m.Name,
		&m.FinancialYearStart,
		&m.IsInitialized,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	business := mapping.ToDomainBusiness(m)
	return &business, nil
}

// SaveBusiness inserts a new business row.
func (r *PgxBusinessRepository) SaveBusiness(ctx context.Context, tx pgx.Tx, business domain.Business) error {
	m := mapping.ToModelBusiness(business)
	query := `INSERT INTO businesses (` + businessColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := tx.Exec(ctx, query,
		m.BusinessID,
		m.Name,
		m.FinancialYearStart,
		m.IsInitialized,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: business %s", apperrors.ErrDuplicate, m.BusinessID)
		}
		return apperrors.NewAppError(500, "failed to insert business "+m.BusinessID, err)
	}
	return nil
}

// FindBusinessByID retrieves a business by its ID.
func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE business_id = $1;`
	business, err := scanBusiness(r.Pool.QueryRow(ctx, query, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return nil, apperrors.NewNotFoundError("business", businessID)
		}
		return nil, apperrors.NewAppError(500, "failed to find business "+businessID, err)
	}
	return business, nil
}

// FindBusinessByIDForUpdate locks the business row until tx ends.
func (r *PgxBusinessRepository) FindBusinessByIDForUpdate(ctx context.Context, tx pgx.Tx, businessID string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE business_id = $1 FOR UPDATE;`
	business, err := scanBusiness(tx.QueryRow(ctx, query, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return nil, apperrors.NewNotFoundError("business", businessID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock business "+businessID, err)
	}
	return business, nil
}

// MarkInitialized opens the books of a business.
func (r *PgxBusinessRepository) MarkInitialized(ctx context.Context, tx pgx.Tx, businessID, userID string, now time.Time) error {
	query := `UPDATE businesses SET is_initialized = TRUE, last_updated_at = $2, last_updated_by = $3 WHERE business_id = $1;`
	tag, err := tx.Exec(ctx, query, businessID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark business initialized "+businessID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("business", businessID)
	}
	return nil
}

// CountBusinessRecords reports how many accounts, vouchers and postings a business owns.
func (r *PgxBusinessRepository) CountBusinessRecords(ctx context.Context, businessID string) (*domain.IntegrityReport, error) {
	query := `
		SELECT b.is_initialized,
		       (SELECT COUNT(*) FROM accounts a WHERE a.business_id = b.business_id),
		       (SELECT COUNT(*) FROM vouchers v WHERE v.business_id = b.business_id),
		       (SELECT COUNT(*) FROM postings p WHERE p.business_id = b.business_id)
		FROM businesses b
		WHERE b.business_id = $1;
	`
	report := domain.IntegrityReport{BusinessID: businessID}
	err := r.Pool.QueryRow(ctx, query, businessID).Scan(
		&report.IsInitialized,
		&report.AccountCount,
		&report.VoucherCount,
		&report.PostingCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return nil, apperrors.NewNotFoundError("business", businessID)
		}
		return nil, apperrors.NewAppError(500, "failed to count records for business "+businessID, err)
	}
	return &report, nil
}
