package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for vouchers and their postings.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

const voucherColumns = `v.voucher_id, v.business_id, v.voucher_type, v.voucher_number, v.voucher_date, v.narration,
	v.status, v.is_system_generated, v.reversal_of_voucher_id, v.posted_at, v.cancelled_at,
	v.created_at, v.created_by, v.last_updated_at, v.last_updated_by`

func voucherScanTargets(m *models.Voucher) []any {
	return []any{
		&m.VoucherID,
		&m.BusinessID,
		&m.VoucherType,
		&m.VoucherNumber,
		&m.VoucherDate,
		&m.Narration,
		&m.Status,
		&m.IsSystemGenerated,
		&m.ReversalOfVoucherID,
		&m.PostedAt,
		&m.CancelledAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	}
}

// SaveVoucher inserts the header and queues one insert per posting in a single batch.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error {
	m := mapping.ToModelVoucher(voucher)
	query := `
		INSERT INTO vouchers (voucher_id, business_id, voucher_type, voucher_number, voucher_date, narration,
			status, is_system_generated, reversal_of_voucher_id, posted_at, cancelled_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.VoucherID,
		m.BusinessID,
		m.VoucherType,
		m.VoucherNumber,
		m.VoucherDate,
		m.Narration,
		m.Status,
		m.IsSystemGenerated,
		m.ReversalOfVoucherID,
		m.PostedAt,
		m.CancelledAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: voucher %s already exists", apperrors.ErrDuplicate, m.VoucherNumber)
		}
		return apperrors.NewAppError(500, "failed to insert voucher "+m.VoucherID, err)
	}
	return r.insertPostings(ctx, tx, voucher.Postings)
}

func (r *PgxVoucherRepository) insertPostings(ctx context.Context, tx pgx.Tx, postings []domain.Posting) error {
	if len(postings) == 0 {
		return nil
	}
	query := `
		INSERT INTO postings (posting_id, voucher_id, business_id, line_no, account_id, entry_type, amount, posting_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, p := range postings {
		mp := mapping.ToModelPosting(p)
		batch.Queue(query,
			mp.PostingID,
			mp.VoucherID,
			mp.BusinessID,
			mp.LineNo,
			mp.AccountID,
			mp.EntryType,
			mp.Amount,
			mp.PostingDate,
		)
	}
	// Close surfaces the first failing statement of the batch.
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert postings for voucher "+postings[0].VoucherID, err)
	}
	return nil
}

// UpdateVoucherHeader rewrites the editable header fields.
func (r *PgxVoucherRepository) UpdateVoucherHeader(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error {
	m := mapping.ToModelVoucher(voucher)
	query := `
		UPDATE vouchers
		SET voucher_type = $2, voucher_number = $3, voucher_date = $4, narration = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE voucher_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.VoucherID,
		m.VoucherType,
		m.VoucherNumber,
		m.VoucherDate,
		m.Narration,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update voucher "+m.VoucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("voucher", m.VoucherID)
	}
	return nil
}

// ReplacePostings swaps the full posting set of a voucher.
func (r *PgxVoucherRepository) ReplacePostings(ctx context.Context, tx pgx.Tx, voucherID string, postings []domain.Posting) error {
	if _, err := tx.Exec(ctx, `DELETE FROM postings WHERE voucher_id = $1;`, voucherID); err != nil {
		return apperrors.NewAppError(500, "failed to delete postings for voucher "+voucherID, err)
	}
	return r.insertPostings(ctx, tx, postings)
}

// UpdateVoucherStatus records a lifecycle transition.
func (r *PgxVoucherRepository) UpdateVoucherStatus(ctx context.Context, tx pgx.Tx, voucherID string, status domain.VoucherStatus, userID string, now time.Time) error {
	query := `
		UPDATE vouchers
		SET status = $2::varchar,
		    posted_at = CASE WHEN $2::varchar = 'POSTED' THEN $3 ELSE posted_at END,
		    cancelled_at = CASE WHEN $2::varchar = 'CANCELLED' THEN $3 ELSE cancelled_at END,
		    last_updated_at = $3, last_updated_by = $4
		WHERE voucher_id = $1;
	`
	tag, err := tx.Exec(ctx, query, voucherID, string(status), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of voucher "+voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("voucher", voucherID)
	}
	return nil
}

// DeleteVoucher removes a voucher; postings go with it through ON DELETE CASCADE.
func (r *PgxVoucherRepository) DeleteVoucher(ctx context.Context, tx pgx.Tx, businessID, voucherID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM vouchers WHERE business_id = $1 AND voucher_id = $2;`, businessID, voucherID)
	if err != nil {
		if isMalformedID(err) {
			return apperrors.NewNotFoundError("voucher", voucherID)
		}
		return apperrors.NewAppError(500, "failed to delete voucher "+voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("voucher", voucherID)
	}
	return nil
}

func (r *PgxVoucherRepository) findVoucher(ctx context.Context, q querier, businessID, voucherID string, lock bool) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers v WHERE v.business_id = $1 AND v.voucher_id = $2`
	if lock {
		query += ` FOR UPDATE`
	}

	var m models.Voucher
	if err := q.QueryRow(ctx, query, businessID, voucherID).Scan(voucherScanTargets(&m)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return nil, apperrors.NewNotFoundError("voucher", voucherID)
		}
		return nil, apperrors.NewAppError(500, "failed to find voucher "+voucherID, err)
	}

	postings, err := r.findPostings(ctx, q, voucherID)
	if err != nil {
		return nil, err
	}
	voucher := mapping.ToDomainVoucher(m)
	voucher.Postings = postings
	for _, p := range postings {
		voucher.GrossAmount = voucher.GrossAmount.Add(p.Amount)
	}
	return &voucher, nil
}

func (r *PgxVoucherRepository) findPostings(ctx context.Context, q querier, voucherID string) ([]domain.Posting, error) {
	query := `
		SELECT posting_id, voucher_id, business_id, line_no, account_id, entry_type, amount, posting_date
		FROM postings
		WHERE voucher_id = $1
		ORDER BY line_no;
	`
	rows, err := q.Query(ctx, query, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query postings for voucher "+voucherID, err)
	}
	defer rows.Close()

	postings := []models.Posting{}
	for rows.Next() {
		var p models.Posting
		if err := rows.Scan(
			&p.PostingID,
			&p.VoucherID,
			&p.BusinessID,
			&p.LineNo,
			&p.AccountID,
			&p.EntryType,
			&p.Amount,
			&p.PostingDate,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan posting row for voucher "+voucherID, err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posting rows for voucher "+voucherID, err)
	}
	return mapping.ToDomainPostingSlice(postings), nil
}

// FindVoucherByID retrieves a voucher with its postings.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, businessID, voucherID string) (*domain.Voucher, error) {
	return r.findVoucher(ctx, r.Pool, businessID, voucherID, false)
}

// FindVoucherByIDForUpdate locks the voucher row for the rest of tx.
func (r *PgxVoucherRepository) FindVoucherByIDForUpdate(ctx context.Context, tx pgx.Tx, businessID, voucherID string) (*domain.Voucher, error) {
	return r.findVoucher(ctx, tx, businessID, voucherID, true)
}

// ListVouchers returns one page of vouchers matching filter, newest first, and the total match count.
func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, filter domain.VoucherFilter) ([]domain.Voucher, int64, error) {
	page := pagination.NewPage(filter.Limit, filter.Offset)

	conditions := []string{"v.business_id = $1"}
	args := []any{filter.BusinessID}
	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}
	if filter.From != nil {
		addCondition("v.voucher_date >= ?", *filter.From)
	}
	if filter.To != nil {
		addCondition("v.voucher_date <= ?", *filter.To)
	}
	if filter.Type != nil {
		addCondition("v.voucher_type = ?", string(*filter.Type))
	}
	if filter.Status != nil {
		addCondition("v.status = ?", string(*filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		addCondition(`(v.voucher_number ILIKE ? ESCAPE '\' OR v.narration ILIKE ? ESCAPE '\')`, "%"+EscapeLike(search)+"%")
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM vouchers v`+where, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count vouchers for business "+filter.BusinessID, err)
	}

	query := `
		SELECT ` + voucherColumns + `, COALESCE(SUM(p.amount), 0) AS gross_amount
		FROM vouchers v
		LEFT JOIN postings p ON p.voucher_id = v.voucher_id` + where + `
		GROUP BY v.voucher_id
		ORDER BY v.voucher_date DESC, v.created_at DESC
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2) + `;`
	args = append(args, page.Limit, page.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list vouchers for business "+filter.BusinessID, err)
	}
	defer rows.Close()

	vouchers := []models.Voucher{}
	for rows.Next() {
		var m models.Voucher
		if err := rows.Scan(append(voucherScanTargets(&m), &m.GrossAmount)...); err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan voucher row", err)
		}
		vouchers = append(vouchers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating voucher rows", err)
	}
	return mapping.ToDomainVoucherSlice(vouchers), total, nil
}

// ListDaybook returns the day's non-cancelled vouchers in creation order.
func (r *PgxVoucherRepository) ListDaybook(ctx context.Context, businessID string, day time.Time) ([]domain.DaybookEntry, error) {
	query := `
		SELECT v.voucher_id, v.voucher_type, v.voucher_number, v.voucher_date, COALESCE(v.narration, ''), v.status,
		       COALESCE(SUM(p.amount) FILTER (WHERE p.entry_type = 'DR'), 0),
		       COALESCE(SUM(p.amount) FILTER (WHERE p.entry_type = 'CR'), 0)
		FROM vouchers v
		LEFT JOIN postings p ON p.voucher_id = v.voucher_id
		WHERE v.business_id = $1 AND v.voucher_date = $2 AND v.status <> 'CANCELLED'
		GROUP BY v.voucher_id
		ORDER BY v.created_at, v.voucher_number;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, day)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query daybook for business "+businessID, err)
	}
	defer rows.Close()

	entries := []domain.DaybookEntry{}
	for rows.Next() {
		var e domain.DaybookEntry
		var voucherType, status string
		if err := rows.Scan(
			&e.VoucherID,
			&voucherType,
			&e.VoucherNumber,
			&e.VoucherDate,
			&e.Narration,
			&status,
			&e.DebitTotal,
			&e.CreditTotal,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan daybook row", err)
		}
		e.VoucherType = domain.VoucherType(voucherType)
		e.Status = domain.VoucherStatus(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating daybook rows", err)
	}
	return entries, nil
}

// CountUnbalancedDrafts compares side totals of each draft at money precision.
func (r *PgxVoucherRepository) CountUnbalancedDrafts(ctx context.Context, businessID string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM (
			SELECT v.voucher_id
			FROM vouchers v
			LEFT JOIN postings p ON p.voucher_id = v.voucher_id
			WHERE v.business_id = $1 AND v.status = 'DRAFT'
			GROUP BY v.voucher_id
			HAVING ROUND(COALESCE(SUM(p.amount) FILTER (WHERE p.entry_type = 'DR'), 0), 2)
			    <> ROUND(COALESCE(SUM(p.amount) FILTER (WHERE p.entry_type = 'CR'), 0), 2)
		) unbalanced;
	`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, businessID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unbalanced drafts for business "+businessID, err)
	}
	return count, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// EscapeLike makes s match literally inside an ILIKE pattern.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
