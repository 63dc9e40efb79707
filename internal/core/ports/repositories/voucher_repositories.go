package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// VoucherReader defines read operations for voucher data
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher header with its postings ordered by line number.
	FindVoucherByID(ctx context.Context, businessID, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves a filtered page of vouchers with gross amounts and the total match count.
	ListVouchers(ctx context.Context, filter domain.VoucherFilter) ([]domain.Voucher, int64, error)

	// ListDaybook retrieves the non-cancelled vouchers dated on day with their side totals.
	ListDaybook(ctx context.Context, businessID string, day time.Time) ([]domain.DaybookEntry, error)

	// CountUnbalancedDrafts counts DRAFT vouchers whose postings do not balance.
	CountUnbalancedDrafts(ctx context.Context, businessID string) (int64, error)
}

// VoucherWriter defines write operations for voucher data. All writes run inside the caller's tx.
type VoucherWriter interface {
	// FindVoucherByIDForUpdate reads and row-locks a voucher with its postings.
	FindVoucherByIDForUpdate(ctx context.Context, tx pgx.Tx, businessID, voucherID string) (*domain.Voucher, error)

	// SaveVoucher inserts the header and every posting.
	SaveVoucher(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error

	// UpdateVoucherHeader rewrites type, number, date and narration.
	UpdateVoucherHeader(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error

	// ReplacePostings deletes the voucher's postings and inserts the new set.
	ReplacePostings(ctx context.Context, tx pgx.Tx, voucherID string, postings []domain.Posting) error

	// UpdateVoucherStatus moves a voucher to status, stamping posted_at or cancelled_at.
	UpdateVoucherStatus(ctx context.Context, tx pgx.Tx, voucherID string, status domain.VoucherStatus, userID string, now time.Time) error

	// DeleteVoucher removes the header and its postings.
	DeleteVoucher(ctx context.Context, tx pgx.Tx, businessID, voucherID string) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}
