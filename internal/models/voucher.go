package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is a row of the vouchers table.
type Voucher struct {
	VoucherID           string     `db:"voucher_id"`
	BusinessID          string     `db:"business_id"`
	VoucherType         string     `db:"voucher_type"`
	VoucherNumber       string     `db:"voucher_number"`
	VoucherDate         time.Time  `db:"voucher_date"`
	Narration           *string    `db:"narration"` // Nullable
	Status              string     `db:"status"`
	IsSystemGenerated   bool       `db:"is_system_generated"`
	ReversalOfVoucherID *string    `db:"reversal_of_voucher_id"`
	PostedAt            *time.Time `db:"posted_at"`
	CancelledAt         *time.Time `db:"cancelled_at"`
	AuditFields

	GrossAmount decimal.Decimal `db:"gross_amount"` // Aggregated on list reads
}

// Posting is a row of the postings table.
type Posting struct {
	PostingID   string          `db:"posting_id"`
	VoucherID   string          `db:"voucher_id"`
	BusinessID  string          `db:"business_id"`
	LineNo      int             `db:"line_no"`
	AccountID   string          `db:"account_id"`
	EntryType   string          `db:"entry_type"`
	Amount      decimal.Decimal `db:"amount"`
	PostingDate time.Time       `db:"posting_date"`
}
