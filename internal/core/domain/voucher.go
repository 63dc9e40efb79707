package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the side of a posting.
type EntryType string

const (
	Debit  EntryType = "DR"
	Credit EntryType = "CR"
)

// IsValid reports whether e is DR or CR.
func (e EntryType) IsValid() bool {
	return e == Debit || e == Credit
}

// Opposite flips DR to CR and back.
func (e EntryType) Opposite() EntryType {
	if e == Debit {
		return Credit
	}
	return Debit
}

// SignedAmount applies the ledger sign convention: debits positive, credits negative.
func SignedAmount(entryType EntryType, amount decimal.Decimal) decimal.Decimal {
	if entryType == Credit {
		return amount.Neg()
	}
	return amount
}

// VoucherType identifies the business document a voucher represents.
type VoucherType string

const (
	VoucherJournal  VoucherType = "JOURNAL"
	VoucherPayment  VoucherType = "PAYMENT"
	VoucherReceipt  VoucherType = "RECEIPT"
	VoucherSales    VoucherType = "SALES"
	VoucherPurchase VoucherType = "PURCHASE"
	VoucherContra   VoucherType = "CONTRA"
)

// IsValid reports whether t is a known voucher type.
func (t VoucherType) IsValid() bool {
	switch t {
	case VoucherJournal, VoucherPayment, VoucherReceipt, VoucherSales, VoucherPurchase, VoucherContra:
		return true
	}
	return false
}

// VoucherStatus is the lifecycle state of a voucher.
type VoucherStatus string

const (
	StatusDraft     VoucherStatus = "DRAFT"
	StatusPosted    VoucherStatus = "POSTED"
	StatusCancelled VoucherStatus = "CANCELLED"
)

// VoucherMode selects the state a new voucher is created in.
type VoucherMode string

const (
	ModeDraft VoucherMode = "DRAFT"
	ModePost  VoucherMode = "POST"
)

// Voucher is the header of a balanced set of postings.
type Voucher struct {
	VoucherID           string        `json:"voucherID"`
	BusinessID          string        `json:"businessID"`
	VoucherType         VoucherType   `json:"voucherType"`
	VoucherNumber       string        `json:"voucherNumber"`
	VoucherDate         time.Time     `json:"voucherDate"`
	Narration           string        `json:"narration"`
	Status              VoucherStatus `json:"status"`
	IsSystemGenerated   bool          `json:"isSystemGenerated"`
	ReversalOfVoucherID *string       `json:"reversalOfVoucherID,omitempty"`
	PostedAt            *time.Time    `json:"postedAt,omitempty"`
	CancelledAt         *time.Time    `json:"cancelledAt,omitempty"`
	AuditFields

	Postings []Posting `json:"postings,omitempty"`

	// GrossAmount is the sum of all posting amounts; filled by list reads.
	GrossAmount decimal.Decimal `json:"grossAmount"`
}

// IsEditable is true while the voucher may still be changed or deleted.
func (v Voucher) IsEditable() bool {
	return v.Status == StatusDraft
}

// CanPost is true for the DRAFT -> POSTED transition.
func (v Voucher) CanPost() bool {
	return v.Status == StatusDraft
}

// CanCancel is true for DRAFT|POSTED -> CANCELLED.
func (v Voucher) CanCancel() bool {
	return v.Status == StatusDraft || v.Status == StatusPosted
}

// CanReverse is true only for posted vouchers.
func (v Voucher) CanReverse() bool {
	return v.Status == StatusPosted
}

// Posting is one leg of a voucher.
type Posting struct {
	PostingID   string          `json:"postingID"`
	VoucherID   string          `json:"voucherID"`
	BusinessID  string          `json:"businessID"`
	LineNo      int             `json:"lineNo"`
	AccountID   string          `json:"accountID"`
	EntryType   EntryType       `json:"entryType"`
	Amount      decimal.Decimal `json:"amount"`
	PostingDate time.Time       `json:"postingDate"`
}

// Signed returns the posting amount with the ledger sign applied.
func (p Posting) Signed() decimal.Decimal {
	return SignedAmount(p.EntryType, p.Amount)
}

// VoucherFilter narrows ListVouchers.
type VoucherFilter struct {
	BusinessID string
	From       *time.Time
	To         *time.Time
	Type       *VoucherType
	Status     *VoucherStatus
	Search     string
	Limit      int
	Offset     int
}

// DaybookEntry is one voucher of a day with its side totals.
type DaybookEntry struct {
	VoucherID     string          `json:"voucherID"`
	VoucherType   VoucherType     `json:"voucherType"`
	VoucherNumber string          `json:"voucherNumber"`
	VoucherDate   time.Time       `json:"voucherDate"`
	Narration     string          `json:"narration"`
	Status        VoucherStatus   `json:"status"`
	DebitTotal    decimal.Decimal `json:"debitTotal"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
}
