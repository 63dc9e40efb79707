package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is a posting as it appears on an account statement.
type LedgerLine struct {
	PostingID      string          `json:"postingID"`
	VoucherID      string          `json:"voucherID"`
	VoucherType    VoucherType     `json:"voucherType"`
	VoucherNumber  string          `json:"voucherNumber"`
	Narration      string          `json:"narration"`
	TxnDate        time.Time       `json:"txnDate"`
	EntryType      EntryType       `json:"entryType"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// Signed returns the line amount with debits positive.
func (l LedgerLine) Signed() decimal.Decimal {
	return SignedAmount(l.EntryType, l.Amount)
}

// LedgerStatement is an account's activity over a date range.
type LedgerStatement struct {
	Account        Account         `json:"account"`
	From           *time.Time      `json:"from,omitempty"`
	To             *time.Time      `json:"to,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Lines          []LedgerLine    `json:"lines"`
}
