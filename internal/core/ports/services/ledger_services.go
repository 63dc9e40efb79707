package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvc computes account balances from posted postings
type LedgerSvc interface {
	// OpeningBalance is the signed opening balance plus movement dated before asOfExclusive.
	// A nil asOfExclusive yields the account's own opening balance.
	OpeningBalance(ctx context.Context, businessID, accountID string, asOfExclusive *time.Time) (decimal.Decimal, error)

	// Statement returns the lines in [from, to] with running balances.
	Statement(ctx context.Context, businessID, accountID string, from, to *time.Time) (*domain.LedgerStatement, error)

	// ClosingBalance is the running balance after the last posting dated on or before `to`.
	ClosingBalance(ctx context.Context, businessID, accountID string, to time.Time) (decimal.Decimal, error)
}
