package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository reads posted postings for account statements.
type LedgerRepository interface {
	// SumMovementBefore returns the signed movement of posted postings dated strictly before `before`.
	SumMovementBefore(ctx context.Context, businessID, accountID string, before time.Time) (decimal.Decimal, error)

	// FindLedgerLines returns the posted postings of an account in the optional [from, to] range.
	// RunningBalance is left zero; callers compute it.
	FindLedgerLines(ctx context.Context, businessID, accountID string, from, to *time.Time) ([]domain.LedgerLine, error)
}
