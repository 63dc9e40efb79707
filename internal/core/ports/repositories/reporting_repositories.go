package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetAccountBalances returns one aggregate per account of the business: posted
	// movement before `from` and period debit/credit for [from, to]. A nil from
	// makes every posting up to `to` part of the period.
	GetAccountBalances(ctx context.Context, businessID string, from *time.Time, to time.Time) ([]domain.AccountBalance, error)
}
