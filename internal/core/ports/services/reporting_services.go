package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance splits every account's closing balance as of `to` into debit and credit columns.
	TrialBalance(ctx context.Context, businessID string, from *time.Time, to time.Time) (*domain.TrialBalance, error)

	// ProfitAndLoss reports income and expense movement for a period, optionally against a comparison period.
	ProfitAndLoss(ctx context.Context, businessID string, from, to time.Time, compareFrom, compareTo *time.Time) (*domain.ProfitLossComparison, error)

	// BalanceSheet reports the accounting equation as of a date.
	BalanceSheet(ctx context.Context, businessID string, asOf time.Time) (*domain.BalanceSheet, error)

	// DashboardSummary bundles KPIs, alerts and recent vouchers as of a date.
	DashboardSummary(ctx context.Context, businessID string, asOf time.Time) (*domain.DashboardSummary, error)
}
