package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	BaseService
	reportingRepo      portsrepo.ReportingRepository
	voucherRepo        portsrepo.VoucherReader
	inventoryRepo      portsrepo.InventoryRepository
	fiscalStartMonth   time.Month
	recentVoucherCount int
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingFiscalYearStartMonth sets the month year-to-date figures start from.
func WithReportingFiscalYearStartMonth(month time.Month) ReportingServiceOption {
	return func(s *reportingService) {
		if month >= time.January && month <= time.December {
			s.fiscalStartMonth = month
		}
	}
}

// WithRecentVoucherCount sets how many vouchers the dashboard lists.
func WithRecentVoucherCount(n int) ReportingServiceOption {
	return func(s *reportingService) {
		if n > 0 {
			s.recentVoucherCount = n
		}
	}
}

// NewReportingService creates a new reporting service
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	voucherRepo portsrepo.VoucherReader,
	inventoryRepo portsrepo.InventoryRepository,
	options ...ReportingServiceOption,
) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo:      reportingRepo,
		voucherRepo:        voucherRepo,
		inventoryRepo:      inventoryRepo,
		fiscalStartMonth:   time.April,
		recentVoucherCount: 10,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func checkRange(from *time.Time, to time.Time) error {
	if from != nil && from.After(to) {
		return fmt.Errorf("%w: from must not be after to", apperrors.ErrValidation)
	}
	return nil
}

func toAccountAmount(a domain.Account, amount decimal.Decimal) domain.AccountAmount {
	return domain.AccountAmount{
		AccountID: a.AccountID,
		Code:      a.Code,
		Name:      a.Name,
		Amount:    amount,
	}
}

// TrialBalance always reports closing figures as of `to`; `from` only bounds the movement columns.
func (s *reportingService) TrialBalance(ctx context.Context, businessID string, from *time.Time, to time.Time) (*domain.TrialBalance, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}
	balances, err := s.reportingRepo.GetAccountBalances(ctx, businessID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate balances for trial balance", slog.String("business_id", businessID))
		return nil, err
	}

	tb := &domain.TrialBalance{
		From:        from,
		To:          to,
		Rows:        make([]domain.TrialBalanceRow, 0, len(balances)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, b := range balances {
		closing := accounting.Round(b.ClosingSigned())
		if closing.IsZero() && b.PeriodDebit.IsZero() && b.PeriodCredit.IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:     b.Account.AccountID,
			Code:          b.Account.Code,
			Name:          b.Account.Name,
			Category:      b.Account.GroupCategory,
			PeriodDebit:   b.PeriodDebit,
			PeriodCredit:  b.PeriodCredit,
			ClosingSigned: closing,
			Debit:         decimal.Zero,
			Credit:        decimal.Zero,
		}
		if closing.IsPositive() {
			row.Debit = closing
		} else {
			row.Credit = closing.Neg()
		}
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
		tb.Rows = append(tb.Rows, row)
	}
	tb.Difference = tb.TotalDebit.Sub(tb.TotalCredit)

	if !tb.IsBalanced() {
		s.GetLogger(ctx).Warn("Trial balance does not agree",
			slog.String("business_id", businessID),
			slog.String("difference", tb.Difference.StringFixed(2)))
	}
	return tb, nil
}

func profitLossFrom(balances []domain.AccountBalance, from, to time.Time) domain.ProfitLoss {
	pl := domain.ProfitLoss{
		From:         from,
		To:           to,
		Income:       []domain.AccountAmount{},
		Expenses:     []domain.AccountAmount{},
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, b := range balances {
		movement := b.PeriodMovement()
		switch b.Account.GroupCategory {
		case domain.Income:
			amount := movement.Neg()
			pl.TotalIncome = pl.TotalIncome.Add(amount)
			if !amount.IsZero() {
				pl.Income = append(pl.Income, toAccountAmount(b.Account, amount))
			}
		case domain.Expense:
			pl.TotalExpense = pl.TotalExpense.Add(movement)
			if !movement.IsZero() {
				pl.Expenses = append(pl.Expenses, toAccountAmount(b.Account, movement))
			}
		}
	}
	pl.NetProfit = pl.TotalIncome.Sub(pl.TotalExpense)
	return pl
}

func (s *reportingService) profitLoss(ctx context.Context, businessID string, from, to time.Time) (domain.ProfitLoss, error) {
	if err := checkRange(&from, to); err != nil {
		return domain.ProfitLoss{}, err
	}
	balances, err := s.reportingRepo.GetAccountBalances(ctx, businessID, &from, to)
	if err != nil {
		return domain.ProfitLoss{}, err
	}
	return profitLossFrom(balances, from, to), nil
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, businessID string, from, to time.Time, compareFrom, compareTo *time.Time) (*domain.ProfitLossComparison, error) {
	if (compareFrom == nil) != (compareTo == nil) {
		return nil, fmt.Errorf("%w: compareFrom and compareTo must be given together", apperrors.ErrValidation)
	}

	current, err := s.profitLoss(ctx, businessID, from, to)
	if err != nil {
		s.logFailure(ctx, err, "Failed to build profit and loss", slog.String("business_id", businessID))
		return nil, err
	}
	result := &domain.ProfitLossComparison{Current: current}
	if compareFrom == nil {
		return result, nil
	}

	comparison, err := s.profitLoss(ctx, businessID, *compareFrom, *compareTo)
	if err != nil {
		s.logFailure(ctx, err, "Failed to build comparison profit and loss", slog.String("business_id", businessID))
		return nil, err
	}
	change := current.NetProfit.Sub(comparison.NetProfit)
	result.Comparison = &comparison
	result.NetProfitChange = &change
	return result, nil
}

func balanceSheetFrom(balances []domain.AccountBalance, asOf time.Time) domain.BalanceSheet {
	bs := domain.BalanceSheet{
		AsOf:                      asOf,
		Assets:                    []domain.AccountAmount{},
		Liabilities:               []domain.AccountAmount{},
		Equity:                    []domain.AccountAmount{},
		TotalAssets:               decimal.Zero,
		TotalLiabilitiesAndEquity: decimal.Zero,
	}
	for _, b := range balances {
		closing := accounting.Round(b.ClosingSigned())
		if closing.IsZero() {
			continue
		}
		category := b.Account.GroupCategory
		switch {
		case category.IsAsset():
			bs.Assets = append(bs.Assets, toAccountAmount(b.Account, closing))
			bs.TotalAssets = bs.TotalAssets.Add(closing)
		case category == domain.Liability:
			bs.Liabilities = append(bs.Liabilities, toAccountAmount(b.Account, closing.Abs()))
			bs.TotalLiabilitiesAndEquity = bs.TotalLiabilitiesAndEquity.Add(closing.Abs())
		case category == domain.Equity:
			bs.Equity = append(bs.Equity, toAccountAmount(b.Account, closing.Abs()))
			bs.TotalLiabilitiesAndEquity = bs.TotalLiabilitiesAndEquity.Add(closing.Abs())
		}
	}
	bs.Difference = bs.TotalAssets.Sub(bs.TotalLiabilitiesAndEquity)
	return bs
}

func (s *reportingService) BalanceSheet(ctx context.Context, businessID string, asOf time.Time) (*domain.BalanceSheet, error) {
	balances, err := s.reportingRepo.GetAccountBalances(ctx, businessID, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate balances for balance sheet", slog.String("business_id", businessID))
		return nil, err
	}
	bs := balanceSheetFrom(balances, asOf)
	return &bs, nil
}

func (s *reportingService) DashboardSummary(ctx context.Context, businessID string, asOf time.Time) (*domain.DashboardSummary, error) {
	logger := s.GetLogger(ctx).With(slog.String("business_id", businessID))

	closing, err := s.reportingRepo.GetAccountBalances(ctx, businessID, nil, asOf)
	if err != nil {
		logger.Error("Failed to aggregate closing balances", slog.String("error", err.Error()))
		return nil, err
	}
	mtd, err := s.profitLoss(ctx, businessID, domain.MonthStart(asOf), asOf)
	if err != nil {
		logger.Error("Failed to compute month-to-date profit", slog.String("error", err.Error()))
		return nil, err
	}
	ytd, err := s.profitLoss(ctx, businessID, domain.FiscalYearStart(asOf, s.fiscalStartMonth), asOf)
	if err != nil {
		logger.Error("Failed to compute year-to-date profit", slog.String("error", err.Error()))
		return nil, err
	}
	stock, err := s.inventoryRepo.GetStockSummary(ctx, businessID, asOf)
	if err != nil {
		logger.Error("Failed to summarise stock", slog.String("error", err.Error()))
		return nil, err
	}
	unbalanced, err := s.voucherRepo.CountUnbalancedDrafts(ctx, businessID)
	if err != nil {
		logger.Error("Failed to count unbalanced drafts", slog.String("error", err.Error()))
		return nil, err
	}
	recent, _, err := s.voucherRepo.ListVouchers(ctx, domain.VoucherFilter{
		BusinessID: businessID,
		Limit:      s.recentVoucherCount,
	})
	if err != nil {
		logger.Error("Failed to list recent vouchers", slog.String("error", err.Error()))
		return nil, err
	}
	if recent == nil {
		recent = []domain.Voucher{}
	}

	kpis := domain.DashboardKPIs{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		Equity:           decimal.Zero,
		CashBankBalance:  decimal.Zero,
		NetProfitMTD:     mtd.NetProfit,
		NetProfitYTD:     ytd.NetProfit,
		TotalStockValue:  stock.TotalValue,
		TotalUniqueItems: stock.UniqueItems,
	}
	var alerts domain.DashboardAlerts
	alerts.UnbalancedDrafts = unbalanced

	for _, b := range closing {
		balance := accounting.Round(b.ClosingSigned())
		category := b.Account.GroupCategory
		switch {
		case category.IsAsset():
			kpis.TotalAssets = kpis.TotalAssets.Add(balance)
		case category == domain.Liability:
			kpis.TotalLiabilities = kpis.TotalLiabilities.Add(balance.Abs())
		case category == domain.Equity:
			kpis.Equity = kpis.Equity.Add(balance.Abs())
		}
		if accounting.IsCashOrBank(b.Account.Name) {
			kpis.CashBankBalance = kpis.CashBankBalance.Add(balance)
			if balance.IsNegative() {
				alerts.NegativeCashLedgers++
			}
		}
		if !b.Account.HasGroup() {
			alerts.MissingLedgerMappings++
		}
	}

	logger.Debug("Dashboard summary built",
		slog.Int("accounts", len(closing)),
		slog.Int64("unbalanced_drafts", alerts.UnbalancedDrafts))

	return &domain.DashboardSummary{
		AsOf:           asOf,
		KPIs:           kpis,
		Alerts:         alerts,
		RecentVouchers: recent,
	}, nil
}
