package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the per-account aggregate every report is derived from.
// MovementBefore covers postings dated before the period start; the period
// columns cover postings inside it.
type AccountBalance struct {
	Account        Account         `json:"account"`
	MovementBefore decimal.Decimal `json:"movementBefore"`
	PeriodDebit    decimal.Decimal `json:"periodDebit"`
	PeriodCredit   decimal.Decimal `json:"periodCredit"`
}

// PeriodMovement is the signed movement inside the period.
func (b AccountBalance) PeriodMovement() decimal.Decimal {
	return b.PeriodDebit.Sub(b.PeriodCredit)
}

// ClosingSigned is the signed balance at the end of the period.
func (b AccountBalance) ClosingSigned() decimal.Decimal {
	return b.Account.SignedOpeningBalance().Add(b.MovementBefore).Add(b.PeriodMovement())
}

// TrialBalanceRow is one account in a trial balance.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      GroupCategory   `json:"category"`
	PeriodDebit   decimal.Decimal `json:"periodDebit"`
	PeriodCredit  decimal.Decimal `json:"periodCredit"`
	ClosingSigned decimal.Decimal `json:"closingSigned"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalance lists closing balances split into debit and credit columns.
type TrialBalance struct {
	From        *time.Time        `json:"from,omitempty"`
	To          time.Time         `json:"to"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Difference  decimal.Decimal   `json:"difference"`
}

// IsBalanced reports whether the debit and credit columns agree.
func (t TrialBalance) IsBalanced() bool {
	return t.Difference.IsZero()
}

// AccountAmount is an account with a report amount.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitLoss is income against expense for a period.
type ProfitLoss struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Income       []AccountAmount `json:"income"`
	Expenses     []AccountAmount `json:"expenses"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}

// ProfitLossComparison pairs a period with an optional comparison period.
type ProfitLossComparison struct {
	Current         ProfitLoss       `json:"current"`
	Comparison      *ProfitLoss      `json:"comparison,omitempty"`
	NetProfitChange *decimal.Decimal `json:"netProfitChange,omitempty"`
}

// BalanceSheet is the accounting equation as of a date.
type BalanceSheet struct {
	AsOf                      time.Time       `json:"asOf"`
	Assets                    []AccountAmount `json:"assets"`
	Liabilities               []AccountAmount `json:"liabilities"`
	Equity                    []AccountAmount `json:"equity"`
	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
	Difference                decimal.Decimal `json:"difference"`
}

// DashboardKPIs are the headline figures of a business as of a date.
type DashboardKPIs struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	Equity           decimal.Decimal `json:"equity"`
	CashBankBalance  decimal.Decimal `json:"cashBankBalance"`
	NetProfitMTD     decimal.Decimal `json:"netProfitMtd"`
	NetProfitYTD     decimal.Decimal `json:"netProfitYtd"`
	TotalStockValue  decimal.Decimal `json:"totalStockValue"`
	TotalUniqueItems int64           `json:"totalUniqueItems"`
}

// DashboardAlerts count conditions that need attention.
type DashboardAlerts struct {
	UnbalancedDrafts      int64 `json:"unbalancedDrafts"`
	NegativeCashLedgers   int64 `json:"negativeCashLedgers"`
	MissingLedgerMappings int64 `json:"missingLedgerMappings"`
}

// DashboardSummary bundles KPIs, alerts and the latest vouchers.
type DashboardSummary struct {
	AsOf           time.Time       `json:"asOf"`
	KPIs           DashboardKPIs   `json:"kpis"`
	Alerts         DashboardAlerts `json:"alerts"`
	RecentVouchers []Voucher       `json:"recentVouchers"`
}
