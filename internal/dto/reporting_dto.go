package dto

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/shopspring/decimal"
)

// ReportPeriodParams are the query parameters of period reports.
type ReportPeriodParams struct {
	From        string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To          string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	CompareFrom string `form:"compareFrom" binding:"omitempty,datetime=2006-01-02"`
	CompareTo   string `form:"compareTo" binding:"omitempty,datetime=2006-01-02"`
}

// AsOfParams are the query parameters of point-in-time reports.
type AsOfParams struct {
	AsOf string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID    string          `json:"accountId"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	PeriodDebit  decimal.Decimal `json:"periodDebit"`
	PeriodCredit decimal.Decimal `json:"periodCredit"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	From   *string                   `json:"from,omitempty"`
	To     string                    `json:"to"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit      decimal.Decimal `json:"debit"`
		Credit     decimal.Decimal `json:"credit"`
		Difference decimal.Decimal `json:"difference"`
		IsBalanced bool            `json:"isBalanced"`
	} `json:"totals"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string          `json:"accountId"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse represents the profit and loss report for one period
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Income   []AccountAmountResponse `json:"income"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalIncome   decimal.Decimal `json:"totalIncome"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

// ProfitAndLossComparisonResponse adds an optional comparison period
type ProfitAndLossComparisonResponse struct {
	Current         ProfitAndLossResponse  `json:"current"`
	Comparison      *ProfitAndLossResponse `json:"comparison,omitempty"`
	NetProfitChange *decimal.Decimal       `json:"netProfitChange,omitempty"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets               decimal.Decimal `json:"totalAssets"`
		TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
		Difference                decimal.Decimal `json:"difference"`
	} `json:"summary"`
}

// DashboardKPIResponse carries raw and display values side by side
type DashboardKPIResponse struct {
	TotalAssets      decimal.Decimal   `json:"totalAssets"`
	TotalLiabilities decimal.Decimal   `json:"totalLiabilities"`
	Equity           decimal.Decimal   `json:"equity"`
	CashBankBalance  decimal.Decimal   `json:"cashBankBalance"`
	NetProfitMTD     decimal.Decimal   `json:"netProfitMtd"`
	NetProfitYTD     decimal.Decimal   `json:"netProfitYtd"`
	TotalStockValue  decimal.Decimal   `json:"totalStockValue"`
	TotalUniqueItems int64             `json:"totalUniqueItems"`
	Display          map[string]string `json:"display"`
}

// DashboardSummaryResponse is the dashboard payload
type DashboardSummaryResponse struct {
	AsOf           string                 `json:"asOf"`
	Currency       string                 `json:"currency"`
	KPIs           DashboardKPIResponse   `json:"kpis"`
	Alerts         domain.DashboardAlerts `json:"alerts"`
	RecentVouchers []VoucherResponse      `json:"recentVouchers"`
}

func toAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(amounts))
	for i, a := range amounts {
		out[i] = AccountAmountResponse{AccountID: a.AccountID, Code: a.Code, Name: a.Name, Amount: a.Amount}
	}
	return out
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		From: formatOptionalDate(tb.From),
		To:   tb.To.Format(domain.DateLayout),
		Rows: make([]TrialBalanceRowResponse, len(tb.Rows)),
	}
	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:    row.AccountID,
			Code:         row.Code,
			Name:         row.Name,
			Category:     string(row.Category),
			PeriodDebit:  row.PeriodDebit,
			PeriodCredit: row.PeriodCredit,
			Debit:        row.Debit,
			Credit:       row.Credit,
		}
	}
	response.Totals.Debit = tb.TotalDebit
	response.Totals.Credit = tb.TotalCredit
	response.Totals.Difference = tb.Difference
	response.Totals.IsBalanced = tb.IsBalanced()
	return response
}

// ToProfitAndLossResponse converts a domain P&L to a DTO response
func ToProfitAndLossResponse(pl domain.ProfitLoss) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		FromDate: pl.From.Format(domain.DateLayout),
		ToDate:   pl.To.Format(domain.DateLayout),
		Income:   toAccountAmountResponses(pl.Income),
		Expenses: toAccountAmountResponses(pl.Expenses),
	}
	response.Summary.TotalIncome = pl.TotalIncome
	response.Summary.TotalExpenses = pl.TotalExpense
	response.Summary.NetProfit = pl.NetProfit
	return response
}

func ToProfitAndLossComparisonResponse(c domain.ProfitLossComparison) ProfitAndLossComparisonResponse {
	resp := ProfitAndLossComparisonResponse{
		Current:         ToProfitAndLossResponse(c.Current),
		NetProfitChange: c.NetProfitChange,
	}
	if c.Comparison != nil {
		cmp := ToProfitAndLossResponse(*c.Comparison)
		resp.Comparison = &cmp
	}
	return resp
}

// ToBalanceSheetResponse converts a domain balance sheet to a DTO response
func ToBalanceSheetResponse(bs domain.BalanceSheet) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        bs.AsOf.Format(domain.DateLayout),
		Assets:      toAccountAmountResponses(bs.Assets),
		Liabilities: toAccountAmountResponses(bs.Liabilities),
		Equity:      toAccountAmountResponses(bs.Equity),
	}
	response.Summary.TotalAssets = bs.TotalAssets
	response.Summary.TotalLiabilitiesAndEquity = bs.TotalLiabilitiesAndEquity
	response.Summary.Difference = bs.Difference
	return response
}

// ToDashboardSummaryResponse formats KPI display strings in currencyCode.
func ToDashboardSummaryResponse(s domain.DashboardSummary, currencyCode string) DashboardSummaryResponse {
	k := s.KPIs
	return DashboardSummaryResponse{
		AsOf:     s.AsOf.Format(domain.DateLayout),
		Currency: currencyCode,
		KPIs: DashboardKPIResponse{
			TotalAssets:      k.TotalAssets,
			TotalLiabilities: k.TotalLiabilities,
			Equity:           k.Equity,
			CashBankBalance:  k.CashBankBalance,
			NetProfitMTD:     k.NetProfitMTD,
			NetProfitYTD:     k.NetProfitYTD,
			TotalStockValue:  k.TotalStockValue,
			TotalUniqueItems: k.TotalUniqueItems,
			Display: map[string]string{
				"totalAssets":      utils.FormatMoney(k.TotalAssets, currencyCode),
				"totalLiabilities": utils.FormatMoney(k.TotalLiabilities, currencyCode),
				"equity":           utils.FormatMoney(k.Equity, currencyCode),
				"cashBankBalance":  utils.FormatMoney(k.CashBankBalance, currencyCode),
				"netProfitMtd":     utils.FormatMoney(k.NetProfitMTD, currencyCode),
				"netProfitYtd":     utils.FormatMoney(k.NetProfitYTD, currencyCode),
				"totalStockValue":  utils.FormatMoney(k.TotalStockValue, currencyCode),
			},
		},
		Alerts:         s.Alerts,
		RecentVouchers: ToVoucherResponses(s.RecentVouchers),
	}
}
