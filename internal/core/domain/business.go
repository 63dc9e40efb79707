package domain

import "time"

// Business is the tenant boundary. Ordinary voucher mutations are blocked
// until IsInitialized is flipped by the opening position workflow.
type Business struct {
	BusinessID         string    `json:"businessID"`
	Name               string    `json:"name"`
	FinancialYearStart time.Time `json:"financialYearStart"`
	IsInitialized      bool      `json:"isInitialized"`
	AuditFields
}

// BusinessRole is the role the auth collaborator grants a caller inside a business.
type BusinessRole string

const (
	RoleOwner      BusinessRole = "OWNER"
	RoleManager    BusinessRole = "MANAGER"
	RoleAccountant BusinessRole = "ACCOUNTANT"
	RoleViewer     BusinessRole = "VIEWER"
)

// CanWrite reports whether the role may mutate accounting data.
func (r BusinessRole) CanWrite() bool {
	switch r {
	case RoleOwner, RoleManager, RoleAccountant:
		return true
	default:
		return false
	}
}

// IntegrityReport counts the accounting rows a business owns.
type IntegrityReport struct {
	BusinessID    string `json:"businessID"`
	AccountCount  int64  `json:"accounts"`
	VoucherCount  int64  `json:"vouchers"`
	PostingCount  int64  `json:"postings"`
	IsInitialized bool   `json:"isInitialized"`
}

// IsClean is true when nothing has been recorded for the business yet.
func (r IntegrityReport) IsClean() bool {
	return r.AccountCount == 0 && r.VoucherCount == 0 && r.PostingCount == 0
}

// FiscalYearStart returns the first day of the fiscal year containing t,
// for a fiscal year beginning on the first of startMonth.
func FiscalYearStart(t time.Time, startMonth time.Month) time.Time {
	year := t.Year()
	if t.Month() < startMonth {
		year--
	}
	return time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
