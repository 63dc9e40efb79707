package dto

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateBusinessRequest opens a new tenant. FinancialYearStart defaults to
// the start of the current fiscal year.
type CreateBusinessRequest struct {
	Name               string  `json:"name" binding:"required,min=1,max=200"`
	FinancialYearStart *string `json:"financialYearStart,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// BusinessResponse is the status view of a business.
type BusinessResponse struct {
	BusinessID         string `json:"businessId"`
	Name               string `json:"name"`
	FinancialYearStart string `json:"financialYearStart"`
	IsInitialized      bool   `json:"isInitialized"`
}

// IntegrityResponse reports what a business has recorded so far.
type IntegrityResponse struct {
	BusinessID    string `json:"businessId"`
	Accounts      int64  `json:"accounts"`
	Vouchers      int64  `json:"vouchers"`
	Postings      int64  `json:"postings"`
	IsInitialized bool   `json:"isInitialized"`
	IsClean       bool   `json:"isClean"`
}

func ToBusinessResponse(b domain.Business) BusinessResponse {
	return BusinessResponse{
		BusinessID:         b.BusinessID,
		Name:               b.Name,
		FinancialYearStart: b.FinancialYearStart.Format(domain.DateLayout),
		IsInitialized:      b.IsInitialized,
	}
}

func ToIntegrityResponse(r domain.IntegrityReport) IntegrityResponse {
	return IntegrityResponse{
		BusinessID:    r.BusinessID,
		Accounts:      r.AccountCount,
		Vouchers:      r.VoucherCount,
		Postings:      r.PostingCount,
		IsInitialized: r.IsInitialized,
		IsClean:       r.IsClean(),
	}
}
