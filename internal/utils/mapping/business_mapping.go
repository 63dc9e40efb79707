package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelBusiness converts a domain Business to a model Business
func ToModelBusiness(d domain.Business) models.Business {
	return models.Business{
		BusinessID:         d.BusinessID,
		Name:               d.Name,
		FinancialYearStart: d.FinancialYearStart,
		IsInitialized:      d.IsInitialized,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBusiness converts a model Business to a domain Business
func ToDomainBusiness(m models.Business) domain.Business {
	return domain.Business{
		BusinessID:         m.BusinessID,
		Name:               m.Name,
		FinancialYearStart: m.FinancialYearStart,
		IsInitialized:      m.IsInitialized,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
