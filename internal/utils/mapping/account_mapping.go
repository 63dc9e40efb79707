package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelAccountGroup converts a domain AccountGroup to a model AccountGroup
func ToModelAccountGroup(d domain.AccountGroup) models.AccountGroup {
	return models.AccountGroup{
		GroupID:       d.GroupID,
		BusinessID:    d.BusinessID,
		Name:          d.Name,
		Code:          d.Code,
		Category:      string(d.Category),
		ParentGroupID: d.ParentGroupID,
		IsSystem:      d.IsSystem,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountGroup converts a model AccountGroup to a domain AccountGroup
func ToDomainAccountGroup(m models.AccountGroup) domain.AccountGroup {
	return domain.AccountGroup{
		GroupID:       m.GroupID,
		BusinessID:    m.BusinessID,
		Name:          m.Name,
		Code:          m.Code,
		Category:      domain.GroupCategory(m.Category),
		ParentGroupID: m.ParentGroupID,
		IsSystem:      m.IsSystem,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountGroupSlice converts a slice of model AccountGroups to domain AccountGroups
func ToDomainAccountGroupSlice(ms []models.AccountGroup) []domain.AccountGroup {
	ds := make([]domain.AccountGroup, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountGroup(m)
	}
	return ds
}

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		BusinessID:         d.BusinessID,
		AccountGroupID:     d.AccountGroupID,
		Code:               d.Code,
		Name:               d.Name,
		NormalBalance:      string(d.NormalBalance),
		OpeningBalance:     d.OpeningBalance,
		OpeningBalanceType: string(d.OpeningBalanceType),
		AuditFields:        ToModelAuditFields(d.AuditFields),
		GroupName:          optionalString(d.GroupName),
		GroupCategory:      optionalString(string(d.GroupCategory)),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		BusinessID:         m.BusinessID,
		AccountGroupID:     m.AccountGroupID,
		Code:               m.Code,
		Name:               m.Name,
		NormalBalance:      domain.EntryType(m.NormalBalance),
		OpeningBalance:     m.OpeningBalance,
		OpeningBalanceType: domain.EntryType(m.OpeningBalanceType),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
		GroupName:          derefString(m.GroupName),
		GroupCategory:      domain.GroupCategory(derefString(m.GroupCategory)),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
