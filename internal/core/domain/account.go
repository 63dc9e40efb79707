package domain

import (
	"github.com/shopspring/decimal"
)

// GroupCategory is the reporting category an account group belongs to.
type GroupCategory string

const (
	CurrentAsset GroupCategory = "CURRENT_ASSET"
	FixedAsset   GroupCategory = "FIXED_ASSET"
	Liability    GroupCategory = "LIABILITY"
	Income       GroupCategory = "INCOME"
	Expense      GroupCategory = "EXPENSE"
	Equity       GroupCategory = "EQUITY"
)

// IsValid reports whether c is one of the six known categories.
func (c GroupCategory) IsValid() bool {
	switch c {
	case CurrentAsset, FixedAsset, Liability, Income, Expense, Equity:
		return true
	}
	return false
}

// IsAsset reports whether the category lands on the asset side of the balance sheet.
func (c GroupCategory) IsAsset() bool {
	return c == CurrentAsset || c == FixedAsset
}

// NormalBalance returns the side on which accounts of this category usually carry a balance.
func (c GroupCategory) NormalBalance() EntryType {
	switch c {
	case Liability, Income, Equity:
		return Credit
	default:
		return Debit
	}
}

// AccountGroup classifies accounts. Code is unique per business.
type AccountGroup struct {
	GroupID       string        `json:"groupID"`
	BusinessID    string        `json:"businessID"`
	Name          string        `json:"name"`
	Code          string        `json:"code"`
	Category      GroupCategory `json:"category"`
	ParentGroupID *string       `json:"parentGroupID,omitempty"`
	IsSystem      bool          `json:"isSystem"`
	AuditFields
}

// SystemGroups is the canonical chart seeded once per business.
var SystemGroups = []AccountGroup{
	{Name: "Current Assets", Code: "CA", Category: CurrentAsset, IsSystem: true},
	{Name: "Fixed Assets", Code: "FA", Category: FixedAsset, IsSystem: true},
	{Name: "Liabilities", Code: "LI", Category: Liability, IsSystem: true},
	{Name: "Income", Code: "IN", Category: Income, IsSystem: true},
	{Name: "Expenses", Code: "EX", Category: Expense, IsSystem: true},
	{Name: "Capital", Code: "EQ", Category: Equity, IsSystem: true},
}

// Account is a ledger within a business. Code is unique per business.
type Account struct {
	AccountID          string          `json:"accountID"`
	BusinessID         string          `json:"businessID"`
	AccountGroupID     string          `json:"accountGroupID"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	NormalBalance      EntryType       `json:"normalBalance"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceType EntryType       `json:"openingBalanceType"`
	AuditFields

	// Populated by joined reads.
	GroupName     string        `json:"groupName,omitempty"`
	GroupCategory GroupCategory `json:"groupCategory,omitempty"`
}

// SignedOpeningBalance returns the opening balance with debits positive and credits negative.
func (a Account) SignedOpeningBalance() decimal.Decimal {
	return SignedAmount(a.OpeningBalanceType, a.OpeningBalance)
}

// HasGroup reports whether the account resolved to a known group on read.
func (a Account) HasGroup() bool {
	return a.GroupCategory != ""
}
