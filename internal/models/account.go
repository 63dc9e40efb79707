package models

import (
	"github.com/shopspring/decimal"
)

// AccountGroup is a row of the account_groups table.
type AccountGroup struct {
	GroupID       string  `db:"account_group_id"`
	BusinessID    string  `db:"business_id"`
	Name          string  `db:"name"`
	Code          string  `db:"code"`
	Category      string  `db:"category"`
	ParentGroupID *string `db:"parent_group_id"` // Nullable
	IsSystem      bool    `db:"is_system"`
	AuditFields
}

// Account is a row of the accounts table. GroupName and GroupCategory are
// filled from a LEFT JOIN and stay nil when the group row is missing.
type Account struct {
	AccountID          string          `db:"account_id"`
	BusinessID         string          `db:"business_id"`
	AccountGroupID     string          `db:"account_group_id"`
	Code               string          `db:"code"`
	Name               string          `db:"name"`
	NormalBalance      string          `db:"normal_balance"`
	OpeningBalance     decimal.Decimal `db:"opening_balance"`
	OpeningBalanceType string          `db:"opening_balance_type"`
	AuditFields

	GroupName     *string `db:"group_name"`
	GroupCategory *string `db:"group_category"`
}
