package dto

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountGroupID     string           `json:"accountGroupId" binding:"required"`
	Code               string           `json:"code" binding:"required,max=50"`
	Name               string           `json:"name" binding:"required,max=200"`
	NormalBalance      string           `json:"normalBalance" binding:"required,oneof=DR CR"`
	OpeningBalance     *decimal.Decimal `json:"openingBalance,omitempty"`
	OpeningBalanceType string           `json:"openingBalanceType,omitempty" binding:"omitempty,oneof=DR CR"`
}

// AccountGroupResponse defines the data returned for a group.
type AccountGroupResponse struct {
	GroupID       string  `json:"groupId"`
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Category      string  `json:"category"`
	ParentGroupID *string `json:"parentGroupId,omitempty"`
	IsSystem      bool    `json:"isSystem"`
}

// BootstrapGroupsResponse reports how many system groups were newly created.
type BootstrapGroupsResponse struct {
	Inserted int64                  `json:"inserted"`
	Groups   []AccountGroupResponse `json:"groups"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID          string          `json:"accountId"`
	AccountGroupID     string          `json:"accountGroupId"`
	GroupName          string          `json:"groupName"`
	GroupCategory      string          `json:"groupCategory"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	NormalBalance      string          `json:"normalBalance"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceType string          `json:"openingBalanceType"`
}

// ListAccountsResponse wraps the accounts of a business.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

func ToAccountGroupResponse(g domain.AccountGroup) AccountGroupResponse {
	return AccountGroupResponse{
		GroupID:       g.GroupID,
		Name:          g.Name,
		Code:          g.Code,
		Category:      string(g.Category),
		ParentGroupID: g.ParentGroupID,
		IsSystem:      g.IsSystem,
	}
}

func ToAccountGroupResponses(groups []domain.AccountGroup) []AccountGroupResponse {
	out := make([]AccountGroupResponse, len(groups))
	for i, g := range groups {
		out[i] = ToAccountGroupResponse(g)
	}
	return out
}

func ToAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          a.AccountID,
		AccountGroupID:     a.AccountGroupID,
		GroupName:          a.GroupName,
		GroupCategory:      string(a.GroupCategory),
		Code:               a.Code,
		Name:               a.Name,
		NormalBalance:      string(a.NormalBalance),
		OpeningBalance:     a.OpeningBalance,
		OpeningBalanceType: string(a.OpeningBalanceType),
	}
}

func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	out := ListAccountsResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i, a := range accounts {
		out.Accounts[i] = ToAccountResponse(a)
	}
	return out
}
