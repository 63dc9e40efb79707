package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// ListGroups retrieves the account groups of a business.
	ListGroups(ctx context.Context, businessID string) ([]domain.AccountGroup, error)

	// ListAccounts retrieves the accounts of a business ordered by code.
	ListAccounts(ctx context.Context, businessID string) ([]domain.Account, error)

	// GetAccountByID retrieves a specific account of the business.
	GetAccountByID(ctx context.Context, businessID, accountID string) (*domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// BootstrapGroups seeds the system groups; safe to call repeatedly.
	BootstrapGroups(ctx context.Context, businessID, userID string) (int64, []domain.AccountGroup, error)

	// CreateAccount persists a new account under an existing group.
	CreateAccount(ctx context.Context, businessID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
