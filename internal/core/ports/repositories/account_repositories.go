package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountGroupRepository defines operations on the chart's group nodes
type AccountGroupRepository interface {
	// BootstrapGroups inserts the system groups for a business, skipping any
	// that already exist. It returns the number of rows actually inserted.
	BootstrapGroups(ctx context.Context, tx pgx.Tx, businessID, userID string) (int64, error)

	// ListGroups retrieves all groups of a business ordered by code.
	ListGroups(ctx context.Context, businessID string) ([]domain.AccountGroup, error)

	// ListGroupsInTx is ListGroups inside the caller's transaction.
	ListGroupsInTx(ctx context.Context, tx pgx.Tx, businessID string) ([]domain.AccountGroup, error)

	// FindGroupByID retrieves a group of the business.
	FindGroupByID(ctx context.Context, businessID, groupID string) (*domain.AccountGroup, error)

	// EnsureGroup upserts a group on (business_id, code) and returns the stored row.
	EnsureGroup(ctx context.Context, tx pgx.Tx, group domain.AccountGroup) (*domain.AccountGroup, error)
}

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account of the business joined with its group.
	FindAccountByID(ctx context.Context, businessID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the subset of accountIDs owned by the business, within tx.
	FindAccountsByIDs(ctx context.Context, tx pgx.Tx, businessID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account of the business ordered by code.
	ListAccounts(ctx context.Context, businessID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A duplicate code yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// EnsureAccount upserts an account on (business_id, code) within tx and
	// returns the stored row, whether it was just created or already existed.
	EnsureAccount(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error)
}

// AccountRepositoryFacade combines all chart-of-accounts repository interfaces
type AccountRepositoryFacade interface {
	AccountGroupRepository
	AccountReader
	AccountWriter
}
