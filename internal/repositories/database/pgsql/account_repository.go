package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for groups and accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const groupColumns = `account_group_id, business_id, name, code, category, parent_group_id, is_system, created_at, created_by, last_updated_at, last_updated_by`

const accountColumns = `a.account_id, a.business_id, a.account_group_id, a.code, a.name, a.normal_balance,
	a.opening_balance, a.opening_balance_type, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
	g.name, g.category`

func scanGroup(row pgx.Row) (domain.AccountGroup, error) {
	var m models.AccountGroup
	err := row.Scan(
		&m.GroupID,
		&m.BusinessID,
		&m.Name,
		&m.Code,
		&m.Category,
		&m.ParentGroupID,
		&m.IsSystem,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.AccountGroup{}, err
	}
	return mapping.ToDomainAccountGroup(m), nil
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.BusinessID,
		&m.AccountGroupID,
		&m.Code,
		&m.Name,
		&m.NormalBalance,
		&m.OpeningBalance,
		&m.OpeningBalanceType,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.GroupName,
		&m.GroupCategory,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// BootstrapGroups seeds the system groups. Existing codes are left untouched.
func (r *PgxAccountRepository) BootstrapGroups(ctx context.Context, tx pgx.Tx, businessID, userID string) (int64, error) {
	query := `
		INSERT INTO account_groups (` + groupColumns + `)
		VALUES ($1, $2, $3, $4, $5, NULL, TRUE, $6, $7, $6, $7)
		ON CONFLICT (business_id, code) DO NOTHING;
	`
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, g := range domain.SystemGroups {
		batch.Queue(query, uuid.NewString(), businessID, g.Name, g.Code, string(g.Category), now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	var inserted int64
	for range domain.SystemGroups {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return 0, apperrors.NewAppError(500, "failed to bootstrap groups for business "+businessID, err)
		}
		inserted += tag.RowsAffected()
	}
	if err := br.Close(); err != nil {
		return 0, apperrors.NewAppError(500, "failed to bootstrap groups for business "+businessID, err)
	}
	return inserted, nil
}

func (r *PgxAccountRepository) listGroups(ctx context.Context, q querier, businessID string) ([]domain.AccountGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM account_groups WHERE business_id = $1 ORDER BY code;`
	rows, err := q.Query(ctx, query, businessID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list groups for business "+businessID, err)
	}
	defer rows.Close()

	groups := []domain.AccountGroup{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan group row", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating group rows", err)
	}
	return groups, nil
}

// ListGroups retrieves every group of a business ordered by code.
func (r *PgxAccountRepository) ListGroups(ctx context.Context, businessID string) ([]domain.AccountGroup, error) {
	return r.listGroups(ctx, r.Pool, businessID)
}

// ListGroupsInTx sees groups created earlier in the same transaction.
func (r *PgxAccountRepository) ListGroupsInTx(ctx context.Context, tx pgx.Tx, businessID string) ([]domain.AccountGroup, error) {
	return r.listGroups(ctx, tx, businessID)
}

// FindGroupByID retrieves a group owned by the business.
func (r *PgxAccountRepository) FindGroupByID(ctx context.Context, businessID, groupID string) (*domain.AccountGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM account_groups WHERE business_id = $1 AND account_group_id = $2;`
	g, err := scanGroup(r.Pool.QueryRow(ctx, query, businessID, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return nil, apperrors.NewNotFoundError("account group", groupID)
		}
		return nil, apperrors.NewAppError(500, "failed to find group "+groupID, err)
	}
	return &g, nil
}

// EnsureGroup inserts the group or returns the one already holding its code.
func (r *PgxAccountRepository) EnsureGroup(ctx context.Context, tx pgx.Tx, group domain.AccountGroup) (*domain.AccountGroup, error) {
	m := mapping.ToModelAccountGroup(group)
	query := `
		INSERT INTO account_groups (` + groupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (business_id, code) DO UPDATE SET code = EXCLUDED.code
		RETURNING ` + groupColumns + `;
	`
	g, err := scanGroup(tx.QueryRow(ctx, query,
		m.GroupID,
		m.BusinessID,
		m.Name,
		m.Code,
		m.Category,
		m.ParentGroupID,
		m.IsSystem,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure group "+m.Code, err)
	}
	return &g, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, business_id, account_group_id, code, name, normal_balance,
			opening_balance, opening_balance_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.BusinessID,
		m.AccountGroupID,
		m.Code,
		m.Name,
		m.NormalBalance,
		m.OpeningBalance,
		m.OpeningBalanceType,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s is already used", apperrors.ErrDuplicate, m.Code)
		}
		return apperrors.NewAppError(500, "failed to save account "+m.Code, err)
	}
	return nil
}

// EnsureAccount is an idempotent upsert on (business_id, code). The no-op
// DO UPDATE makes RETURNING yield the existing row on conflict.
func (r *PgxAccountRepository) EnsureAccount(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	query := `
		WITH upserted AS (
			INSERT INTO accounts AS a (account_id, business_id, account_group_id, code, name, normal_balance,
				opening_balance, opening_balance_type, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (business_id, code) DO UPDATE SET code = EXCLUDED.code
			RETURNING *
		)
		SELECT ` + accountColumns + `
		FROM upserted a
		LEFT JOIN account_groups g ON g.account_group_id = a.account_group_id;
	`
	acc, err := scanAccount(tx.QueryRow(ctx, query,
		m.AccountID,
		m.BusinessID,
		m.AccountGroupID,
		m.Code,
		m.Name,
		m.NormalBalance,
		m.OpeningBalance,
		m.OpeningBalanceType,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure account "+m.Code, err)
	}
	return &acc, nil
}

// FindAccountByID retrieves an account of the business joined with its group.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, businessID, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		LEFT JOIN account_groups g ON g.account_group_id = a.account_group_id
		WHERE a.business_id = $1 AND a.account_id = $2;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, businessID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return nil, apperrors.NewNotFoundError("account", accountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}
	return &acc, nil
}

// FindAccountsByIDs returns only the accounts that belong to the business.
// Callers compare the result size against the request to detect foreign IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tx pgx.Tx, businessID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return accounts, nil
	}
	ids := make([]uuid.UUID, 0, len(accountIDs))
	for _, id := range accountIDs {
		parsed, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		ids = append(ids, parsed)
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		LEFT JOIN account_groups g ON g.account_group_id = a.account_group_id
		WHERE a.business_id = $1 AND a.account_id = ANY($2);
	`
	rows, err := tx.Query(ctx, query, businessID, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// ListAccounts retrieves every account of the business ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, businessID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		LEFT JOIN account_groups g ON g.account_group_id = a.account_group_id
		WHERE a.business_id = $1
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts for business "+businessID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}
