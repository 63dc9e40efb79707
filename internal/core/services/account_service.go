package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(txManager portsrepo.TransactionManager, accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: BaseService{TxManager: txManager},
		accountRepo: accountRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// BootstrapGroups seeds any missing system groups and returns the full list.
func (s *accountService) BootstrapGroups(ctx context.Context, businessID, userID string) (int64, []domain.AccountGroup, error) {
	var inserted int64
	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		inserted, err = s.accountRepo.BootstrapGroups(ctx, tx, businessID, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to bootstrap account groups", slog.String("business_id", businessID))
		return 0, nil, err
	}

	groups, err := s.accountRepo.ListGroups(ctx, businessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list groups after bootstrap", slog.String("business_id", businessID))
		return 0, nil, err
	}
	s.LogInfo(ctx, "Account groups bootstrapped", slog.String("business_id", businessID), slog.Int64("inserted", inserted))
	return inserted, groups, nil
}

func (s *accountService) CreateAccount(ctx context.Context, businessID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: account code and name are required", apperrors.ErrValidation)
	}
	normal := domain.EntryType(req.NormalBalance)
	if !normal.IsValid() {
		return nil, fmt.Errorf("%w: normalBalance must be DR or CR", apperrors.ErrValidation)
	}
	openingType := domain.Debit
	if req.OpeningBalanceType != "" {
		openingType = domain.EntryType(req.OpeningBalanceType)
		if !openingType.IsValid() {
			return nil, fmt.Errorf("%w: openingBalanceType must be DR or CR", apperrors.ErrValidation)
		}
	}
	opening := decimal.Zero
	if req.OpeningBalance != nil {
		opening = *req.OpeningBalance
	}
	if opening.IsNegative() {
		return nil, fmt.Errorf("%w: openingBalance must not be negative", apperrors.ErrValidation)
	}

	group, err := s.accountRepo.FindGroupByID(ctx, businessID, req.AccountGroupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = fmt.Errorf("%w: account group %s does not exist in this business", apperrors.ErrBusinessRule, req.AccountGroupID)
		}
		s.logFailure(ctx, err, "Failed to resolve account group", slog.String("group_id", req.AccountGroupID))
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:          uuid.NewString(),
		BusinessID:         businessID,
		AccountGroupID:     group.GroupID,
		Code:               code,
		Name:               name,
		NormalBalance:      normal,
		OpeningBalance:     opening,
		OpeningBalanceType: openingType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		GroupName:     group.Name,
		GroupCategory: group.Category,
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.logFailure(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", code))
	return &account, nil
}

func (s *accountService) ListGroups(ctx context.Context, businessID string) ([]domain.AccountGroup, error) {
	groups, err := s.accountRepo.ListGroups(ctx, businessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account groups", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list account groups: %w", err)
	}
	return groups, nil
}

func (s *accountService) ListAccounts(ctx context.Context, businessID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, businessID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, businessID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, businessID, accountID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}
