package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerRepository
}

// NewLedgerService creates the account statement service.
func NewLedgerService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerRepository) portssvc.LedgerSvc {
	return &ledgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) openingFor(ctx context.Context, account *domain.Account, asOfExclusive *time.Time) (decimal.Decimal, error) {
	opening := account.SignedOpeningBalance()
	if asOfExclusive == nil {
		return opening, nil
	}
	before, err := s.ledgerRepo.SumMovementBefore(ctx, account.BusinessID, account.AccountID, *asOfExclusive)
	if err != nil {
		return decimal.Zero, err
	}
	return opening.Add(before), nil
}

func (s *ledgerService) OpeningBalance(ctx context.Context, businessID, accountID string, asOfExclusive *time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, businessID, accountID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find account for opening balance", slog.String("account_id", accountID))
		return decimal.Zero, err
	}
	opening, err := s.openingFor(ctx, account, asOfExclusive)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum prior movement", slog.String("account_id", accountID))
		return decimal.Zero, err
	}
	return opening, nil
}

func (s *ledgerService) Statement(ctx context.Context, businessID, accountID string, from, to *time.Time) (*domain.LedgerStatement, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: from must not be after to", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, businessID, accountID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find account for statement", slog.String("account_id", accountID))
		return nil, err
	}
	opening, err := s.openingFor(ctx, account, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum prior movement", slog.String("account_id", accountID))
		return nil, err
	}
	lines, err := s.ledgerRepo.FindLedgerLines(ctx, businessID, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger lines", slog.String("account_id", accountID))
		return nil, err
	}
	if lines == nil {
		lines = []domain.LedgerLine{}
	}

	closing := accounting.ApplyRunningBalances(opening, lines)
	s.LogDebug(ctx, "Ledger statement built",
		slog.String("account_id", accountID),
		slog.Int("lines", len(lines)))

	return &domain.LedgerStatement{
		Account:        *account,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		ClosingBalance: closing,
		Lines:          lines,
	}, nil
}

func (s *ledgerService) ClosingBalance(ctx context.Context, businessID, accountID string, to time.Time) (decimal.Decimal, error) {
	statement, err := s.Statement(ctx, businessID, accountID, nil, &to)
	if err != nil {
		return decimal.Zero, err
	}
	return statement.ClosingBalance, nil
}
