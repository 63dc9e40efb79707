package services

import (
	"context"
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
)

type businessService struct {
	BaseService
	businessRepo     portsrepo.BusinessRepositoryFacade
	accountRepo      portsrepo.AccountRepositoryFacade
	fiscalStartMonth time.Month
	now              func() time.Time
}

// BusinessServiceOption is a functional option for configuring the business service
type BusinessServiceOption func(*businessService)

// WithBusinessFiscalYearStart sets the month new businesses start their fiscal year in.
func WithBusinessFiscalYearStart(month time.Month) BusinessServiceOption {
	return func(s *businessService) {
		if month >= time.January && month <= time.December {
			s.fiscalStartMonth = month
		}
	}
}

// WithBusinessClock overrides the time source.
func WithBusinessClock(now func() time.Time) BusinessServiceOption {
	return func(s *businessService) {
		s.now = now
	}
}

// NewBusinessService creates the tenant registry service.
func NewBusinessService(txManager portsrepo.TransactionManager, businessRepo portsrepo.BusinessRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, options ...BusinessServiceOption) portssvc.BusinessSvcFacade {
	svc := &businessService{
		BaseService:      BaseService{TxManager: txManager},
		businessRepo:     businessRepo,
		accountRepo:      accountRepo,
		fiscalStartMonth: time.April,
		now:              time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BusinessSvcFacade = (*businessService)(nil)

func (s *businessService) CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, userID string) (*domain.Business, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: business name is required", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	fyStart := domain.FiscalYearStart(now, s.fiscalStartMonth)
	if req.FinancialYearStart != nil {
		parsed, err := dto.ParseOptionalDate("financialYearStart", req.FinancialYearStart)
		if err != nil {
			return nil, err
		}
		if parsed != nil {
			fyStart = *parsed
		}
	}

	business := domain.Business{
		BusinessID:         uuid.NewString(),
		Name:               name,
		FinancialYearStart: fyStart,
		IsInitialized:      false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	var seeded int64
	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.businessRepo.SaveBusiness(ctx, tx, business); err != nil {
			return err
		}
		var err error
		seeded, err = s.accountRepo.BootstrapGroups(ctx, tx, business.BusinessID, userID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create business", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Business created", slog.String("business_id", business.BusinessID), slog.Int64("groups_seeded", seeded))
	return &business, nil
}

func (s *businessService) GetStatus(ctx context.Context, businessID string) (*domain.Business, error) {
	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to load business", slog.String("business_id", businessID))
		return nil, err
	}
	return business, nil
}

func (s *businessService) IsInitialized(ctx context.Context, businessID string) (bool, error) {
	business, err := s.GetStatus(ctx, businessID)
	if err != nil {
		return false, err
	}
	return business.IsInitialized, nil
}

func (s *businessService) BootstrapIntegrity(ctx context.Context, businessID string) (*domain.IntegrityReport, error) {
	report, err := s.businessRepo.CountBusinessRecords(ctx, businessID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to count business records", slog.String("business_id", businessID))
		return nil, err
	}
	s.LogDebug(ctx, "Bootstrap integrity computed",
		slog.String("business_id", businessID),
		slog.Bool("is_clean", report.IsClean()))
	return report, nil
}

// requireInitialized locks the business row for the rest of tx and fails
// with ErrNotInitialized until the opening position has been accepted.
func requireInitialized(ctx context.Context, tx pgx.Tx, repo portsrepo.BusinessWriter, businessID string) error {
	business, err := repo.FindBusinessByIDForUpdate(ctx, tx, businessID)
	if err != nil {
		return err
	}
	if !business.IsInitialized {
		return apperrors.ErrNotInitialized
	}
	return nil
}
