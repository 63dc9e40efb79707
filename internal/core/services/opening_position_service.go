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
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const defaultOpeningNarration = "Opening Position"

type openingPositionService struct {
	BaseService
	businessRepo  portsrepo.BusinessWriter
	accountRepo   portsrepo.AccountRepositoryFacade
	voucherRepo   portsrepo.VoucherWriter
	inventoryRepo portsrepo.InventoryRepository
	validate      *validator.Validate
	now           func() time.Time
}

// OpeningPositionServiceOption is a functional option for configuring the bootstrapper
type OpeningPositionServiceOption func(*openingPositionService)

// WithOpeningClock overrides the time source used for audit stamps.
func WithOpeningClock(now func() time.Time) OpeningPositionServiceOption {
	return func(s *openingPositionService) {
		s.now = now
	}
}

// NewOpeningPositionService creates the one-time bootstrap service.
func NewOpeningPositionService(
	txManager portsrepo.TransactionManager,
	businessRepo portsrepo.BusinessWriter,
	accountRepo portsrepo.AccountRepositoryFacade,
	voucherRepo portsrepo.VoucherWriter,
	inventoryRepo portsrepo.InventoryRepository,
	options ...OpeningPositionServiceOption,
) portssvc.OpeningPositionSvc {
	svc := &openingPositionService{
		BaseService:   BaseService{TxManager: txManager},
		businessRepo:  businessRepo,
		accountRepo:   accountRepo,
		voucherRepo:   voucherRepo,
		inventoryRepo: inventoryRepo,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.OpeningPositionSvc = (*openingPositionService)(nil)

// openingPlan is a validated opening position with every side resolved.
type openingPlan struct {
	position   domain.OpeningPosition
	stockValue decimal.Decimal
	debit      decimal.Decimal
	credit     decimal.Decimal
}

func (s *openingPositionService) plan(req dto.OpeningPositionRequest, businessID, userID string) (*openingPlan, error) {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: %s failed on %s", apperrors.ErrValidation, verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	position, err := req.ToOpeningPosition(businessID, userID)
	if err != nil {
		return nil, err
	}

	p := &openingPlan{stockValue: decimal.Zero, debit: decimal.Zero, credit: decimal.Zero}
	for i := range position.Lines {
		line := &position.Lines[i]
		if line.LedgerName == "" || line.GroupName == "" {
			return nil, fmt.Errorf("%w: opening balance %d needs a ledger name and group", apperrors.ErrValidation, i+1)
		}
		if line.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: opening balance for %s must not be negative", apperrors.ErrValidation, line.LedgerName)
		}
		if line.EntryType == "" {
			line.EntryType = accounting.InferEntryType(line.LedgerName, line.GroupName)
		}
		line.Amount = accounting.Round(line.Amount)
		if line.EntryType == domain.Debit {
			p.debit = p.debit.Add(line.Amount)
		} else {
			p.credit = p.credit.Add(line.Amount)
		}
	}
	for _, item := range position.Items {
		if item.Quantity.IsNegative() || item.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: stock item %s must have non-negative quantity and unit cost", apperrors.ErrValidation, item.Name)
		}
		p.stockValue = p.stockValue.Add(item.Value())
	}
	p.stockValue = accounting.Round(p.stockValue)
	p.debit = p.debit.Add(p.stockValue)

	if !accounting.WithinTolerance(p.debit, p.credit) {
		return nil, &apperrors.UnbalancedError{Subject: "opening position", Debit: p.debit, Credit: p.credit}
	}
	p.position = position
	return p, nil
}

// groupResolver finds groups by case-insensitive name and creates missing
// ones under the system group of the inferred category.
type groupResolver struct {
	byName      map[string]domain.AccountGroup
	systemByCat map[domain.GroupCategory]domain.AccountGroup
}

func newGroupResolver(groups []domain.AccountGroup) *groupResolver {
	r := &groupResolver{
		byName:      make(map[string]domain.AccountGroup, len(groups)),
		systemByCat: make(map[domain.GroupCategory]domain.AccountGroup),
	}
	for _, g := range groups {
		r.byName[strings.ToLower(g.Name)] = g
		if g.IsSystem {
			r.systemByCat[g.Category] = g
		}
	}
	return r
}

func (s *openingPositionService) resolveGroup(ctx context.Context, tx pgx.Tx, r *groupResolver, businessID, name, userID string, now time.Time) (domain.AccountGroup, error) {
	if g, ok := r.byName[strings.ToLower(name)]; ok {
		return g, nil
	}
	category := accounting.InferGroupCategory(name)
	group := domain.AccountGroup{
		GroupID:    uuid.NewString(),
		BusinessID: businessID,
		Name:       name,
		Code:       accounting.CodeFromName(name, 50),
		Category:   category,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if parent, ok := r.systemByCat[category]; ok {
		parentID := parent.GroupID
		group.ParentGroupID = &parentID
	}
	ensured, err := s.accountRepo.EnsureGroup(ctx, tx, group)
	if err != nil {
		return domain.AccountGroup{}, err
	}
	r.byName[strings.ToLower(name)] = *ensured
	return *ensured, nil
}

func (s *openingPositionService) ensureLedger(ctx context.Context, tx pgx.Tx, businessID, code, name string, group domain.AccountGroup, userID string, now time.Time) (*domain.Account, error) {
	return s.accountRepo.EnsureAccount(ctx, tx, domain.Account{
		AccountID:          uuid.NewString(),
		BusinessID:         businessID,
		AccountGroupID:     group.GroupID,
		Code:               code,
		Name:               name,
		NormalBalance:      group.Category.NormalBalance(),
		OpeningBalance:     decimal.Zero,
		OpeningBalanceType: domain.Debit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	})
}

// SubmitOpeningPosition records every opening balance and stock item in one
// system voucher and flips the business to initialized, all in one transaction.
func (s *openingPositionService) SubmitOpeningPosition(ctx context.Context, businessID string, req dto.OpeningPositionRequest, userID string) (*domain.OpeningPositionResult, error) {
	plan, err := s.plan(req, businessID, userID)
	if err != nil {
		var unbalanced *apperrors.UnbalancedError
		if errors.As(err, &unbalanced) {
			s.LogWarn(ctx, err, "Opening position rejected",
				slog.String("debit", unbalanced.Debit.StringFixed(2)),
				slog.String("credit", unbalanced.Credit.StringFixed(2)),
				slog.String("variance", unbalanced.Variance().Abs().StringFixed(2)))
		} else {
			s.logFailure(ctx, err, "Opening position rejected")
		}
		return nil, err
	}

	now := s.now().UTC()
	result := &domain.OpeningPositionResult{
		VoucherNumber:      domain.OpeningVoucherNumber,
		StockValue:         plan.stockValue,
		DebitTotal:         plan.debit,
		CreditTotal:        plan.credit,
		RoundingAdjustment: decimal.Zero,
	}

	err = s.WithTransaction(ctx, func(tx pgx.Tx) error {
		business, err := s.businessRepo.FindBusinessByIDForUpdate(ctx, tx, businessID)
		if err != nil {
			return err
		}
		if business.IsInitialized {
			return fmt.Errorf("%w: opening position has already been recorded for this business", apperrors.ErrConflict)
		}

		if _, err := s.accountRepo.BootstrapGroups(ctx, tx, businessID, userID); err != nil {
			return err
		}
		groups, err := s.accountRepo.ListGroupsInTx(ctx, tx, businessID)
		if err != nil {
			return err
		}
		resolver := newGroupResolver(groups)

		voucher := domain.Voucher{
			VoucherID:         uuid.NewString(),
			BusinessID:        businessID,
			VoucherType:       domain.VoucherJournal,
			VoucherNumber:     domain.OpeningVoucherNumber,
			VoucherDate:       business.FinancialYearStart,
			Narration:         strings.TrimSpace(plan.position.Narration),
			Status:            domain.StatusPosted,
			IsSystemGenerated: true,
			PostedAt:          &now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if plan.position.Date != nil {
			voucher.VoucherDate = *plan.position.Date
		}
		if voucher.Narration == "" {
			voucher.Narration = defaultOpeningNarration
		}

		ledgers := make(map[string]struct{})
		postings := make([]domain.Posting, 0, len(plan.position.Lines)+1)
		for _, line := range plan.position.Lines {
			group, err := s.resolveGroup(ctx, tx, resolver, businessID, line.GroupName, userID, now)
			if err != nil {
				return err
			}
			account, err := s.ensureLedger(ctx, tx, businessID, accounting.CodeFromName(line.LedgerName, 50), line.LedgerName, group, userID, now)
			if err != nil {
				return err
			}
			ledgers[account.AccountID] = struct{}{}
			if line.Amount.IsZero() {
				continue
			}
			postings = append(postings, domain.Posting{
				AccountID: account.AccountID,
				EntryType: line.EntryType,
				Amount:    line.Amount,
			})
		}

		var stockAccount *domain.Account
		if len(plan.position.Items) > 0 {
			stockGroup, ok := resolver.systemByCat[domain.CurrentAsset]
			if !ok {
				return fmt.Errorf("%w: current assets group is missing", apperrors.ErrBusinessRule)
			}
			stockAccount, err = s.ensureLedger(ctx, tx, businessID, domain.StockAccountCode, domain.StockAccountName, stockGroup, userID, now)
			if err != nil {
				return err
			}
			ledgers[stockAccount.AccountID] = struct{}{}
			if plan.stockValue.IsPositive() {
				postings = append(postings, domain.Posting{
					AccountID: stockAccount.AccountID,
					EntryType: domain.Debit,
					Amount:    plan.stockValue,
				})
			}
		}

		if len(postings) < 2 {
			return fmt.Errorf("%w: an opening position needs at least 2 non-zero balances", apperrors.ErrValidation)
		}

		if residual := plan.debit.Sub(plan.credit); !residual.IsZero() {
			roundingGroup, ok := resolver.systemByCat[domain.Expense]
			if !ok {
				return fmt.Errorf("%w: expenses group is missing", apperrors.ErrBusinessRule)
			}
			roundingAccount, err := s.ensureLedger(ctx, tx, businessID, domain.RoundingAccountCode, domain.RoundingAccountName, roundingGroup, userID, now)
			if err != nil {
				return err
			}
			ledgers[roundingAccount.AccountID] = struct{}{}
			side := domain.Debit
			if residual.IsPositive() {
				side = domain.Credit
			}
			postings = append(postings, domain.Posting{
				AccountID: roundingAccount.AccountID,
				EntryType: side,
				Amount:    residual.Abs(),
			})
			result.RoundingAdjustment = residual.Abs()
		}
		if err := accounting.ValidateEntries(postings); err != nil {
			return err
		}
		for i := range postings {
			postings[i].LineNo = i + 1
		}
		stampPostings(postings, voucher)
		voucher.Postings = postings
		voucher.GrossAmount = accounting.GrossAmount(postings)
		if err := s.voucherRepo.SaveVoucher(ctx, tx, voucher); err != nil {
			return err
		}

		valuations := make([]domain.InventoryValuation, 0, len(plan.position.Items))
		for _, item := range plan.position.Items {
			sku := item.SKU
			if sku == "" {
				sku = accounting.CodeFromName(item.Name, 100)
			}
			product, err := s.inventoryRepo.EnsureProduct(ctx, tx, domain.Product{
				ProductID:  uuid.NewString(),
				BusinessID: businessID,
				Name:       item.Name,
				SKU:        sku,
				Category:   item.Category,
				UOM:        item.UOM,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     userID,
					LastUpdatedAt: now,
					LastUpdatedBy: userID,
				},
			})
			if err != nil {
				return err
			}
			valuations = append(valuations, domain.InventoryValuation{
				ValuationID:   uuid.NewString(),
				BusinessID:    businessID,
				ProductID:     product.ProductID,
				VoucherID:     voucher.VoucherID,
				ValuationDate: voucher.VoucherDate,
				Quantity:      item.Quantity,
				UnitCost:      item.UnitCost,
				TotalValue:    accounting.Round(item.Value()),
			})
		}
		if err := s.inventoryRepo.SaveValuations(ctx, tx, valuations); err != nil {
			return err
		}

		if err := s.businessRepo.MarkInitialized(ctx, tx, businessID, userID, now); err != nil {
			return err
		}

		result.VoucherID = voucher.VoucherID
		result.VoucherDate = voucher.VoucherDate
		result.LedgerCount = len(ledgers)
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to record opening position", slog.String("business_id", businessID))
		return nil, err
	}

	s.LogInfo(ctx, "Opening position recorded",
		slog.String("business_id", businessID),
		slog.String("voucher_id", result.VoucherID),
		slog.Int("ledgers", result.LedgerCount),
		slog.String("stock_value", result.StockValue.StringFixed(2)))
	return result, nil
}
