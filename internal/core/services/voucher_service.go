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
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type voucherService struct {
	BaseService
	voucherRepo  portsrepo.VoucherRepositoryFacade
	accountRepo  portsrepo.AccountReader
	businessRepo portsrepo.BusinessWriter
	now          func() time.Time
}

// VoucherServiceOption is a functional option for configuring the voucher service
type VoucherServiceOption func(*voucherService)

// WithVoucherClock overrides the time source used for audit stamps and default reversal dates.
func WithVoucherClock(now func() time.Time) VoucherServiceOption {
	return func(s *voucherService) {
		s.now = now
	}
}

// NewVoucherService creates a new voucher service.
func NewVoucherService(
	txManager portsrepo.TransactionManager,
	voucherRepo portsrepo.VoucherRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	businessRepo portsrepo.BusinessWriter,
	options ...VoucherServiceOption,
) portssvc.VoucherSvcFacade {
	svc := &voucherService{
		BaseService:  BaseService{TxManager: txManager},
		voucherRepo:  voucherRepo,
		accountRepo:  accountRepo,
		businessRepo: businessRepo,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// voucherHeader is the validated, parsed form of a create or update payload.
type voucherHeader struct {
	voucherType   domain.VoucherType
	voucherNumber string
	voucherDate   time.Time
	narration     string
}

func parseVoucherHeader(voucherType, voucherNumber, voucherDate, narration string) (voucherHeader, error) {
	h := voucherHeader{
		voucherType:   domain.VoucherType(voucherType),
		voucherNumber: strings.TrimSpace(voucherNumber),
		narration:     strings.TrimSpace(narration),
	}
	if !h.voucherType.IsValid() {
		return h, fmt.Errorf("%w: unknown voucher type %q", apperrors.ErrValidation, voucherType)
	}
	if h.voucherNumber == "" {
		return h, fmt.Errorf("%w: voucher number is required", apperrors.ErrValidation)
	}
	date, err := dto.ParseDate("voucherDate", voucherDate)
	if err != nil {
		return h, err
	}
	h.voucherDate = date
	return h, nil
}

// checkAccountOwnership fails when any posting names an account outside the business.
// Account ids are rewritten to their canonical lower-case form first.
func (s *voucherService) checkAccountOwnership(ctx context.Context, tx pgx.Tx, businessID string, postings []domain.Posting) error {
	ids := make([]string, 0, len(postings))
	seen := make(map[string]struct{}, len(postings))
	for i := range postings {
		if parsed, err := uuid.Parse(postings[i].AccountID); err == nil {
			postings[i].AccountID = parsed.String()
		}
		p := postings[i]
		if _, ok := seen[p.AccountID]; ok {
			continue
		}
		seen[p.AccountID] = struct{}{}
		ids = append(ids, p.AccountID)
	}

	found, err := s.accountRepo.FindAccountsByIDs(ctx, tx, businessID, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return fmt.Errorf("%w: account %s does not belong to this business", apperrors.ErrBusinessRule, id)
		}
	}
	return nil
}

func stampPostings(postings []domain.Posting, voucher domain.Voucher) {
	for i := range postings {
		postings[i].PostingID = uuid.NewString()
		postings[i].VoucherID = voucher.VoucherID
		postings[i].BusinessID = voucher.BusinessID
		postings[i].PostingDate = voucher.VoucherDate
		if postings[i].LineNo == 0 {
			postings[i].LineNo = i + 1
		}
	}
}

func (s *voucherService) CreateVoucher(ctx context.Context, businessID string, req dto.CreateVoucherRequest, userID string) (*domain.Voucher, error) {
	header, err := parseVoucherHeader(req.VoucherType, req.VoucherNumber, req.VoucherDate, req.Narration)
	if err != nil {
		s.logFailure(ctx, err, "Voucher header rejected")
		return nil, err
	}
	mode := domain.ModeDraft
	if req.Mode != "" {
		mode = domain.VoucherMode(req.Mode)
		if mode != domain.ModeDraft && mode != domain.ModePost {
			return nil, fmt.Errorf("%w: mode must be DRAFT or POST", apperrors.ErrValidation)
		}
	}

	postings := dto.ToPostings(req.Entries)
	if err := accounting.ValidateEntries(postings); err != nil {
		s.logFailure(ctx, err, "Voucher entries rejected", slog.String("voucher_number", header.voucherNumber))
		return nil, err
	}

	now := s.now().UTC()
	voucher := domain.Voucher{
		VoucherID:     uuid.NewString(),
		BusinessID:    businessID,
		VoucherType:   header.voucherType,
		VoucherNumber: header.voucherNumber,
		VoucherDate:   header.voucherDate,
		Narration:     header.narration,
		Status:        domain.StatusDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if mode == domain.ModePost {
		voucher.Status = domain.StatusPosted
		voucher.PostedAt = &now
	}
	stampPostings(postings, voucher)
	voucher.Postings = postings
	voucher.GrossAmount = accounting.GrossAmount(postings)

	err = s.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := requireInitialized(ctx, tx, s.businessRepo, businessID); err != nil {
			return err
		}
		if err := s.checkAccountOwnership(ctx, tx, businessID, postings); err != nil {
			return err
		}
		return s.voucherRepo.SaveVoucher(ctx, tx, voucher)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create voucher", slog.String("voucher_number", voucher.VoucherNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Voucher created",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("status", string(voucher.Status)),
		slog.Int("entries", len(postings)))
	return &voucher, nil
}

func (s *voucherService) UpdateVoucher(ctx context.Context, businessID, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	header, err := parseVoucherHeader(req.VoucherType, req.VoucherNumber, req.VoucherDate, req.Narration)
	if err != nil {
		s.logFailure(ctx, err, "Voucher header rejected", slog.String("voucher_id", voucherID))
		return nil, err
	}
	postings := dto.ToPostings(req.Entries)
	if err := accounting.ValidateEntries(postings); err != nil {
		s.logFailure(ctx, err, "Voucher entries rejected", slog.String("voucher_id", voucherID))
		return nil, err
	}

	var updated domain.Voucher
	err = s.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := requireInitialized(ctx, tx, s.businessRepo, businessID); err != nil {
			return err
		}
		existing, err := s.voucherRepo.FindVoucherByIDForUpdate(ctx, tx, businessID, voucherID)
		if err != nil {
			return err
		}
		if !existing.IsEditable() {
			return fmt.Errorf("%w: only DRAFT vouchers can be edited, voucher is %s", apperrors.ErrBusinessRule, existing.Status)
		}
		if err := s.checkAccountOwnership(ctx, tx, businessID, postings); err != nil {
			return err
		}

		updated = *existing
		updated.VoucherType = header.voucherType
		updated.VoucherNumber = header.voucherNumber
		updated.VoucherDate = header.voucherDate
		updated.Narration = header.narration
		updated.LastUpdatedAt = s.now().UTC()
		updated.LastUpdatedBy = userID
		stampPostings(postings, updated)
		updated.Postings = postings
		updated.GrossAmount = accounting.GrossAmount(postings)

		if err := s.voucherRepo.UpdateVoucherHeader(ctx, tx, updated); err != nil {
			return err
		}
		return s.voucherRepo.ReplacePostings(ctx, tx, updated.VoucherID, postings)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to update voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}

	s.LogInfo(ctx, "Voucher updated", slog.String("voucher_id", voucherID))
	return &updated, nil
}

func (s *voucherService) DeleteVoucher(ctx context.Context, businessID, voucherID, userID string) error {
	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := requireInitialized(ctx, tx, s.businessRepo, businessID); err != nil {
			return err
		}
		existing, err := s.voucherRepo.FindVoucherByIDForUpdate(ctx, tx, businessID, voucherID)
		if err != nil {
			return err
		}
		if !existing.IsEditable() {
			return fmt.Errorf("%w: only DRAFT vouchers can be deleted, cancel or reverse a %s voucher instead", apperrors.ErrBusinessRule, existing.Status)
		}
		return s.voucherRepo.DeleteVoucher(ctx, tx, businessID, voucherID)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete voucher", slog.String("voucher_id", voucherID))
		return err
	}

	s.LogInfo(ctx, "Voucher deleted", slog.String("voucher_id", voucherID), slog.String("deleted_by", userID))
	return nil
}

func (s *voucherService) PostVoucher(ctx context.Context, businessID, voucherID, userID string) (*domain.Voucher, error) {
	var posted domain.Voucher
	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := requireInitialized(ctx, tx, s.businessRepo, businessID); err != nil {
			return err
		}
		existing, err := s.voucherRepo.FindVoucherByIDForUpdate(ctx, tx, businessID, voucherID)
		if err != nil {
			return err
		}
		if !existing.CanPost() {
			return fmt.Errorf("%w: only DRAFT vouchers can be posted, voucher is %s", apperrors.ErrBusinessRule, existing.Status)
		}
		// Stored drafts are re-validated on the way to the books.
		if err := accounting.ValidateEntries(existing.Postings); err != nil {
			return err
		}

		now := s.now().UTC()
		if err := s.voucherRepo.UpdateVoucherStatus(ctx, tx, voucherID, domain.StatusPosted, userID, now); err != nil {
			return err
		}
		posted = *existing
		posted.Status = domain.StatusPosted
		posted.PostedAt = &now
		posted.LastUpdatedAt = now
		posted.LastUpdatedBy = userID
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to post voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}

	s.LogInfo(ctx, "Voucher posted", slog.String("voucher_id", voucherID))
	return &posted, nil
}

func (s *voucherService) CancelVoucher(ctx context.Context, businessID, voucherID, userID string) (*domain.Voucher, error) {
	var cancelled domain.Voucher
	err := s.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := requireInitialized(ctx, tx, s.businessRepo, businessID); err != nil {
			return err
		}
		existing, err := s.voucherRepo.FindVoucherByIDForUpdate(ctx, tx, businessID, voucherID)
		if err != nil {
			return err
		}
		if !existing.CanCancel() {
			return fmt.Errorf("%w: voucher is already %s", apperrors.ErrBusinessRule, existing.Status)
		}

		now := s.now().UTC()
		if err := s.voucherRepo.UpdateVoucherStatus(ctx, tx, voucherID, domain.StatusCancelled, userID, now); err != nil {
			return err
		}
		cancelled = *existing
		cancelled.Status = domain.StatusCancelled
		cancelled.CancelledAt = &now
		cancelled.LastUpdatedAt = now
		cancelled.LastUpdatedBy = userID
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to cancel voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}

	s.LogInfo(ctx, "Voucher cancelled", slog.String("voucher_id", voucherID))
	return &cancelled, nil
}

// ReverseVoucher leaves the original POSTED and records a POSTED sibling
// carrying the same accounts and amounts with every side flipped.
func (s *voucherService) ReverseVoucher(ctx context.Context, businessID, voucherID string, req dto.ReverseVoucherRequest, userID string) (*domain.Voucher, error) {
	number := strings.TrimSpace(req.ReversalVoucherNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: reversal voucher number is required", apperrors.ErrValidation)
	}
	reversalDate, err := dto.ParseOptionalDate("reversalDate", req.ReversalDate)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var reversal domain.Voucher
	err = s.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := requireInitialized(ctx, tx, s.businessRepo, businessID); err != nil {
			return err
		}
		original, err := s.voucherRepo.FindVoucherByIDForUpdate(ctx, tx, businessID, voucherID)
		if err != nil {
			return err
		}
		if !original.CanReverse() {
			return fmt.Errorf("%w: only POSTED vouchers can be reversed, voucher is %s", apperrors.ErrBusinessRule, original.Status)
		}

		date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if reversalDate != nil {
			date = *reversalDate
		}
		if date.Before(original.VoucherDate) {
			return fmt.Errorf("%w: reversal date %s is before the original voucher date %s",
				apperrors.ErrBusinessRule, date.Format(domain.DateLayout), original.VoucherDate.Format(domain.DateLayout))
		}

		narration := strings.TrimSpace(req.Narration)
		if narration == "" {
			narration = "Reversal of " + original.VoucherNumber
		}
		originalID := original.VoucherID
		reversal = domain.Voucher{
			VoucherID:           uuid.NewString(),
			BusinessID:          businessID,
			VoucherType:         original.VoucherType,
			VoucherNumber:       number,
			VoucherDate:         date,
			Narration:           narration,
			Status:              domain.StatusPosted,
			ReversalOfVoucherID: &originalID,
			PostedAt:            &now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		postings := make([]domain.Posting, len(original.Postings))
		for i, p := range original.Postings {
			postings[i] = domain.Posting{
				LineNo:    p.LineNo,
				AccountID: p.AccountID,
				EntryType: p.EntryType.Opposite(),
				Amount:    p.Amount,
			}
		}
		stampPostings(postings, reversal)
		reversal.Postings = postings
		reversal.GrossAmount = accounting.GrossAmount(postings)

		return s.voucherRepo.SaveVoucher(ctx, tx, reversal)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to reverse voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}

	s.LogInfo(ctx, "Voucher reversed",
		slog.String("original_voucher_id", voucherID),
		slog.String("reversal_voucher_id", reversal.VoucherID))
	return &reversal, nil
}

func (s *voucherService) GetVoucherByID(ctx context.Context, businessID, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, businessID, voucherID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}
	return voucher, nil
}

func (s *voucherService) ListVouchers(ctx context.Context, filter domain.VoucherFilter) ([]domain.Voucher, int64, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, fmt.Errorf("%w: from must not be after to", apperrors.ErrValidation)
	}
	vouchers, total, err := s.voucherRepo.ListVouchers(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vouchers", slog.String("business_id", filter.BusinessID))
		return nil, 0, err
	}
	if vouchers == nil {
		vouchers = []domain.Voucher{}
	}
	return vouchers, total, nil
}

func (s *voucherService) Daybook(ctx context.Context, businessID string, day time.Time) ([]domain.DaybookEntry, error) {
	entries, err := s.voucherRepo.ListDaybook(ctx, businessID, day)
	if err != nil {
		s.LogError(ctx, err, "Failed to load daybook", slog.String("day", day.Format(domain.DateLayout)))
		return nil, err
	}
	if entries == nil {
		entries = []domain.DaybookEntry{}
	}
	return entries, nil
}
