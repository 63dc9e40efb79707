package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testBusinessID = "b0000000-0000-0000-0000-000000000001"
	testUserID     = "user-1"
	cashID         = "a0000000-0000-0000-0000-00000000000a"
	capitalID      = "a0000000-0000-0000-0000-00000000000b"
)

type VoucherServiceTestSuite struct {
	suite.Suite
	txManager    *MockTxManager
	voucherRepo  *MockVoucherRepository
	accountRepo  *MockAccountRepository
	businessRepo *MockBusinessRepository
	service      portssvc.VoucherSvcFacade
	ctx          context.Context
	now          time.Time
}

func (s *VoucherServiceTestSuite) SetupTest() {
	s.txManager = new(MockTxManager)
	s.voucherRepo = new(MockVoucherRepository)
	s.accountRepo = new(MockAccountRepository)
	s.businessRepo = new(MockBusinessRepository)
	s.ctx = context.Background()
	s.now = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)
	s.service = services.NewVoucherService(s.txManager, s.voucherRepo, s.accountRepo, s.businessRepo,
		services.WithVoucherClock(func() time.Time { return s.now }))
}

func (s *VoucherServiceTestSuite) TearDownTest() {
	s.txManager.AssertExpectations(s.T())
	s.voucherRepo.AssertExpectations(s.T())
	s.accountRepo.AssertExpectations(s.T())
	s.businessRepo.AssertExpectations(s.T())
}

func TestVoucherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}

func (s *VoucherServiceTestSuite) expectInitialized(initialized bool) {
	s.businessRepo.On("FindBusinessByIDForUpdate", s.ctx, mock.Anything, testBusinessID).
		Return(&domain.Business{BusinessID: testBusinessID, IsInitialized: initialized}, nil).Once()
}

func (s *VoucherServiceTestSuite) expectOwnedAccounts(ids ...string) {
	found := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		found[id] = domain.Account{AccountID: id, BusinessID: testBusinessID}
	}
	s.accountRepo.On("FindAccountsByIDs", s.ctx, mock.Anything, testBusinessID, []string{cashID, capitalID}).
		Return(found, nil).Once()
}

func balancedCreateRequest(mode string) dto.CreateVoucherRequest {
	return dto.CreateVoucherRequest{
		VoucherType:   "JOURNAL",
		VoucherNumber: "JV-001",
		VoucherDate:   "2024-06-01",
		Narration:     "Capital introduced",
		Mode:          mode,
		Entries: []dto.VoucherEntryRequest{
			{AccountID: cashID, EntryType: "DR", Amount: dec("500")},
			{AccountID: capitalID, EntryType: "CR", Amount: dec("500")},
		},
	}
}

func postedVoucher(status domain.VoucherStatus) *domain.Voucher {
	return &domain.Voucher{
		VoucherID:     "v-1",
		BusinessID:    testBusinessID,
		VoucherType:   domain.VoucherJournal,
		VoucherNumber: "JV-001",
		VoucherDate:   date("2024-06-01"),
		Status:        status,
		Postings: []domain.Posting{
			{PostingID: "p-1", LineNo: 1, AccountID: cashID, EntryType: domain.Debit, Amount: dec("500")},
			{PostingID: "p-2", LineNo: 2, AccountID: capitalID, EntryType: domain.Credit, Amount: dec("500")},
		},
	}
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_DraftSuccess() {
	expectTx(s.txManager, true)
	s.expectInitialized(true)
	s.expectOwnedAccounts(cashID, capitalID)
	s.voucherRepo.On("SaveVoucher", s.ctx, mock.Anything, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.Status == domain.StatusDraft &&
			v.PostedAt == nil &&
			len(v.Postings) == 2 &&
			v.Postings[0].VoucherID == v.VoucherID &&
			v.Postings[0].PostingDate.Equal(date("2024-06-01")) &&
			v.Postings[1].LineNo == 2
	})).Return(nil).Once()

	voucher, err := s.service.CreateVoucher(s.ctx, testBusinessID, balancedCreateRequest(""), testUserID)

	s.Require().NoError(err)
	s.Equal(domain.StatusDraft, voucher.Status)
	s.True(voucher.GrossAmount.Equal(dec("1000")))
	s.Equal(testUserID, voucher.CreatedBy)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_PostMode() {
	expectTx(s.txManager, true)
	s.expectInitialized(true)
	s.expectOwnedAccounts(cashID, capitalID)
	s.voucherRepo.On("SaveVoucher", s.ctx, mock.Anything, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.Status == domain.StatusPosted && v.PostedAt != nil
	})).Return(nil).Once()

	voucher, err := s.service.CreateVoucher(s.ctx, testBusinessID, balancedCreateRequest("POST"), testUserID)

	s.Require().NoError(err)
	s.Equal(domain.StatusPosted, voucher.Status)
	s.Equal(s.now, *voucher.PostedAt)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_Unbalanced() {
	req := balancedCreateRequest("")
	req.Entries[1].Amount = dec("499.99")

	voucher, err := s.service.CreateVoucher(s.ctx, testBusinessID, req, testUserID)

	s.Nil(voucher)
	var unbalanced *apperrors.UnbalancedError
	s.Require().True(errors.As(err, &unbalanced))
	s.True(errors.Is(err, apperrors.ErrBusinessRule))
	s.True(unbalanced.Variance().Equal(dec("0.01")))
	s.txManager.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_SingleEntry() {
	req := balancedCreateRequest("")
	req.Entries = req.Entries[:1]

	_, err := s.service.CreateVoucher(s.ctx, testBusinessID, req, testUserID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_BadDate() {
	req := balancedCreateRequest("")
	req.VoucherDate = "01/06/2024"

	_, err := s.service.CreateVoucher(s.ctx, testBusinessID, req, testUserID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_NotInitialized() {
	expectTx(s.txManager, false)
	s.expectInitialized(false)

	_, err := s.service.CreateVoucher(s.ctx, testBusinessID, balancedCreateRequest(""), testUserID)

	s.ErrorIs(err, apperrors.ErrNotInitialized)
	s.voucherRepo.AssertNotCalled(s.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_ForeignAccount() {
	expectTx(s.txManager, false)
	s.expectInitialized(true)
	s.expectOwnedAccounts(cashID)

	_, err := s.service.CreateVoucher(s.ctx, testBusinessID, balancedCreateRequest(""), testUserID)

	s.ErrorIs(err, apperrors.ErrBusinessRule)
	s.Contains(err.Error(), capitalID)
	s.voucherRepo.AssertNotCalled(s.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestCreateVoucher_UpperCaseAccountIDs() {
	expectTx(s.txManager, true)
	s.expectInitialized(true)
	s.expectOwnedAccounts(cashID, capitalID)
	s.voucherRepo.On("SaveVoucher", s.ctx, mock.Anything, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.Postings[0].AccountID == cashID && v.Postings[1].AccountID == capitalID
	})).Return(nil).Once()

	req := balancedCreateRequest("")
	req.Entries[0].AccountID = strings.ToUpper(cashID)
	req.Entries[1].AccountID = strings.ToUpper(capitalID)

	voucher, err := s.service.CreateVoucher(s.ctx, testBusinessID, req, testUserID)

	s.Require().NoError(err)
	s.Equal(cashID, voucher.Postings[0].AccountID)
}

func (s *VoucherServiceTestSuite) TestUpdateVoucher_ReplacesPostings() {
	expectTx(s.txManager, true)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "v-1").
		Return(postedVoucher(domain.StatusDraft), nil).Once()
	s.expectOwnedAccounts(cashID, capitalID)
	s.voucherRepo.On("UpdateVoucherHeader", s.ctx, mock.Anything, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.VoucherNumber == "JV-002" && v.LastUpdatedBy == testUserID
	})).Return(nil).Once()
	s.voucherRepo.On("ReplacePostings", s.ctx, mock.Anything, "v-1", mock.MatchedBy(func(p []domain.Posting) bool {
		return len(p) == 2 && p[0].Amount.Equal(dec("750")) && p[0].VoucherID == "v-1"
	})).Return(nil).Once()

	req := dto.UpdateVoucherRequest{
		VoucherType:   "JOURNAL",
		VoucherNumber: "JV-002",
		VoucherDate:   "2024-06-02",
		Entries: []dto.VoucherEntryRequest{
			{AccountID: cashID, EntryType: "DR", Amount: dec("750")},
			{AccountID: capitalID, EntryType: "CR", Amount: dec("750")},
		},
	}
	voucher, err := s.service.UpdateVoucher(s.ctx, testBusinessID, "v-1", req, testUserID)

	s.Require().NoError(err)
	s.Equal("JV-002", voucher.VoucherNumber)
	s.True(voucher.GrossAmount.Equal(dec("1500")))
}

func (s *VoucherServiceTestSuite) TestUpdateVoucher_PostedIsImmutable() {
	expectTx(s.txManager, false)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "v-1").
		Return(postedVoucher(domain.StatusPosted), nil).Once()

	req := dto.UpdateVoucherRequest{
		VoucherType:   "JOURNAL",
		VoucherNumber: "JV-001",
		VoucherDate:   "2024-06-01",
		Entries:       balancedCreateRequest("").Entries,
	}
	_, err := s.service.UpdateVoucher(s.ctx, testBusinessID, "v-1", req, testUserID)

	s.ErrorIs(err, apperrors.ErrBusinessRule)
}

func (s *VoucherServiceTestSuite) TestUpdateVoucher_NotFound() {
	expectTx(s.txManager, false)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "missing").
		Return(nil, apperrors.NewNotFoundError("voucher", "missing")).Once()

	req := dto.UpdateVoucherRequest{
		VoucherType:   "JOURNAL",
		VoucherNumber: "JV-001",
		VoucherDate:   "2024-06-01",
		Entries:       balancedCreateRequest("").Entries,
	}
	_, err := s.service.UpdateVoucher(s.ctx, testBusinessID, "missing", req, testUserID)

	s.True(apperrors.IsNotFound(err))
}

func (s *VoucherServiceTestSuite) TestDeleteVoucher_Draft() {
	expectTx(s.txManager, true)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "v-1").
		Return(postedVoucher(domain.StatusDraft), nil).Once()
	s.voucherRepo.On("DeleteVoucher", s.ctx, mock.Anything, testBusinessID, "v-1").Return(nil).Once()

	err := s.service.DeleteVoucher(s.ctx, testBusinessID, "v-1", testUserID)

	s.NoError(err)
}

func (s *VoucherServiceTestSuite) TestDeleteVoucher_PostedRejected() {
	expectTx(s.txManager, false)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "v-1").
		Return(postedVoucher(domain.StatusPosted), nil).Once()

	err := s.service.DeleteVoucher(s.ctx, testBusinessID, "v-1", testUserID)

	s.ErrorIs(err, apperrors.ErrBusinessRule)
	s.voucherRepo.AssertNotCalled(s.T(), "DeleteVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestPostVoucher_Success() {
	expectTx(s.txManager, true)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "v-1").
		Return(postedVoucher(domain.StatusDraft), nil).Once()
	s.voucherRepo.On("UpdateVoucherStatus", s.ctx, mock.Anything, "v-1", domain.StatusPosted, testUserID, s.now).
		Return(nil).Once()

	voucher, err := s.service.PostVoucher(s.ctx, testBusinessID, "v-1", testUserID)

	s.Require().NoError(err)
	s.Equal(domain.StatusPosted, voucher.Status)
	s.NotNil(voucher.PostedAt)
}

func (s *VoucherServiceTestSuite) TestPostVoucher_RevalidatesBalance() {
	draft := postedVoucher(domain.StatusDraft)
	draft.Postings[1].Amount = dec("400")

	expectTx(s.txManager, false)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "v-1").Return(draft, nil).Once()

	_, err := s.service.PostVoucher(s.ctx, testBusinessID, "v-1", testUserID)

	var unbalanced *apperrors.UnbalancedError
	s.True(errors.As(err, &unbalanced))
	s.voucherRepo.AssertNotCalled(s.T(), "UpdateVoucherStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestPostVoucher_AlreadyPosted() {
	expectTx(s.txManager, false)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "v-1").
		Return(postedVoucher(domain.StatusPosted), nil).Once()

	_, err := s.service.PostVoucher(s.ctx, testBusinessID, "v-1", testUserID)

	s.ErrorIs(err, apperrors.ErrBusinessRule)
}

func (s *VoucherServiceTestSuite) TestCancelVoucher_KeepsRecord() {
	expectTx(s.txManager, true)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "v-1").
		Return(postedVoucher(domain.StatusPosted), nil).Once()
	s.voucherRepo.On("UpdateVoucherStatus", s.ctx, mock.Anything, "v-1", domain.StatusCancelled, testUserID, s.now).
		Return(nil).Once()

	voucher, err := s.service.CancelVoucher(s.ctx, testBusinessID, "v-1", testUserID)

	s.Require().NoError(err)
	s.Equal(domain.StatusCancelled, voucher.Status)
	s.Len(voucher.Postings, 2)
	s.voucherRepo.AssertNotCalled(s.T(), "DeleteVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestCancelVoucher_AlreadyCancelled() {
	expectTx(s.txManager, false)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "v-1").
		Return(postedVoucher(domain.StatusCancelled), nil).Once()

	_, err := s.service.CancelVoucher(s.ctx, testBusinessID, "v-1", testUserID)

	s.ErrorIs(err, apperrors.ErrBusinessRule)
}

func (s *VoucherServiceTestSuite) TestReverseVoucher_FlipsEntries() {
	expectTx(s.txManager, true)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "v-1").
		Return(postedVoucher(domain.StatusPosted), nil).Once()
	s.voucherRepo.On("SaveVoucher", s.ctx, mock.Anything, mock.AnythingOfType("domain.Voucher")).Return(nil).Once()

	reversal, err := s.service.ReverseVoucher(s.ctx, testBusinessID, "v-1", dto.ReverseVoucherRequest{ReversalVoucherNumber: "JV-001-R"}, testUserID)

	s.Require().NoError(err)
	s.Equal(domain.StatusPosted, reversal.Status)
	s.Require().NotNil(reversal.ReversalOfVoucherID)
	s.Equal("v-1", *reversal.ReversalOfVoucherID)
	s.Equal("Reversal of JV-001", reversal.Narration)
	s.Equal(date("2024-06-15"), reversal.VoucherDate)
	s.Require().Len(reversal.Postings, 2)
	s.Equal(cashID, reversal.Postings[0].AccountID)
	s.Equal(domain.Credit, reversal.Postings[0].EntryType)
	s.Equal(domain.Debit, reversal.Postings[1].EntryType)
	s.True(reversal.Postings[0].Amount.Equal(dec("500")))

	// The original and its reversal net to zero on every account.
	net := map[string]string{}
	for _, p := range append(postedVoucher(domain.StatusPosted).Postings, reversal.Postings...) {
		current := dec("0")
		if v, ok := net[p.AccountID]; ok {
			current = dec(v)
		}
		net[p.AccountID] = current.Add(p.Signed()).String()
	}
	for account, total := range net {
		s.Equal("0", total, account)
	}
}

func (s *VoucherServiceTestSuite) TestReverseVoucher_DateBeforeOriginal() {
	expectTx(s.txManager, false)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "v-1").
		Return(postedVoucher(domain.StatusPosted), nil).Once()

	early := "2024-05-31"
	_, err := s.service.ReverseVoucher(s.ctx, testBusinessID, "v-1",
		dto.ReverseVoucherRequest{ReversalVoucherNumber: "JV-001-R", ReversalDate: &early}, testUserID)

	s.ErrorIs(err, apperrors.ErrBusinessRule)
}

func (s *VoucherServiceTestSuite) TestReverseVoucher_DraftRejected() {
	expectTx(s.txManager, false)
	s.expectInitialized(true)
	s.voucherRepo.On("FindVoucherByIDForUpdate", s.ctx, mock.Anything, testBusinessID, "v-1").
		Return(postedVoucher(domain.StatusDraft), nil).Once()

	_, err := s.service.ReverseVoucher(s.ctx, testBusinessID, "v-1", dto.ReverseVoucherRequest{ReversalVoucherNumber: "R-1"}, testUserID)

	s.ErrorIs(err, apperrors.ErrBusinessRule)
}

func (s *VoucherServiceTestSuite) TestGetVoucherByID_Cancelled() {
	s.voucherRepo.On("FindVoucherByID", s.ctx, testBusinessID, "v-1").Return(postedVoucher(domain.StatusCancelled), nil).Once()

	voucher, err := s.service.GetVoucherByID(s.ctx, testBusinessID, "v-1")

	s.Require().NoError(err)
	s.Equal(domain.StatusCancelled, voucher.Status)
}

func (s *VoucherServiceTestSuite) TestListVouchers_RejectsInvertedRange() {
	from, to := date("2024-06-30"), date("2024-06-01")

	_, _, err := s.service.ListVouchers(s.ctx, domain.VoucherFilter{BusinessID: testBusinessID, From: &from, To: &to})

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *VoucherServiceTestSuite) TestListVouchers_EmptyIsNotNil() {
	filter := domain.VoucherFilter{BusinessID: testBusinessID, Limit: 20}
	s.voucherRepo.On("ListVouchers", s.ctx, filter).Return([]domain.Voucher(nil), int64(0), nil).Once()

	vouchers, total, err := s.service.ListVouchers(s.ctx, filter)

	s.Require().NoError(err)
	s.NotNil(vouchers)
	s.Zero(total)
}

func TestVoucherService_DaybookPassesThrough(t *testing.T) {
	repo := new(MockVoucherRepository)
	svc := services.NewVoucherService(new(MockTxManager), repo, new(MockAccountRepository), new(MockBusinessRepository))
	day := date("2024-06-01")
	repo.On("ListDaybook", mock.Anything, testBusinessID, day).Return([]domain.DaybookEntry{
		{VoucherNumber: "JV-001", DebitTotal: dec("500"), CreditTotal: dec("500")},
	}, nil).Once()

	entries, err := svc.Daybook(context.Background(), testBusinessID, day)

	require.NoError(t, err)
	assert.Len(t, entries, 1)
	repo.AssertExpectations(t)
}
