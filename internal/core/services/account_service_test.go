package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	txManager   *MockTxManager
	accountRepo *MockAccountRepository
	service     portssvc.AccountSvcFacade
	ctx         context.Context
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.txManager = new(MockTxManager)
	s.accountRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.txManager, s.accountRepo)
	s.ctx = context.Background()
}

func (s *AccountServiceTestSuite) TearDownTest() {
	s.txManager.AssertExpectations(s.T())
	s.accountRepo.AssertExpectations(s.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) TestBootstrapGroups_Idempotent() {
	groups := make([]domain.AccountGroup, len(domain.SystemGroups))
	copy(groups, domain.SystemGroups)

	expectTx(s.txManager, true)
	s.accountRepo.On("BootstrapGroups", s.ctx, mock.Anything, testBusinessID, testUserID).Return(int64(6), nil).Once()
	s.accountRepo.On("ListGroups", s.ctx, testBusinessID).Return(groups, nil).Twice()

	inserted, first, err := s.service.BootstrapGroups(s.ctx, testBusinessID, testUserID)
	s.Require().NoError(err)
	s.Equal(int64(6), inserted)
	s.Len(first, 6)

	expectTx(s.txManager, true)
	s.accountRepo.On("BootstrapGroups", s.ctx, mock.Anything, testBusinessID, testUserID).Return(int64(0), nil).Once()

	inserted, second, err := s.service.BootstrapGroups(s.ctx, testBusinessID, testUserID)
	s.Require().NoError(err)
	s.Zero(inserted)
	s.Len(second, 6)
}

func validAccountRequest() dto.CreateAccountRequest {
	return dto.CreateAccountRequest{
		AccountGroupID: "grp-CA",
		Code:           " CASH ",
		Name:           "Cash",
		NormalBalance:  "DR",
	}
}

func (s *AccountServiceTestSuite) TestCreateAccount_Success() {
	s.accountRepo.On("FindGroupByID", s.ctx, testBusinessID, "grp-CA").
		Return(&domain.AccountGroup{GroupID: "grp-CA", Name: "Current Assets", Category: domain.CurrentAsset}, nil).Once()
	s.accountRepo.On("SaveAccount", s.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "CASH" && a.OpeningBalance.IsZero() && a.OpeningBalanceType == domain.Debit
	})).Return(nil).Once()

	account, err := s.service.CreateAccount(s.ctx, testBusinessID, validAccountRequest(), testUserID)

	s.Require().NoError(err)
	s.Equal("CASH", account.Code)
	s.Equal(domain.CurrentAsset, account.GroupCategory)
	s.NotEmpty(account.AccountID)
}

func (s *AccountServiceTestSuite) TestCreateAccount_UnknownGroup() {
	s.accountRepo.On("FindGroupByID", s.ctx, testBusinessID, "grp-CA").
		Return(nil, apperrors.NewNotFoundError("account group", "grp-CA")).Once()

	_, err := s.service.CreateAccount(s.ctx, testBusinessID, validAccountRequest(), testUserID)

	s.ErrorIs(err, apperrors.ErrBusinessRule)
}

func (s *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	s.accountRepo.On("FindGroupByID", s.ctx, testBusinessID, "grp-CA").
		Return(&domain.AccountGroup{GroupID: "grp-CA", Category: domain.CurrentAsset}, nil).Once()
	s.accountRepo.On("SaveAccount", s.ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.CreateAccount(s.ctx, testBusinessID, validAccountRequest(), testUserID)

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *AccountServiceTestSuite) TestCreateAccount_NegativeOpening() {
	req := validAccountRequest()
	negative := dec("-5")
	req.OpeningBalance = &negative

	_, err := s.service.CreateAccount(s.ctx, testBusinessID, req, testUserID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestListAccounts_EmptyIsNotNil() {
	s.accountRepo.On("ListAccounts", s.ctx, testBusinessID).Return([]domain.Account(nil), nil).Once()

	accounts, err := s.service.ListAccounts(s.ctx, testBusinessID)

	s.Require().NoError(err)
	s.NotNil(accounts)
}
