package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock BusinessService ---
type MockBusinessService struct {
	mock.Mock
}

func (m *MockBusinessService) CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, userID string) (*domain.Business, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessService) GetStatus(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessService) IsInitialized(ctx context.Context, businessID string) (bool, error) {
	args := m.Called(ctx, businessID)
	return args.Bool(0), args.Error(1)
}
func (m *MockBusinessService) BootstrapIntegrity(ctx context.Context, businessID string) (*domain.IntegrityReport, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrityReport), args.Error(1)
}

var _ portssvc.BusinessSvcFacade = (*MockBusinessService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ListGroups(ctx context.Context, businessID string) ([]domain.AccountGroup, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountGroup), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, businessID string) ([]domain.Account, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, businessID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, businessID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) BootstrapGroups(ctx context.Context, businessID, userID string) (int64, []domain.AccountGroup, error) {
	args := m.Called(ctx, businessID, userID)
	if args.Get(1) == nil {
		return args.Get(0).(int64), nil, args.Error(2)
	}
	return args.Get(0).(int64), args.Get(1).([]domain.AccountGroup), args.Error(2)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, businessID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, businessID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock VoucherService ---
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) voucherResult(args mock.Arguments) (*domain.Voucher, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) GetVoucherByID(ctx context.Context, businessID, voucherID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, businessID, voucherID))
}
func (m *MockVoucherService) ListVouchers(ctx context.Context, filter domain.VoucherFilter) ([]domain.Voucher, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Voucher), args.Get(1).(int64), args.Error(2)
}
func (m *MockVoucherService) Daybook(ctx context.Context, businessID string, day time.Time) ([]domain.DaybookEntry, error) {
	args := m.Called(ctx, businessID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DaybookEntry), args.Error(1)
}
func (m *MockVoucherService) CreateVoucher(ctx context.Context, businessID string, req dto.CreateVoucherRequest, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, businessID, req, userID))
}
func (m *MockVoucherService) UpdateVoucher(ctx context.Context, businessID, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, businessID, voucherID, req, userID))
}
func (m *MockVoucherService) DeleteVoucher(ctx context.Context, businessID, voucherID, userID string) error {
	return m.Called(ctx, businessID, voucherID, userID).Error(0)
}
func (m *MockVoucherService) PostVoucher(ctx context.Context, businessID, voucherID, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, businessID, voucherID, userID))
}
func (m *MockVoucherService) CancelVoucher(ctx context.Context, businessID, voucherID, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, businessID, voucherID, userID))
}
func (m *MockVoucherService) ReverseVoucher(ctx context.Context, businessID, voucherID string, req dto.ReverseVoucherRequest, userID string) (*domain.Voucher, error) {
	return m.voucherResult(m.Called(ctx, businessID, voucherID, req, userID))
}

var _ portssvc.VoucherSvcFacade = (*MockVoucherService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) OpeningBalance(ctx context.Context, businessID, accountID string, asOfExclusive *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, businessID, accountID, asOfExclusive)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockLedgerService) Statement(ctx context.Context, businessID, accountID string, from, to *time.Time) (*domain.LedgerStatement, error) {
	args := m.Called(ctx, businessID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerStatement), args.Error(1)
}
func (m *MockLedgerService) ClosingBalance(ctx context.Context, businessID, accountID string, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, businessID, accountID, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.LedgerSvc = (*MockLedgerService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, businessID string, from *time.Time, to time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, businessID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}
func (m *MockReportingService) ProfitAndLoss(ctx context.Context, businessID string, from, to time.Time, compareFrom, compareTo *time.Time) (*domain.ProfitLossComparison, error) {
	args := m.Called(ctx, businessID, from, to, compareFrom, compareTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitLossComparison), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context, businessID string, asOf time.Time) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, businessID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}
func (m *MockReportingService) DashboardSummary(ctx context.Context, businessID string, asOf time.Time) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, businessID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock OpeningPositionService ---
type MockOpeningService struct {
	mock.Mock
}

func (m *MockOpeningService) SubmitOpeningPosition(ctx context.Context, businessID string, req dto.OpeningPositionRequest, userID string) (*domain.OpeningPositionResult, error) {
	args := m.Called(ctx, businessID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningPositionResult), args.Error(1)
}

var _ portssvc.OpeningPositionSvc = (*MockOpeningService)(nil)
