package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionManager ---
type MockTxManager struct {
	mock.Mock
}

var _ portsrepo.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// expectTx wires a transaction that begins, rolls back on exit and, when
// commit is true, commits.
func expectTx(m *MockTxManager, commit bool) {
	m.On("Begin", mock.Anything).Return(nil, nil).Once()
	m.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
	if commit {
		m.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	}
}

// --- Mock BusinessRepository ---
type MockBusinessRepository struct {
	mock.Mock
}

var _ portsrepo.BusinessRepositoryFacade = (*MockBusinessRepository)(nil)

func (m *MockBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessRepository) CountBusinessRecords(ctx context.Context, businessID string) (*domain.IntegrityReport, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrityReport), args.Error(1)
}

func (m *MockBusinessRepository) SaveBusiness(ctx context.Context, tx pgx.Tx, business domain.Business) error {
	args := m.Called(ctx, tx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) FindBusinessByIDForUpdate(ctx context.Context, tx pgx.Tx, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, tx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessRepository) MarkInitialized(ctx context.Context, tx pgx.Tx, businessID, userID string, now time.Time) error {
	args := m.Called(ctx, tx, businessID, userID, now)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) BootstrapGroups(ctx context.Context, tx pgx.Tx, businessID, userID string) (int64, error) {
	args := m.Called(ctx, tx, businessID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) ListGroups(ctx context.Context, businessID string) ([]domain.AccountGroup, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountGroup), args.Error(1)
}

func (m *MockAccountRepository) ListGroupsInTx(ctx context.Context, tx pgx.Tx, businessID string) ([]domain.AccountGroup, error) {
	args := m.Called(ctx, tx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountGroup), args.Error(1)
}

func (m *MockAccountRepository) FindGroupByID(ctx context.Context, businessID, groupID string) (*domain.AccountGroup, error) {
	args := m.Called(ctx, businessID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountGroup), args.Error(1)
}

func (m *MockAccountRepository) EnsureGroup(ctx context.Context, tx pgx.Tx, group domain.AccountGroup) (*domain.AccountGroup, error) {
	args := m.Called(ctx, tx, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountGroup), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, businessID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, businessID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tx pgx.Tx, businessID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, businessID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, businessID string) ([]domain.Account, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) EnsureAccount(ctx context.Context, tx pgx.Tx, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, tx, account)
	if fn, ok := args.Get(0).(func(domain.Account) *domain.Account); ok {
		return fn(account), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, businessID, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, businessID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, filter domain.VoucherFilter) ([]domain.Voucher, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Voucher), args.Get(1).(int64), args.Error(2)
}

func (m *MockVoucherRepository) ListDaybook(ctx context.Context, businessID string, day time.Time) ([]domain.DaybookEntry, error) {
	args := m.Called(ctx, businessID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DaybookEntry), args.Error(1)
}

func (m *MockVoucherRepository) CountUnbalancedDrafts(ctx context.Context, businessID string) (int64, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoucherRepository) FindVoucherByIDForUpdate(ctx context.Context, tx pgx.Tx, businessID, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, tx, businessID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error {
	args := m.Called(ctx, tx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdateVoucherHeader(ctx context.Context, tx pgx.Tx, voucher domain.Voucher) error {
	args := m.Called(ctx, tx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) ReplacePostings(ctx context.Context, tx pgx.Tx, voucherID string, postings []domain.Posting) error {
	args := m.Called(ctx, tx, voucherID, postings)
	return args.Error(0)
}

func (m *MockVoucherRepository) UpdateVoucherStatus(ctx context.Context, tx pgx.Tx, voucherID string, status domain.VoucherStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, voucherID, status, userID, now)
	return args.Error(0)
}

func (m *MockVoucherRepository) DeleteVoucher(ctx context.Context, tx pgx.Tx, businessID, voucherID string) error {
	args := m.Called(ctx, tx, businessID, voucherID)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SumMovementBefore(ctx context.Context, businessID, accountID string, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, businessID, accountID, before)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) FindLedgerLines(ctx context.Context, businessID, accountID string, from, to *time.Time) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, businessID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountBalances(ctx context.Context, businessID string, from *time.Time, to time.Time) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, businessID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepository = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) EnsureProduct(ctx context.Context, tx pgx.Tx, product domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, tx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockInventoryRepository) SaveValuations(ctx context.Context, tx pgx.Tx, valuations []domain.InventoryValuation) error {
	args := m.Called(ctx, tx, valuations)
	return args.Error(0)
}

func (m *MockInventoryRepository) GetStockSummary(ctx context.Context, businessID string, asOf time.Time) (domain.StockSummary, error) {
	args := m.Called(ctx, businessID, asOf)
	return args.Get(0).(domain.StockSummary), args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
