package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBusinessService_CreateBusiness(t *testing.T) {
	txManager := new(MockTxManager)
	businessRepo := new(MockBusinessRepository)
	accountRepo := new(MockAccountRepository)
	now := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	svc := services.NewBusinessService(txManager, businessRepo, accountRepo,
		services.WithBusinessFiscalYearStart(time.April),
		services.WithBusinessClock(func() time.Time { return now }))

	expectTx(txManager, true)
	businessRepo.On("SaveBusiness", mock.Anything, mock.Anything, mock.MatchedBy(func(b domain.Business) bool {
		return b.Name == "Acme Traders" && !b.IsInitialized && b.FinancialYearStart.Equal(date("2023-04-01"))
	})).Return(nil).Once()
	accountRepo.On("BootstrapGroups", mock.Anything, mock.Anything, mock.AnythingOfType("string"), "user-1").Return(int64(6), nil).Once()

	business, err := svc.CreateBusiness(context.Background(), dto.CreateBusinessRequest{Name: "  Acme Traders "}, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", business.Name)
	assert.False(t, business.IsInitialized)
	txManager.AssertExpectations(t)
	businessRepo.AssertExpectations(t)
	accountRepo.AssertExpectations(t)
}

func TestBusinessService_CreateBusinessRequiresName(t *testing.T) {
	svc := services.NewBusinessService(new(MockTxManager), new(MockBusinessRepository), new(MockAccountRepository))

	_, err := svc.CreateBusiness(context.Background(), dto.CreateBusinessRequest{Name: " "}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBusinessService_IsInitialized(t *testing.T) {
	businessRepo := new(MockBusinessRepository)
	svc := services.NewBusinessService(new(MockTxManager), businessRepo, new(MockAccountRepository))
	businessRepo.On("FindBusinessByID", mock.Anything, testBusinessID).
		Return(&domain.Business{BusinessID: testBusinessID, IsInitialized: true}, nil).Once()

	ok, err := svc.IsInitialized(context.Background(), testBusinessID)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBusinessService_BootstrapIntegrity(t *testing.T) {
	businessRepo := new(MockBusinessRepository)
	svc := services.NewBusinessService(new(MockTxManager), businessRepo, new(MockAccountRepository))
	businessRepo.On("CountBusinessRecords", mock.Anything, testBusinessID).
		Return(&domain.IntegrityReport{BusinessID: testBusinessID, AccountCount: 3, VoucherCount: 1, PostingCount: 3}, nil).Once()

	report, err := svc.BootstrapIntegrity(context.Background(), testBusinessID)

	require.NoError(t, err)
	assert.False(t, report.IsClean())
	assert.Equal(t, int64(3), report.PostingCount)
}
