package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OpeningHandlerTestSuite struct {
	apiSuite
}

func (suite *OpeningHandlerTestSuite) request() dto.OpeningPositionRequest {
	return dto.OpeningPositionRequest{
		OpeningBalances: []dto.OpeningBalanceLineRequest{
			{LedgerName: "HDFC Bank", Group: "Bank Accounts", DrCr: "DR", Amount: decimal.NewFromInt(100000)},
			{LedgerName: "Capital", Group: "Capital Account", DrCr: "CR", Amount: decimal.NewFromInt(150000)},
		},
		Items: []dto.OpeningStockItemRequest{
			{Name: "Widget", InitialQty: decimal.NewFromInt(100), UnitCost: decimal.NewFromInt(500)},
		},
	}
}

func (suite *OpeningHandlerTestSuite) TestSubmit_Accepted() {
	result := &domain.OpeningPositionResult{
		VoucherID:     "v-op",
		VoucherNumber: domain.OpeningVoucherNumber,
		VoucherDate:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		LedgerCount:   3,
		StockValue:    decimal.NewFromInt(50000),
		DebitTotal:    decimal.NewFromInt(150000),
		CreditTotal:   decimal.NewFromInt(150000),
	}
	suite.opening.On("SubmitOpeningPosition", mock.Anything, testBusinessID,
		mock.MatchedBy(func(r dto.OpeningPositionRequest) bool {
			return len(r.OpeningBalances) == 2 && len(r.Items) == 1
		}), testUserID).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/opening-position", suite.request())

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.OpeningPositionResponse
	suite.decode(w, &body)
	suite.Equal("OP-BAL-01", body.VoucherNumber)
	suite.Equal(3, body.LedgerCount)
	suite.True(body.StockValue.Equal(decimal.NewFromInt(50000)))
}

func (suite *OpeningHandlerTestSuite) TestSubmit_UnbalancedShowsVariance() {
	unbalanced := &apperrors.UnbalancedError{
		Subject: "opening position",
		Debit:   decimal.NewFromInt(150000),
		Credit:  decimal.NewFromInt(100000),
	}
	suite.opening.On("SubmitOpeningPosition", mock.Anything, testBusinessID, mock.Anything, testUserID).Return(nil, unbalanced).Once()

	w := suite.do(http.MethodPost, "/opening-position", suite.request())

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(w.Body.String(), `"variance":"50000.00"`)
}

func (suite *OpeningHandlerTestSuite) TestSubmit_AlreadyInitialized() {
	suite.opening.On("SubmitOpeningPosition", mock.Anything, testBusinessID, mock.Anything, testUserID).
		Return(nil, fmt.Errorf("%w: business already initialized", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPost, "/opening-position", suite.request())

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *OpeningHandlerTestSuite) TestSubmit_EmptyBalancesRejected() {
	w := suite.do(http.MethodPost, "/opening-position", dto.OpeningPositionRequest{})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *OpeningHandlerTestSuite) TestSubmit_ViewerForbidden() {
	w := suite.doAs(suite.token(testBusinessID, domain.RoleViewer), http.MethodPost, "/opening-position", suite.request())

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *OpeningHandlerTestSuite) TestCreateBusiness_WithoutBusinessClaim() {
	fy := "2024-04-01"
	req := dto.CreateBusinessRequest{Name: "Acme Traders", FinancialYearStart: &fy}
	created := &domain.Business{
		BusinessID:         "biz-new",
		Name:               "Acme Traders",
		FinancialYearStart: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	suite.business.On("CreateBusiness", mock.Anything, req, testUserID).Return(created, nil).Once()

	w := suite.doAs(suite.token("", domain.RoleOwner), http.MethodPost, "/businesses", req)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.BusinessResponse
	suite.decode(w, &body)
	suite.Equal("biz-new", body.BusinessID)
	suite.False(body.IsInitialized)
}

func (suite *OpeningHandlerTestSuite) TestBusinessStatus() {
	suite.business.On("GetStatus", mock.Anything, testBusinessID).
		Return(&domain.Business{BusinessID: testBusinessID, Name: "Acme", IsInitialized: true}, nil).Once()

	w := suite.do(http.MethodGet, "/businesses/status", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"isInitialized":true`)
}

func (suite *OpeningHandlerTestSuite) TestBusinessIntegrity_Clean() {
	suite.business.On("BootstrapIntegrity", mock.Anything, testBusinessID).
		Return(&domain.IntegrityReport{BusinessID: testBusinessID}, nil).Once()

	w := suite.do(http.MethodGet, "/businesses/integrity", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.IntegrityResponse
	suite.decode(w, &body)
	suite.True(body.IsClean)
}

func TestOpeningHandler(t *testing.T) {
	suite.Run(t, new(OpeningHandlerTestSuite))
}
