package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

const (
	testBusinessID = "biz-1"
	testUserID     = "user-1"
	testJWTSecret  = "test-secret-key-that-is-long-enough"
)

// apiSuite wires the full route table against mocked services.
type apiSuite struct {
	suite.Suite
	router    *gin.Engine
	business  *MockBusinessService
	accounts  *MockAccountService
	vouchers  *MockVoucherService
	ledger    *MockLedgerService
	reporting *MockReportingService
	opening   *MockOpeningService
}

func (s *apiSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.business = new(MockBusinessService)
	s.accounts = new(MockAccountService)
	s.vouchers = new(MockVoucherService)
	s.ledger = new(MockLedgerService)
	s.reporting = new(MockReportingService)
	s.opening = new(MockOpeningService)

	cfg := &config.Config{
		JWTSecret:            testJWTSecret,
		IsProduction:         true,
		DisplayCurrency:      "INR",
		FiscalYearStartMonth: time.April,
		CORSAllowedOrigins:   []string{"http://localhost:5173"},
	}
	services := &portssvc.ServiceContainer{
		Business:  s.business,
		Account:   s.accounts,
		Voucher:   s.vouchers,
		Ledger:    s.ledger,
		Reporting: s.reporting,
		Opening:   s.opening,
	}

	s.router = gin.New()
	s.Require().NoError(handlers.RegisterRoutes(s.router, cfg, services, &utils.PosthogClientWrapper{}))
}

func (s *apiSuite) TearDownTest() {
	s.business.AssertExpectations(s.T())
	s.accounts.AssertExpectations(s.T())
	s.vouchers.AssertExpectations(s.T())
	s.ledger.AssertExpectations(s.T())
	s.reporting.AssertExpectations(s.T())
	s.opening.AssertExpectations(s.T())
}

// token signs a JWT the way the auth service issues them.
func (s *apiSuite) token(businessID string, role domain.BusinessRole) string {
	claims := middleware.Claims{
		BusinessID: businessID,
		Role:       string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ledger-test",
			Subject:   testUserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do sends a request as an owner of testBusinessID.
func (s *apiSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	return s.doAs(s.token(testBusinessID, domain.RoleOwner), method, path, body)
}

func (s *apiSuite) doAs(token, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, "/api/v1"+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *apiSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
