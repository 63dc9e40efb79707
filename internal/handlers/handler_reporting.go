package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService     portssvc.ReportingService
	fiscalYearStartMonth time.Month
	displayCurrency      string
}

// RegisterReportingRoutes registers the report routes under /reports and the dashboard.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, fiscalYearStartMonth time.Month, displayCurrency string) {
	if fiscalYearStartMonth < time.January || fiscalYearStartMonth > time.December {
		fiscalYearStartMonth = time.April
	}
	h := &reportingHandler{
		reportingService:     reportingService,
		fiscalYearStartMonth: fiscalYearStartMonth,
		displayCurrency:      displayCurrency,
	}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
	}
	rg.GET("/dashboard/summary", h.getDashboard)
}

// bindPeriod parses the period query; `to` defaults to today.
func bindPeriod(c *gin.Context, logger *slog.Logger) (from *time.Time, to time.Time, params dto.ReportPeriodParams, ok bool) {
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind report query params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return nil, time.Time{}, params, false
	}
	from, err := dto.ParseOptionalDate("from", &params.From)
	if err != nil {
		respondWithError(c, logger, err, "Invalid from date")
		return nil, time.Time{}, params, false
	}
	to = today()
	if params.To != "" {
		if to, err = dto.ParseDate("to", params.To); err != nil {
			respondWithError(c, logger, err, "Invalid to date")
			return nil, time.Time{}, params, false
		}
	}
	return from, to, params, true
}

// bindAsOf parses ?asOf, defaulting to today.
func bindAsOf(c *gin.Context, logger *slog.Logger) (time.Time, bool) {
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind asOf query param", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return time.Time{}, false
	}
	if params.AsOf == "" {
		return today(), true
	}
	asOf, err := dto.ParseDate("asOf", params.AsOf)
	if err != nil {
		respondWithError(c, logger, err, "Invalid asOf date")
		return time.Time{}, false
	}
	return asOf, true
}

// getTrialBalance godoc
// @Summary Trial balance
// @Description Every account's closing balance as of `to`, split into debit and credit columns. Period movement is reported when `from` is given.
// @Tags reports
// @Produce  json
// @Param   from query string false "Start of the movement period (YYYY-MM-DD)"
// @Param   to query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 500 {object} map[string]string "Failed to generate trial balance"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}
	from, to, _, ok := bindPeriod(c, logger)
	if !ok {
		return
	}

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), businessID, from, to)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(*tb))
}

// getProfitAndLoss godoc
// @Summary Profit and loss
// @Description Income and expense movement for a period, optionally compared against a second period.
// @Tags reports
// @Produce  json
// @Param   from query string false "Period start (YYYY-MM-DD), defaults to the fiscal year start"
// @Param   to query string false "Period end (YYYY-MM-DD), defaults to today"
// @Param   compareFrom query string false "Comparison period start"
// @Param   compareTo query string false "Comparison period end"
// @Success 200 {object} dto.ProfitAndLossComparisonResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 500 {object} map[string]string "Failed to generate profit and loss"
// @Security BearerAuth
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}
	fromPtr, to, params, ok := bindPeriod(c, logger)
	if !ok {
		return
	}
	from := domain.FiscalYearStart(to, h.fiscalYearStartMonth)
	if fromPtr != nil {
		from = *fromPtr
	}

	compareFrom, err := dto.ParseOptionalDate("compareFrom", &params.CompareFrom)
	if err != nil {
		respondWithError(c, logger, err, "Invalid compareFrom date")
		return
	}
	compareTo, err := dto.ParseOptionalDate("compareTo", &params.CompareTo)
	if err != nil {
		respondWithError(c, logger, err, "Invalid compareTo date")
		return
	}

	pl, err := h.reportingService.ProfitAndLoss(c.Request.Context(), businessID, from, to, compareFrom, compareTo)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate profit and loss")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossComparisonResponse(*pl))
}

// getBalanceSheet godoc
// @Summary Balance sheet
// @Description Assets against liabilities, equity and retained profit as of a date.
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to generate balance sheet"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}
	asOf, ok := bindAsOf(c, logger)
	if !ok {
		return
	}

	bs, err := h.reportingService.BalanceSheet(c.Request.Context(), businessID, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(*bs))
}

// getDashboard godoc
// @Summary Dashboard summary
// @Description Cash, receivables, payables, stock and profit figures with alerts and recent vouchers.
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to generate dashboard"
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}
	asOf, ok := bindAsOf(c, logger)
	if !ok {
		return
	}

	summary, err := h.reportingService.DashboardSummary(c.Request.Context(), businessID, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(*summary, h.displayCurrency))
}
