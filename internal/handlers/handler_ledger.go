package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
}

func newLedgerHandler(ls portssvc.LedgerSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers the account statement route.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	h := newLedgerHandler(ledgerService)
	rg.GET("/ledger/:accountID", h.getStatement)
}

// getStatement godoc
// @Summary Account ledger statement
// @Description Lists the posted lines of an account in [from, to] ordered by date, with an opening balance and running balances.
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.LedgerStatementResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to build ledger statement"
// @Security BearerAuth
// @Router /ledger/{accountID} [get]
func (h *ledgerHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.LedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ledger statement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	from, err := dto.ParseOptionalDate("from", &params.From)
	if err != nil {
		respondWithError(c, logger, err, "Invalid from date")
		return
	}
	to, err := dto.ParseOptionalDate("to", &params.To)
	if err != nil {
		respondWithError(c, logger, err, "Invalid to date")
		return
	}

	statement, err := h.ledgerService.Statement(c.Request.Context(), businessID, c.Param("accountID"), from, to)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build ledger statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerStatementResponse(*statement))
}
