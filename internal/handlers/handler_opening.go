package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type openingPositionHandler struct {
	openingService portssvc.OpeningPositionSvc
	posthog        *utils.PosthogClientWrapper
}

// RegisterOpeningPositionRoutes registers the one-time bootstrap route. The
// route stays reachable before initialization since it is what performs it.
func RegisterOpeningPositionRoutes(rg *gin.RouterGroup, openingService portssvc.OpeningPositionSvc, posthog *utils.PosthogClientWrapper) {
	h := &openingPositionHandler{openingService: openingService, posthog: posthog}
	rg.POST("/opening-position", middleware.RequireWriter(), h.submit)
}

// submit godoc
// @Summary Submit the opening position
// @Description Records opening balances and stock as the system voucher OP-BAL-01 and opens the books. Accepted once per business.
// @Tags opening
// @Accept  json
// @Produce  json
// @Param   position body dto.OpeningPositionRequest true "Opening balances and stock items"
// @Success 201 {object} dto.OpeningPositionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Business already initialized"
// @Failure 422 {object} map[string]interface{} "Opening position does not balance"
// @Failure 500 {object} map[string]string "Failed to record opening position"
// @Security BearerAuth
// @Router /opening-position [post]
func (h *openingPositionHandler) submit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpeningPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for opening position", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	businessID, userID, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	result, err := h.openingService.SubmitOpeningPosition(c.Request.Context(), businessID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record opening position")
		return
	}

	if h.posthog != nil {
		h.posthog.Enqueue(userID, businessID, "opening_position_accepted", map[string]any{
			"ledgerCount": result.LedgerCount,
			"stockValue":  result.StockValue.StringFixed(2),
		})
	}
	c.JSON(http.StatusCreated, dto.ToOpeningPositionResponse(*result))
}
