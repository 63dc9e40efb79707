package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// businessHandler handles HTTP requests related to the tenant registry.
type businessHandler struct {
	businessService portssvc.BusinessSvcFacade
}

func newBusinessHandler(bs portssvc.BusinessSvcFacade) *businessHandler {
	return &businessHandler{businessService: bs}
}

// registerBusinessRoutes registers business routes. Creation needs only an
// authenticated user; the rest are scoped to the business in the token.
func registerBusinessRoutes(authed *gin.RouterGroup, tenant *gin.RouterGroup, businessService portssvc.BusinessSvcFacade) {
	h := newBusinessHandler(businessService)

	authed.POST("/businesses", h.createBusiness)

	businesses := tenant.Group("/businesses")
	{
		businesses.GET("/status", h.getStatus)
		businesses.GET("/integrity", h.getIntegrity)
	}
}

// createBusiness godoc
// @Summary Create a business
// @Description Creates a business and seeds its six system account groups. Books stay closed until the opening position is recorded.
// @Tags businesses
// @Accept  json
// @Produce  json
// @Param   business body dto.CreateBusinessRequest true "Business details"
// @Success 201 {object} dto.BusinessResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create business"
// @Security BearerAuth
// @Router /businesses [post]
func (h *businessHandler) createBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBusiness", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create business")
		return
	}

	logger.Info("Business created successfully", slog.String("business_id", business.BusinessID))
	c.JSON(http.StatusCreated, dto.ToBusinessResponse(*business))
}

// getStatus godoc
// @Summary Get business status
// @Description Returns the business of the token, including whether its books are open.
// @Tags businesses
// @Produce  json
// @Success 200 {object} dto.BusinessResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Business not found"
// @Security BearerAuth
// @Router /businesses/status [get]
func (h *businessHandler) getStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	business, err := h.businessService.GetStatus(c.Request.Context(), businessID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get business status")
		return
	}
	c.JSON(http.StatusOK, dto.ToBusinessResponse(*business))
}

// getIntegrity godoc
// @Summary Bootstrap integrity
// @Description Counts the accounts, vouchers and postings the business has recorded.
// @Tags businesses
// @Produce  json
// @Success 200 {object} dto.IntegrityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute integrity"
// @Security BearerAuth
// @Router /businesses/integrity [get]
func (h *businessHandler) getIntegrity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	report, err := h.businessService.BootstrapIntegrity(c.Request.Context(), businessID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute integrity")
		return
	}
	c.JSON(http.StatusOK, dto.ToIntegrityResponse(*report))
}
