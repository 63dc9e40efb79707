package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// voucherHandler handles HTTP requests for authoring vouchers and moving them through their lifecycle.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

func newVoucherHandler(vs portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{voucherService: vs}
}

// RegisterVoucherRoutes registers voucher routes. Every mutation needs a
// writer role and a business whose books are open.
func RegisterVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade, checker middleware.InitializationChecker) {
	h := newVoucherHandler(voucherService)
	mutate := []gin.HandlerFunc{middleware.RequireWriter(), middleware.RequireInitialized(checker)}
	with := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, mutate...), handler)
	}

	vouchers := rg.Group("/vouchers")
	{
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.POST("", with(h.createVoucher)...)
		vouchers.PUT("/:voucherID", with(h.updateVoucher)...)
		vouchers.DELETE("/:voucherID", with(h.deleteVoucher)...)
		vouchers.POST("/:voucherID/post", with(h.postVoucher)...)
		vouchers.POST("/:voucherID/cancel", with(h.cancelVoucher)...)
		vouchers.POST("/:voucherID/reverse", with(h.reverseVoucher)...)
	}

	rg.GET("/daybook", h.daybook)
}

// createVoucher godoc
// @Summary Create a voucher
// @Description Validates the entries and stores the voucher as DRAFT, or as POSTED when mode is POST.
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucher body dto.CreateVoucherRequest true "Voucher header and entries"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Books not opened yet or read-only role"
// @Failure 422 {object} map[string]interface{} "Unbalanced voucher or foreign account"
// @Failure 500 {object} map[string]string "Failed to create voucher"
// @Security BearerAuth
// @Router /vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	businessID, userID, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), businessID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create voucher")
		return
	}
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(*voucher))
}

// listVouchers godoc
// @Summary List vouchers
// @Description Lists vouchers newest first, filtered by date range, type, status and a search over number and narration.
// @Tags vouchers
// @Produce  json
// @Param   from query string false "Earliest voucher date (YYYY-MM-DD)"
// @Param   to query string false "Latest voucher date (YYYY-MM-DD)"
// @Param   type query string false "Voucher type"
// @Param   status query string false "Voucher status"
// @Param   search query string false "Text matched against number and narration"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token from a previous page"
// @Success 200 {object} dto.ListVouchersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list vouchers"
// @Security BearerAuth
// @Router /vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListVouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	page, err := pagination.FromToken(params.Limit, params.NextToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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

	filter := domain.VoucherFilter{
		BusinessID: businessID,
		From:       from,
		To:         to,
		Search:     params.Search,
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if params.Type != "" {
		voucherType := domain.VoucherType(params.Type)
		filter.Type = &voucherType
	}
	if params.Status != "" {
		status := domain.VoucherStatus(params.Status)
		filter.Status = &status
	}

	vouchers, total, err := h.voucherService.ListVouchers(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list vouchers")
		return
	}

	logger.Info("Vouchers listed successfully", slog.Int("count", len(vouchers)), slog.Int64("total", total))
	c.JSON(http.StatusOK, dto.ListVouchersResponse{
		Vouchers:  dto.ToVoucherResponses(vouchers),
		Total:     total,
		NextToken: page.Next(total),
	})
}

// getVoucher godoc
// @Summary Get a voucher
// @Description Returns the voucher header with its postings in line order. Cancelled vouchers are still returned.
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 500 {object} map[string]string "Failed to retrieve voucher"
// @Security BearerAuth
// @Router /vouchers/{voucherID} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), businessID, c.Param("voucherID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(*voucher))
}

// updateVoucher godoc
// @Summary Update a draft voucher
// @Description Replaces the header and every posting of a DRAFT voucher.
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Param   voucher body dto.UpdateVoucherRequest true "Voucher header and entries"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 422 {object} map[string]interface{} "Voucher not editable or unbalanced"
// @Failure 500 {object} map[string]string "Failed to update voucher"
// @Security BearerAuth
// @Router /vouchers/{voucherID} [put]
func (h *voucherHandler) updateVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	businessID, userID, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), businessID, c.Param("voucherID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(*voucher))
}

// deleteVoucher godoc
// @Summary Delete a draft voucher
// @Description Removes a DRAFT voucher with its postings. Posted vouchers must be cancelled or reversed instead.
// @Tags vouchers
// @Param   voucherID path string true "Voucher ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 422 {object} map[string]string "Voucher is not a draft"
// @Failure 500 {object} map[string]string "Failed to delete voucher"
// @Security BearerAuth
// @Router /vouchers/{voucherID} [delete]
func (h *voucherHandler) deleteVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, userID, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.voucherService.DeleteVoucher(c.Request.Context(), businessID, c.Param("voucherID"), userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete voucher")
		return
	}
	c.Status(http.StatusNoContent)
}

// postVoucher godoc
// @Summary Post a draft voucher
// @Description Moves a DRAFT voucher to POSTED after re-checking that it balances.
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 422 {object} map[string]interface{} "Voucher not a draft or unbalanced"
// @Failure 500 {object} map[string]string "Failed to post voucher"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/post [post]
func (h *voucherHandler) postVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, userID, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	voucher, err := h.voucherService.PostVoucher(c.Request.Context(), businessID, c.Param("voucherID"), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(*voucher))
}

// cancelVoucher godoc
// @Summary Cancel a voucher
// @Description Voids a DRAFT or POSTED voucher. The record is kept but no longer affects balances.
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 422 {object} map[string]string "Voucher already cancelled"
// @Failure 500 {object} map[string]string "Failed to cancel voucher"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/cancel [post]
func (h *voucherHandler) cancelVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, userID, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	voucher, err := h.voucherService.CancelVoucher(c.Request.Context(), businessID, c.Param("voucherID"), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to cancel voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(*voucher))
}

// reverseVoucher godoc
// @Summary Reverse a posted voucher
// @Description Creates a POSTED voucher with every entry side flipped. The original stays POSTED.
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Param   reversal body dto.ReverseVoucherRequest true "Reversal number, date and narration"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 422 {object} map[string]string "Voucher not posted or date before original"
// @Failure 500 {object} map[string]string "Failed to reverse voucher"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/reverse [post]
func (h *voucherHandler) reverseVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReverseVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	businessID, userID, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	reversal, err := h.voucherService.ReverseVoucher(c.Request.Context(), businessID, c.Param("voucherID"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reverse voucher")
		return
	}
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(*reversal))
}

// daybook godoc
// @Summary Daybook
// @Description Lists the non-cancelled vouchers of one day with their debit and credit totals.
// @Tags vouchers
// @Produce  json
// @Param   date query string false "Day to list (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DaybookResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to build daybook"
// @Security BearerAuth
// @Router /daybook [get]
func (h *voucherHandler) daybook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	day := today()
	if raw := c.Query("date"); raw != "" {
		parsed, err := dto.ParseDate("date", raw)
		if err != nil {
			respondWithError(c, logger, err, "Invalid date")
			return
		}
		day = parsed
	}

	entries, err := h.voucherService.Daybook(c.Request.Context(), businessID, day)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build daybook")
		return
	}
	c.JSON(http.StatusOK, dto.ToDaybookResponse(day, entries))
}

// today is the current calendar date in UTC.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
