package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// RegisterAccountRoutes registers account group and account routes on a tenant-scoped group.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)
	writer := middleware.RequireWriter()

	groups := rg.Group("/account-groups")
	{
		groups.GET("", h.listGroups)
		groups.POST("/bootstrap", writer, h.bootstrapGroups)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.POST("", writer, h.createAccount)
	}
}

// listGroups godoc
// @Summary List account groups
// @Description Lists the account groups of the business ordered by code.
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountGroupResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list account groups"
// @Security BearerAuth
// @Router /account-groups [get]
func (h *accountHandler) listGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	groups, err := h.accountService.ListGroups(c.Request.Context(), businessID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list account groups")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountGroupResponses(groups))
}

// bootstrapGroups godoc
// @Summary Bootstrap system account groups
// @Description Inserts any missing system groups. Safe to call repeatedly.
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.BootstrapGroupsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Read-only role"
// @Failure 500 {object} map[string]string "Failed to bootstrap account groups"
// @Security BearerAuth
// @Router /account-groups/bootstrap [post]
func (h *accountHandler) bootstrapGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, userID, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	inserted, groups, err := h.accountService.BootstrapGroups(c.Request.Context(), businessID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to bootstrap account groups")
		return
	}

	logger.Info("Account groups bootstrapped", slog.Int64("inserted", inserted))
	c.JSON(http.StatusOK, dto.BootstrapGroupsResponse{
		Inserted: inserted,
		Groups:   dto.ToAccountGroupResponses(groups),
	})
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a ledger account under an existing group of the business
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account code already used"
// @Failure 422 {object} map[string]string "Unknown account group"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	businessID, userID, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}
	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("name", req.Name))

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), businessID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(*newAccount))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves details for a specific account of the business
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), businessID, accountID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(*account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists every account of the business ordered by code, with group name and category
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessID, _, ok := tenantFromContext(c, logger)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), businessID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list accounts")
		return
	}

	logger.Info("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}
