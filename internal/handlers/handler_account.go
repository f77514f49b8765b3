package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
	portssvc "github.com/bahikhata/retail_ledger/internal/core/ports/services"
	"github.com/bahikhata/retail_ledger/internal/dto"
	"github.com/bahikhata/retail_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bankAccountHandler handles HTTP requests related to cash/bank accounts.
type bankAccountHandler struct {
	accountService portssvc.BankAccountSvc
}

// newBankAccountHandler creates a new bankAccountHandler.
func newBankAccountHandler(as portssvc.BankAccountSvc) *bankAccountHandler {
	return &bankAccountHandler{
		accountService: as,
	}
}

// registerBankAccountRoutes registers account routes under a tenant group.
func registerBankAccountRoutes(rg *gin.RouterGroup, accountService portssvc.BankAccountSvc) {
	h := newBankAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_id", h.getAccount)
		accounts.DELETE("/:account_id", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Register a cash/bank account
// @Description Creates a new cash or bank account for the tenant
// @Tags accounts
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param account body dto.CreateBankAccountRequest true "Account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /tenants/{tenant_id}/accounts [post]
func (h *bankAccountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tenant ID required in path"})
		return
	}
	callerID := middleware.GetCallerIDFromContext(c)

	req := dto.CreateBankAccountRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, req, callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	logger.Info("Bank account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// listAccounts godoc
// @Summary List cash/bank accounts
// @Description Retrieves all of the tenant's accounts
// @Tags accounts
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {array} dto.BankAccountResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /tenants/{tenant_id}/accounts [get]
func (h *bankAccountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _ := middleware.GetTenantIDFromContext(c)

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponses(accounts))
}

// getAccount godoc
// @Summary Get a cash/bank account
// @Description Retrieves one account with its current running balance
// @Tags accounts
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /tenants/{tenant_id}/accounts/{account_id} [get]
func (h *bankAccountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	accountID := c.Param("account_id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), tenantID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to get account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate a cash/bank account
// @Description Marks the account inactive; its ledger history stays intact
// @Tags accounts
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param account_id path string true "Account ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to deactivate account"
// @Router /tenants/{tenant_id}/accounts/{account_id} [delete]
func (h *bankAccountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	accountID := c.Param("account_id")
	callerID := middleware.GetCallerIDFromContext(c)

	err := h.accountService.DeactivateAccount(c.Request.Context(), tenantID, accountID, callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		return
	}

	logger.Info("Bank account deactivated", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}
