package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
	portssvc "github.com/bahikhata/retail_ledger/internal/core/ports/services"
	"github.com/bahikhata/retail_ledger/internal/dto"
	"github.com/bahikhata/retail_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests for ledger verification and
// discrepancy workflow.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvc
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(rs portssvc.ReconciliationSvc) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
	}
}

// registerReconciliationRoutes registers verification and discrepancy routes
// under a tenant group.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvc) {
	h := newReconciliationHandler(reconciliationService)

	rg.GET("/reconciliation", h.verifyLedger)

	discrepancies := rg.Group("/discrepancies")
	{
		discrepancies.GET("", h.listDiscrepancies)
		discrepancies.POST("/:discrepancy_id/resolve", h.resolveDiscrepancy)
	}
}

// verifyLedger godoc
// @Summary Verify ledger invariants
// @Description Re-checks the tenant's global debit/credit equality as of a date and reports the bucket breakdown
// @Tags reconciliation
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param asOf query string false "Verification date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.ReconciliationReportResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to verify ledger"
// @Router /tenants/{tenant_id}/reconciliation [get]
func (h *reconciliationHandler) verifyLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tenant ID required in path"})
		return
	}

	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	report, err := h.reconciliationService.VerifyTenant(c.Request.Context(), tenantID, asOf)
	if err != nil {
		logger.Error("Failed to verify ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify ledger"})
		return
	}

	if !report.InBalance {
		logger.Warn("Ledger verification found an imbalance",
			slog.String("difference", report.Difference.String()))
	}

	c.JSON(http.StatusOK, dto.ToReconciliationReportResponse(report))
}

// listDiscrepancies godoc
// @Summary List discrepancy records
// @Description Retrieves the tenant's recorded imbalance discrepancies, open ones by default
// @Tags reconciliation
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param includeResolved query bool false "Include resolved discrepancies" default(false)
// @Success 200 {array} dto.DiscrepancyResponse
// @Failure 500 {object} map[string]string "Failed to list discrepancies"
// @Router /tenants/{tenant_id}/discrepancies [get]
func (h *reconciliationHandler) listDiscrepancies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	includeResolved := c.Query("includeResolved") == "true"

	discrepancies, err := h.reconciliationService.ListDiscrepancies(c.Request.Context(), tenantID, includeResolved)
	if err != nil {
		logger.Error("Failed to list discrepancies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list discrepancies"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDiscrepancyResponses(discrepancies))
}

// resolveDiscrepancy godoc
// @Summary Resolve a discrepancy
// @Description Closes an open discrepancy with an operator's note
// @Tags reconciliation
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param discrepancy_id path string true "Discrepancy ID"
// @Param resolution body dto.ResolveDiscrepancyRequest true "Resolution note"
// @Success 204 "Resolved"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Discrepancy not found or already resolved"
// @Failure 500 {object} map[string]string "Failed to resolve discrepancy"
// @Router /tenants/{tenant_id}/discrepancies/{discrepancy_id}/resolve [post]
func (h *reconciliationHandler) resolveDiscrepancy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	discrepancyID := c.Param("discrepancy_id")
	callerID := middleware.GetCallerIDFromContext(c)

	req := dto.ResolveDiscrepancyRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for resolveDiscrepancy", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resolution note is required"})
		return
	}

	err := h.reconciliationService.ResolveDiscrepancy(c.Request.Context(), tenantID, discrepancyID, req.Note, callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Discrepancy not found or already resolved", slog.String("discrepancy_id", discrepancyID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Discrepancy not found or already resolved"})
			return
		}
		logger.Error("Failed to resolve discrepancy", slog.String("error", err.Error()), slog.String("discrepancy_id", discrepancyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve discrepancy"})
		return
	}

	logger.Info("Discrepancy resolved", slog.String("discrepancy_id", discrepancyID))
	c.Status(http.StatusNoContent)
}
