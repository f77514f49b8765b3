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

// stockHandler handles HTTP requests related to stock batches.
type stockHandler struct {
	inventoryService portssvc.InventorySvc
}

// newStockHandler creates a new stockHandler.
func newStockHandler(is portssvc.InventorySvc) *stockHandler {
	return &stockHandler{
		inventoryService: is,
	}
}

// registerStockRoutes registers stock batch routes under a tenant group.
func registerStockRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvc) {
	h := newStockHandler(inventoryService)

	rg.GET("/stock/items/:item_id/batches", h.listStockBatches)
}

// listStockBatches godoc
// @Summary List an item's stock batches
// @Description Retrieves the FIFO-costed stock batches of one item, oldest purchase first
// @Tags stock
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param item_id path string true "Item ID"
// @Param includeDepleted query bool false "Include depleted batches" default(false)
// @Success 200 {object} dto.ListStockBatchesResponse
// @Failure 500 {object} map[string]string "Failed to list stock batches"
// @Router /tenants/{tenant_id}/stock/items/{item_id}/batches [get]
func (h *stockHandler) listStockBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	itemID := c.Param("item_id")

	var params dto.ListStockBatchesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	batches, err := h.inventoryService.ListStockBatches(c.Request.Context(), tenantID, itemID, params.IncludeDepleted)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item has no stock batches"})
			return
		}
		logger.Error("Failed to list stock batches", slog.String("error", err.Error()), slog.String("item_id", itemID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stock batches"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListStockBatchesResponse(itemID, batches))
}
