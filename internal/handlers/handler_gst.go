package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
	"github.com/bahikhata/retail_ledger/internal/dto"
	"github.com/bahikhata/retail_ledger/internal/middleware"
	"github.com/bahikhata/retail_ledger/internal/utils/gst"
	"github.com/gin-gonic/gin"
)

// gstHandler exposes the GST split calculator as a standalone endpoint. The
// computation is pure, so the handler calls the calculator directly.
type gstHandler struct{}

// registerGSTRoutes registers the GST calculator routes.
func registerGSTRoutes(rg *gin.RouterGroup) {
	h := &gstHandler{}

	rg.POST("/gst/split", h.calculateSplit)
}

// calculateSplit godoc
// @Summary Calculate a GST split
// @Description Splits the tax on a taxable value into CGST+SGST (same state) or IGST (interstate)
// @Tags gst
// @Accept json
// @Produce json
// @Param calculation body dto.GSTSplitRequest true "Taxable value, rate and state relation"
// @Success 200 {object} dto.GSTSplitResponse
// @Failure 400 {object} map[string]string "Invalid taxable value or rate"
// @Router /gst/split [post]
func (h *gstHandler) calculateSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.GSTSplitRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for calculateSplit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	split, err := gst.Calculate(req.TaxableValue, req.GSTRate, req.SameState)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to calculate GST split", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate GST split"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGSTSplitResponse(req.TaxableValue, split))
}
