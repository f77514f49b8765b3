package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
	portssvc "github.com/bahikhata/retail_ledger/internal/core/ports/services"
	"github.com/bahikhata/retail_ledger/internal/core/domain"
	"github.com/bahikhata/retail_ledger/internal/dto"
	"github.com/bahikhata/retail_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles HTTP requests related to the posting engine.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newPostingHandler creates a new postingHandler.
func newPostingHandler(postingService portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{
		postingService: postingService,
	}
}

// registerPostingRoutes registers posting engine routes under a tenant group.
func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingService)

	postings := rg.Group("/postings")
	{
		postings.POST("", h.postDocument)
		postings.GET("", h.listPostings)
		postings.GET("/by-reference", h.getBatchByReference)
		postings.GET("/:batch_id", h.getBatch)
	}

	rg.GET("/documents/:reference_type/:reference_id/status", h.getDocumentStatus)
	rg.GET("/documents/:reference_type/:reference_id/lines", h.getDocumentLines)
}

// postDocument godoc
// @Summary Post a business document to the ledger
// @Description Translates the document into a balanced batch of ledger lines and appends it atomically
// @Tags postings
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param document body dto.CreatePostingRequest true "Document to post"
// @Success 201 {object} dto.PostingBatchResponse
// @Failure 400 {object} map[string]string "Invalid request or failed validation"
// @Failure 409 {object} map[string]string "Document already posted"
// @Failure 422 {object} apperrors.LedgerImbalanceError "Posting would break the ledger balance"
// @Failure 500 {object} map[string]string "Failed to post document"
// @Router /tenants/{tenant_id}/postings [post]
func (h *postingHandler) postDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tenant ID required in path"})
		return
	}
	callerID := middleware.GetCallerIDFromContext(c)

	req := dto.CreatePostingRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	batch, err := h.postingService.PostDocument(c.Request.Context(), tenantID, req, callerID)
	if err != nil {
		if imbalance, ok := apperrors.IsLedgerImbalance(err); ok {
			logger.Error("Posting rejected, ledger imbalance beyond tolerance",
				slog.String("difference", imbalance.Difference.String()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": imbalance.Error(), "imbalance": imbalance})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicatePosting) {
			logger.Warn("Duplicate posting attempt", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error posting document", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to post document in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post document"})
		return
	}

	logger.Info("Document posted successfully", slog.String("batch_id", batch.BatchID))
	c.JSON(http.StatusCreated, dto.ToPostingBatchResponse(batch))
}

// getBatch godoc
// @Summary Get a posting batch
// @Description Retrieves a posting batch and its ledger lines by batch ID
// @Tags postings
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param batch_id path string true "Batch ID"
// @Success 200 {object} dto.PostingBatchResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 500 {object} map[string]string "Failed to retrieve batch"
// @Router /tenants/{tenant_id}/postings/{batch_id} [get]
func (h *postingHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	batchID := c.Param("batch_id")

	batch, err := h.postingService.GetBatchByID(c.Request.Context(), tenantID, batchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Posting batch not found", slog.String("batch_id", batchID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Posting batch not found"})
			return
		}
		logger.Error("Failed to get posting batch", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posting batch"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingBatchResponse(batch))
}

// getBatchByReference godoc
// @Summary Get the posting batch for a source document
// @Description Looks up the batch posted for a (referenceType, referenceID, documentKind) triple
// @Tags postings
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param referenceType query string true "Reference type, e.g. invoice"
// @Param referenceID query string true "Source document ID"
// @Param documentKind query string true "Document kind, e.g. sale_invoice"
// @Success 200 {object} dto.PostingBatchResponse
// @Failure 400 {object} map[string]string "Missing query parameters"
// @Failure 404 {object} map[string]string "No batch posted for this document"
// @Failure 500 {object} map[string]string "Failed to retrieve batch"
// @Router /tenants/{tenant_id}/postings/by-reference [get]
func (h *postingHandler) getBatchByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	refType := c.Query("referenceType")
	refID := c.Query("referenceID")
	kind := c.Query("documentKind")
	if refType == "" || refID == "" || kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "referenceType, referenceID and documentKind are required"})
		return
	}

	batch, err := h.postingService.GetBatchByReference(c.Request.Context(), tenantID, refType, refID, domain.DocumentKind(kind))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Debug("No batch posted for reference",
				slog.String("reference_type", refType), slog.String("reference_id", refID))
			c.JSON(http.StatusNotFound, gin.H{"error": "No batch posted for this document"})
			return
		}
		logger.Error("Failed to get batch by reference", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posting batch"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingBatchResponse(batch))
}

// getDocumentStatus godoc
// @Summary Get the settlement status of a source document
// @Description Retrieves the denormalized payment status and balance due the posting engine maintains for a document
// @Tags postings
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param reference_type path string true "Reference type, e.g. invoice"
// @Param reference_id path string true "Source document ID"
// @Success 200 {object} dto.DocumentStatusResponse
// @Failure 404 {object} map[string]string "Document has no posted status"
// @Failure 500 {object} map[string]string "Failed to retrieve status"
// @Router /tenants/{tenant_id}/documents/{reference_type}/{reference_id}/status [get]
func (h *postingHandler) getDocumentStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	refType := c.Param("reference_type")
	refID := c.Param("reference_id")

	status, err := h.postingService.GetDocumentStatus(c.Request.Context(), tenantID, refType, refID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document has no posted status"})
			return
		}
		logger.Error("Failed to get document status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document status"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentStatusResponse(status))
}

// getDocumentLines godoc
// @Summary List the ledger lines posted for a source document
// @Description Retrieves every ledger line referencing a document, across all batches posted against it
// @Tags postings
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param reference_type path string true "Reference type, e.g. invoice"
// @Param reference_id path string true "Source document ID"
// @Success 200 {object} dto.ListLedgerLinesResponse
// @Failure 500 {object} map[string]string "Failed to retrieve lines"
// @Router /tenants/{tenant_id}/documents/{reference_type}/{reference_id}/lines [get]
func (h *postingHandler) getDocumentLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	refType := c.Param("reference_type")
	refID := c.Param("reference_id")

	lines, err := h.postingService.ListDocumentLines(c.Request.Context(), tenantID, refType, refID)
	if err != nil {
		logger.Error("Failed to list document lines", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document lines"})
		return
	}

	c.JSON(http.StatusOK, dto.ListLedgerLinesResponse{Lines: dto.ToLedgerLineResponses(lines)})
}

// listPostings godoc
// @Summary List posting batches
// @Description Retrieves a tenant's posting batches, newest first, with token pagination
// @Tags postings
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListPostingsResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Failed to list postings"
// @Router /tenants/{tenant_id}/postings [get]
func (h *postingHandler) listPostings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _ := middleware.GetTenantIDFromContext(c)

	var params dto.ListPostingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for listPostings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.postingService.ListBatches(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list postings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list postings"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
