package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantResolver extracts the tenant from the :tenant_id path parameter and
// the caller identity from the X-Caller-ID header, making both available to
// handlers and services. Every ledger route is tenant-scoped, so a missing
// tenant ID aborts the request.
func TenantResolver() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.Param("tenant_id")
		if tenantID == "" {
			GetLoggerFromCtx(c.Request.Context()).Warn("Request missing tenant ID")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "tenant_id is required"})
			return
		}

		callerID := c.GetHeader("X-Caller-ID")
		if callerID == "" {
			callerID = "system"
		}

		c.Set(string(tenantIDKey), tenantID)
		c.Set(string(callerIDKey), callerID)

		// Enrich the request-scoped logger so every downstream log line
		// carries the tenant.
		logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("tenant_id", tenantID))
		ctx := context.WithValue(c.Request.Context(), loggerCtxKey, logger)
		ctx = context.WithValue(ctx, tenantIDKey, tenantID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
