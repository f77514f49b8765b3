package middleware

import "github.com/gin-gonic/gin"

// contextKey is a private key type for context values. Using a custom type
// prevents collisions with other packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	tenantIDKey  = contextKey("tenantID")
	callerIDKey  = contextKey("callerID")
)

// GetTenantIDFromContext retrieves the tenant ID extracted by TenantResolver.
// It returns the tenant ID and a boolean indicating if it was found.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(tenantIDKey))
	if !exists {
		return "", false
	}
	tenantID, ok := val.(string)
	if !ok || tenantID == "" {
		return "", false
	}
	return tenantID, true
}

// GetCallerIDFromContext retrieves the caller identity recorded for audit
// fields. It falls back to "system" when the request carried none.
func GetCallerIDFromContext(c *gin.Context) string {
	val, exists := c.Get(string(callerIDKey))
	if !exists {
		return "system"
	}
	callerID, ok := val.(string)
	if !ok || callerID == "" {
		return "system"
	}
	return callerID
}
