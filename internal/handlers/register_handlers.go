package handlers

import (
	"github.com/bahikhata/retail_ledger/cmd/docs"
	portssvc "github.com/bahikhata/retail_ledger/internal/core/ports/services"
	"github.com/bahikhata/retail_ledger/internal/middleware"
	"github.com/bahikhata/retail_ledger/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes
	setupAPIV1Routes(r, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	// The GST split calculator is pure and tenant-independent
	registerGSTRoutes(v1)

	// Everything else is scoped to a tenant; TenantResolver extracts the
	// tenant ID and caller identity and enriches the request logger.
	tenant := v1.Group("/tenants/:tenant_id", middleware.TenantResolver())
	{
		registerPostingRoutes(tenant, services.Posting)
		registerBankAccountRoutes(tenant, services.BankAccount)
		registerReportingRoutes(tenant, services.Reporting)
		registerReconciliationRoutes(tenant, services.Reconciliation)
		registerStockRoutes(tenant, services.Inventory)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
