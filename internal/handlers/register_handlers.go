package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/rbank-app/budget_backend/internal/core/ports/services"
	"github.com/rbank-app/budget_backend/internal/middleware"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	// Every API operation is scoped by the caller's budget code
	v1 := r.Group("/api/v1", middleware.BudgetCodeMiddleware())

	registerBankRoutes(v1, services.Bank, services.Ledger)
	registerTransactionRoutes(v1, services.Ledger, services.Bank)
	registerReportingRoutes(v1, services.Reporting)
}
