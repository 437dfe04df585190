package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BudgetCodeHeader carries the opaque tenant partition key on every API request.
const BudgetCodeHeader = "X-Budget-Code"

// BudgetCodeMiddleware creates a Gin middleware handler that extracts the
// caller's budget code from the request header and stores it in the request
// context. Requests without a budget code never reach the core handlers.
func BudgetCodeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		budgetID := c.GetHeader(BudgetCodeHeader)
		if budgetID == "" {
			logger.Warn("Budget code header missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Budget code required"})
			return
		}

		ctxWithBudget := context.WithValue(c.Request.Context(), budgetIDKey, budgetID)

		// Enrich the request logger so every downstream log line carries the scope
		enrichedLogger := logger.With(slog.String("budget_id", budgetID))
		ctxWithLoggerAndBudget := context.WithValue(ctxWithBudget, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctxWithLoggerAndBudget)
		c.Next()
	}
}
