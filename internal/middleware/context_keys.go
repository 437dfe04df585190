package middleware

import "github.com/gin-gonic/gin"

// budgetIDKey is the key used to store the caller's budget code in the context.
const budgetIDKey = contextKey("budgetID")

// GetBudgetIDFromContext retrieves the budget code from the Gin context.
// It returns the budget code and a boolean indicating if it was found.
func GetBudgetIDFromContext(c *gin.Context) (string, bool) {
	budgetVal := c.Request.Context().Value(budgetIDKey)
	if budgetVal == nil {
		return "", false
	}

	budgetID, ok := budgetVal.(string)
	if !ok || budgetID == "" {
		return "", false
	}
	return budgetID, true
}
