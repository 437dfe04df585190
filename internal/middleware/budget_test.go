package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/rbank-app/budget_backend/internal/middleware"
)

func setupBudgetRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/scoped", middleware.BudgetCodeMiddleware(), func(c *gin.Context) {
		budgetID, ok := middleware.GetBudgetIDFromContext(c)
		if !ok {
			c.String(http.StatusInternalServerError, "budget code missing downstream")
			return
		}
		c.String(http.StatusOK, budgetID)
	})
	return r
}

func TestBudgetCodeMiddleware_MissingHeader(t *testing.T) {
	r := setupBudgetRouter()

	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Budget code required")
}

func TestBudgetCodeMiddleware_PassesBudgetIDThrough(t *testing.T) {
	r := setupBudgetRouter()

	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	req.Header.Set(middleware.BudgetCodeHeader, "my-budget-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "my-budget-42", w.Body.String())
}

func TestGetBudgetIDFromContext_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := middleware.GetBudgetIDFromContext(c)
	assert.False(t, ok)
}
