package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rbank-app/budget_backend/internal/core/ports/services"
	"github.com/rbank-app/budget_backend/internal/dto"
	"github.com/rbank-app/budget_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for ledger rollups.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	rg.GET("/summary", h.monthlySummary)
}

// monthlySummary returns per-period income/expense totals for the budget,
// ordered by period label.
func (h *reportingHandler) monthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID, ok := middleware.GetBudgetIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Budget code required"})
		return
	}

	summary, err := h.reportingService.MonthlySummary(c.Request.Context(), budgetID)
	if err != nil {
		logger.Error("Failed to generate monthly summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate monthly summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(summary))
}
