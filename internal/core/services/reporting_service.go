package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rbank-app/budget_backend/internal/core/domain"
	portsrepo "github.com/rbank-app/budget_backend/internal/core/ports/repositories"
	portssvc "github.com/rbank-app/budget_backend/internal/core/ports/services"
)

// reportingService derives rollups from the transaction log. Read-only.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: repo}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// MonthlySummary groups the budget's transactions by period and sums income
// and expense per group. Periods are ordered by plain string comparison; the
// labels are opaque to the ledger, so non-ISO labels sort by label, not time.
func (s *reportingService) MonthlySummary(ctx context.Context, budgetID string) ([]domain.PeriodSummary, error) {
	rows, err := s.reportingRepo.GetMonthlySummary(ctx, budgetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve monthly summary", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to retrieve monthly summary: %w", err)
	}

	s.LogInfo(ctx, "Monthly summary generated",
		slog.String("budget_id", budgetID),
		slog.Int("period_count", len(rows)))
	return rows, nil
}
