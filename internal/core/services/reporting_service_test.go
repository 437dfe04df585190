package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rbank-app/budget_backend/internal/core/domain"
	portssvc "github.com/rbank-app/budget_backend/internal/core/ports/services"
	"github.com/rbank-app/budget_backend/internal/core/services"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetMonthlySummary(ctx context.Context, budgetID string) ([]domain.PeriodSummary, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodSummary), args.Error(1)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
	budgetID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
	suite.budgetID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_OrderedPeriods() {
	ctx := context.Background()
	rows := []domain.PeriodSummary{
		{
			Period:       "2024-01",
			TotalIncome:  decimal.NewFromInt(1500),
			TotalExpense: decimal.NewFromInt(400),
			Balance:      decimal.NewFromInt(1100),
		},
		{
			Period:       "2024-02",
			TotalIncome:  decimal.NewFromInt(1500),
			TotalExpense: decimal.NewFromInt(1700),
			Balance:      decimal.NewFromInt(-200),
		},
	}

	suite.mockRepo.On("GetMonthlySummary", ctx, suite.budgetID).Return(rows, nil).Once()

	summary, err := suite.service.MonthlySummary(ctx, suite.budgetID)

	suite.Require().NoError(err)
	suite.Require().Len(summary, 2)
	suite.Equal("2024-01", summary[0].Period)
	suite.True(summary[0].Balance.Equal(decimal.NewFromInt(1100)))
	// A period may run negative; the rollup reports it as-is.
	suite.True(summary[1].Balance.Equal(decimal.NewFromInt(-200)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_Empty() {
	ctx := context.Background()

	suite.mockRepo.On("GetMonthlySummary", ctx, suite.budgetID).Return([]domain.PeriodSummary{}, nil).Once()

	summary, err := suite.service.MonthlySummary(ctx, suite.budgetID)

	suite.Require().NoError(err)
	suite.Empty(summary)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_RepoError() {
	ctx := context.Background()

	suite.mockRepo.On("GetMonthlySummary", ctx, suite.budgetID).Return(nil, assert.AnError).Once()

	summary, err := suite.service.MonthlySummary(ctx, suite.budgetID)

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
