package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rbank-app/budget_backend/internal/apperrors"
	"github.com/rbank-app/budget_backend/internal/core/domain"
	portssvc "github.com/rbank-app/budget_backend/internal/core/ports/services"
	"github.com/rbank-app/budget_backend/internal/core/services"
)

// MockBankRepository is a mock type for the BankRepositoryFacade interface
type MockBankRepository struct {
	mock.Mock
}

func (m *MockBankRepository) FindBankByID(ctx context.Context, budgetID string, bankID string) (*domain.Bank, error) {
	args := m.Called(ctx, budgetID, bankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankRepository) FindBankByName(ctx context.Context, budgetID string, name string) (*domain.Bank, error) {
	args := m.Called(ctx, budgetID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankRepository) ListBanks(ctx context.Context, budgetID string) ([]domain.Bank, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bank), args.Error(1)
}

func (m *MockBankRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

func (m *MockBankRepository) DeleteBank(ctx context.Context, budgetID string, bankID string) error {
	args := m.Called(ctx, budgetID, bankID)
	return args.Error(0)
}

func (m *MockBankRepository) OverrideBankBalance(ctx context.Context, budgetID string, bankID string, balance decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, budgetID, bankID, balance, now)
	return args.Error(0)
}

func (m *MockBankRepository) FindBanksByIDsForUpdate(ctx context.Context, tx pgx.Tx, bankIDs []string) (map[string]domain.Bank, error) {
	args := m.Called(ctx, tx, bankIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Bank), args.Error(1)
}

func (m *MockBankRepository) UpdateBankBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type BankServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBankRepository
	service  portssvc.BankSvcFacade
	budgetID string
}

func (suite *BankServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBankRepository)
	suite.service = services.NewBankService(suite.mockRepo)
	suite.budgetID = uuid.NewString()
}

// --- EnsureDefaultBank ---

func (suite *BankServiceTestSuite) TestEnsureDefaultBank_AlreadyExists() {
	ctx := context.Background()
	existing := &domain.Bank{
		BankID:   uuid.NewString(),
		BudgetID: suite.budgetID,
		Name:     domain.DefaultBankName,
		Balance:  decimal.NewFromInt(100),
	}

	suite.mockRepo.On("FindBankByName", ctx, suite.budgetID, domain.DefaultBankName).Return(existing, nil).Once()

	bank, err := suite.service.EnsureDefaultBank(ctx, suite.budgetID)

	suite.Require().NoError(err)
	suite.Equal(existing.BankID, bank.BankID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBank")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestEnsureDefaultBank_CreatesWhenMissing() {
	ctx := context.Background()

	suite.mockRepo.On("FindBankByName", ctx, suite.budgetID, domain.DefaultBankName).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveBank", ctx, mock.AnythingOfType("domain.Bank")).Return(nil).Once()

	bank, err := suite.service.EnsureDefaultBank(ctx, suite.budgetID)

	suite.Require().NoError(err)
	suite.Require().NotNil(bank)
	suite.NotEmpty(bank.BankID)
	suite.Equal(domain.DefaultBankName, bank.Name)
	suite.Equal(suite.budgetID, bank.BudgetID)
	suite.True(bank.Balance.IsZero())
	suite.True(bank.IsCanonical())
	suite.WithinDuration(time.Now(), bank.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestEnsureDefaultBank_LosesCreateRace() {
	ctx := context.Background()
	winner := &domain.Bank{
		BankID:   uuid.NewString(),
		BudgetID: suite.budgetID,
		Name:     domain.DefaultBankName,
		Balance:  decimal.Zero,
	}

	// First lookup misses, the insert hits the uniqueness constraint, and the
	// second lookup returns the concurrent winner's row.
	suite.mockRepo.On("FindBankByName", ctx, suite.budgetID, domain.DefaultBankName).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveBank", ctx, mock.AnythingOfType("domain.Bank")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindBankByName", ctx, suite.budgetID, domain.DefaultBankName).Return(winner, nil).Once()

	bank, err := suite.service.EnsureDefaultBank(ctx, suite.budgetID)

	suite.Require().NoError(err)
	suite.Equal(winner.BankID, bank.BankID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestEnsureDefaultBank_LookupError() {
	ctx := context.Background()
	suite.mockRepo.On("FindBankByName", ctx, suite.budgetID, domain.DefaultBankName).Return(nil, assert.AnError).Once()

	bank, err := suite.service.EnsureDefaultBank(ctx, suite.budgetID)

	suite.Require().Error(err)
	suite.Nil(bank)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- CreateBank ---

func (suite *BankServiceTestSuite) TestCreateBank_Success() {
	ctx := context.Background()
	opening := decimal.NewFromInt(250)

	suite.mockRepo.On("SaveBank", ctx, mock.AnythingOfType("domain.Bank")).Return(nil).Once()

	bank, err := suite.service.CreateBank(ctx, suite.budgetID, "Savings", opening)

	suite.Require().NoError(err)
	suite.Require().NotNil(bank)
	suite.NotEmpty(bank.BankID)
	suite.Equal("Savings", bank.Name)
	suite.True(opening.Equal(bank.Balance))
	suite.False(bank.IsCanonical())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestCreateBank_EmptyName() {
	ctx := context.Background()

	bank, err := suite.service.CreateBank(ctx, suite.budgetID, "", decimal.Zero)

	suite.Require().Error(err)
	suite.Nil(bank)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBank")
}

func (suite *BankServiceTestSuite) TestCreateBank_ReservedName() {
	ctx := context.Background()

	bank, err := suite.service.CreateBank(ctx, suite.budgetID, domain.DefaultBankName, decimal.Zero)

	suite.Require().Error(err)
	suite.Nil(bank)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBank")
}

// --- DeleteBank ---

func (suite *BankServiceTestSuite) TestDeleteBank_Success() {
	ctx := context.Background()
	bankID := uuid.NewString()
	bank := &domain.Bank{BankID: bankID, BudgetID: suite.budgetID, Name: "Savings"}

	suite.mockRepo.On("FindBankByID", ctx, suite.budgetID, bankID).Return(bank, nil).Once()
	suite.mockRepo.On("DeleteBank", ctx, suite.budgetID, bankID).Return(nil).Once()

	err := suite.service.DeleteBank(ctx, suite.budgetID, bankID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestDeleteBank_CanonicalRejected() {
	ctx := context.Background()
	bankID := uuid.NewString()
	bank := &domain.Bank{BankID: bankID, BudgetID: suite.budgetID, Name: domain.DefaultBankName}

	suite.mockRepo.On("FindBankByID", ctx, suite.budgetID, bankID).Return(bank, nil).Once()

	err := suite.service.DeleteBank(ctx, suite.budgetID, bankID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteBank")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestDeleteBank_NotFound() {
	ctx := context.Background()
	bankID := uuid.NewString()

	suite.mockRepo.On("FindBankByID", ctx, suite.budgetID, bankID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteBank(ctx, suite.budgetID, bankID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- OverrideBalance ---

func (suite *BankServiceTestSuite) TestOverrideBalance_Success() {
	ctx := context.Background()
	bankID := uuid.NewString()
	bank := &domain.Bank{BankID: bankID, BudgetID: suite.budgetID, Name: "Savings", Balance: decimal.NewFromInt(10)}
	newBalance := decimal.NewFromInt(999)

	suite.mockRepo.On("FindBankByID", ctx, suite.budgetID, bankID).Return(bank, nil).Once()
	suite.mockRepo.On("OverrideBankBalance", ctx, suite.budgetID, bankID, newBalance, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.OverrideBalance(ctx, suite.budgetID, bankID, newBalance)

	suite.Require().NoError(err)
	suite.True(newBalance.Equal(updated.Balance))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestOverrideBalance_NotFound() {
	ctx := context.Background()
	bankID := uuid.NewString()

	suite.mockRepo.On("FindBankByID", ctx, suite.budgetID, bankID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.OverrideBalance(ctx, suite.budgetID, bankID, decimal.NewFromInt(5))

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "OverrideBankBalance")
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestBankServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankServiceTestSuite))
}
