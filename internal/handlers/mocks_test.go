package handlers_test

import (
	"context"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/empower_finance_app/internal/core/ports/services"
	"github.com/SscSPs/empower_finance_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, params)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionService) BalanceFor(ctx context.Context, userID string, dateRange domain.DateRange) (domain.Balance, error) {
	args := m.Called(ctx, userID, dateRange)
	return args.Get(0).(domain.Balance), args.Error(1)
}

func (m *MockTransactionService) MonthlyBreakdown(ctx context.Context, userID string, year int, month int) (domain.MonthlyBreakdown, error) {
	args := m.Called(ctx, userID, year, month)
	return args.Get(0).(domain.MonthlyBreakdown), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock GoalService ---
type MockGoalService struct {
	mock.Mock
}

func (m *MockGoalService) GetGoal(ctx context.Context, userID string, goalID string) (*domain.GoalWithProgress, error) {
	args := m.Called(ctx, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalWithProgress), args.Error(1)
}

func (m *MockGoalService) ListGoals(ctx context.Context, userID string) ([]domain.GoalWithProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GoalWithProgress), args.Error(1)
}

func (m *MockGoalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.GoalWithProgress, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalWithProgress), args.Error(1)
}

func (m *MockGoalService) UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.GoalWithProgress, error) {
	args := m.Called(ctx, userID, goalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalWithProgress), args.Error(1)
}

func (m *MockGoalService) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	args := m.Called(ctx, userID, goalID)
	return args.Error(0)
}

func (m *MockGoalService) AddContribution(ctx context.Context, userID string, goalID string, req dto.AddContributionRequest) (*domain.GoalWithProgress, []domain.Milestone, error) {
	args := m.Called(ctx, userID, goalID, req)
	var reached []domain.Milestone
	if r := args.Get(1); r != nil {
		reached = r.([]domain.Milestone)
	}
	if args.Get(0) == nil {
		return nil, reached, args.Error(2)
	}
	return args.Get(0).(*domain.GoalWithProgress), reached, args.Error(2)
}

func (m *MockGoalService) GoalsSummary(ctx context.Context, userID string) (domain.GoalsSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.GoalsSummary), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.GoalSvcFacade = (*MockGoalService)(nil)

// --- Mock AggregationService ---
type MockAggregationService struct {
	mock.Mock
}

func (m *MockAggregationService) BalanceFor(ctx context.Context, userID string, dateRange domain.DateRange) (domain.Balance, error) {
	args := m.Called(ctx, userID, dateRange)
	return args.Get(0).(domain.Balance), args.Error(1)
}

func (m *MockAggregationService) MonthlyBreakdown(ctx context.Context, userID string, year int, month int) (domain.MonthlyBreakdown, error) {
	args := m.Called(ctx, userID, year, month)
	return args.Get(0).(domain.MonthlyBreakdown), args.Error(1)
}

func (m *MockAggregationService) GoalsSummary(ctx context.Context, userID string) (domain.GoalsSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.GoalsSummary), args.Error(1)
}

func (m *MockAggregationService) DashboardSummary(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AggregationService = (*MockAggregationService)(nil)
