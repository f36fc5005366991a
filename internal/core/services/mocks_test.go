package services_test

import (
	"context"
	"sync"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/SscSPs/empower_finance_app/internal/core/ports"
	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, filter, limit, nextToken)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionRepository) FindTransactionsInRange(ctx context.Context, userID string, dateRange domain.DateRange) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

// --- Mock GoalRepository ---
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}

func (m *MockGoalRepository) ListGoalsByUser(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsGoal), args.Error(1)
}

func (m *MockGoalRepository) UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	args := m.Called(ctx, goalID)
	return args.Error(0)
}

var _ portsrepo.GoalRepositoryFacade = (*MockGoalRepository)(nil)

// recordingPublisher keeps every published event and can be told to fail.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []ports.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ports.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
