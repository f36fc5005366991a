package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/SscSPs/empower_finance_app/internal/core/ports"
	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/empower_finance_app/internal/core/ports/services"
	"github.com/SscSPs/empower_finance_app/internal/core/validation"
	"github.com/SscSPs/empower_finance_app/internal/dto"
	"github.com/google/uuid"
)

const (
	DefaultTransactionPageSize = 50
	MaxTransactionPageSize     = 200
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionEvents publishes an event after every successful write.
func WithTransactionEvents(publisher ports.EventPublisher) TransactionServiceOption {
	return func(s *transactionService) {
		s.Events = publisher
	}
}

// WithTransactionClock overrides the wall clock, mainly for tests.
func WithTransactionClock(clock func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.Clock = clock
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{transactionRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	now := s.Now()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}

	txn := domain.Transaction{
		TransactionID:    uuid.NewString(),
		UserID:           userID,
		Type:             req.Type,
		Category:         strings.TrimSpace(req.Category),
		Amount:           req.Amount,
		Description:      req.Description,
		Date:             date,
		Tags:             domain.NormalizeTags(req.Tags),
		RecurringDetails: req.RecurringDetails,
		Attachments:      req.Attachments,
		Location:         req.Location,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
			Version:       1,
		},
	}

	if err := validateTransaction(&txn); err != nil {
		s.LogDebug(ctx, "Transaction failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)))
	s.Publish(ctx, ports.Event{Type: ports.TransactionCreated, UserID: userID, ResourceID: txn.TransactionID})
	return &txn, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	// Transactions of other users are reported as missing to hide their existence.
	if txn.UserID != userID {
		s.LogDebug(ctx, "Transaction found but belongs to different user",
			slog.String("transaction_id", transactionID))
		return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	filter, err := buildTransactionFilter(params)
	if err != nil {
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultTransactionPageSize
	}
	if limit > MaxTransactionPageSize {
		limit = MaxTransactionPageSize
	}

	txns, nextToken, err := s.transactionRepo.ListTransactionsByUser(ctx, userID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions",
			slog.Int("limit", limit))
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}

	s.LogDebug(ctx, "Transactions listed successfully", slog.Int("count", len(txns)))
	return txns, nextToken, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Type != nil {
		txn.Type = *req.Type
		updated = true
	}
	if req.Category != nil {
		txn.Category = strings.TrimSpace(*req.Category)
		updated = true
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
		updated = true
	}
	if req.Description != nil {
		txn.Description = *req.Description
		updated = true
	}
	if req.Date != nil {
		txn.Date = req.Date.UTC()
		updated = true
	}
	if req.Tags != nil {
		txn.Tags = domain.NormalizeTags(req.Tags)
		updated = true
	}
	if req.RecurringDetails != nil {
		txn.RecurringDetails = req.RecurringDetails
		updated = true
	}
	if req.Attachments != nil {
		txn.Attachments = req.Attachments
		updated = true
	}
	if req.Location != nil {
		txn.Location = req.Location
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for transaction update",
			slog.String("transaction_id", transactionID))
		return txn, nil
	}

	if err := validateTransaction(txn); err != nil {
		return nil, err
	}

	txn.LastUpdatedAt = s.Now()
	txn.LastUpdatedBy = userID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update transaction",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	txn.Version++

	s.LogInfo(ctx, "Transaction updated successfully",
		slog.String("transaction_id", transactionID))
	s.Publish(ctx, ports.Event{Type: ports.TransactionUpdated, UserID: userID, ResourceID: transactionID})
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	if _, err := s.GetTransaction(ctx, userID, transactionID); err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction",
				slog.String("transaction_id", transactionID))
		}
		return err
	}

	s.LogInfo(ctx, "Transaction deleted successfully",
		slog.String("transaction_id", transactionID))
	s.Publish(ctx, ports.Event{Type: ports.TransactionDeleted, UserID: userID, ResourceID: transactionID})
	return nil
}

func (s *transactionService) BalanceFor(ctx context.Context, userID string, dateRange domain.DateRange) (domain.Balance, error) {
	if err := dateRange.Validate(); err != nil {
		return domain.Balance{}, err
	}

	txns, err := s.transactionRepo.FindTransactionsInRange(ctx, userID, dateRange)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for balance")
		return domain.Balance{}, fmt.Errorf("failed to compute balance: %w", err)
	}
	return domain.ComputeBalance(txns), nil
}

func (s *transactionService) MonthlyBreakdown(ctx context.Context, userID string, year int, month int) (domain.MonthlyBreakdown, error) {
	verr := apperrors.NewValidationError()
	if year < 1 || year > 9999 {
		verr.Add("year", "must be between 1 and 9999")
	}
	if month < 1 || month > 12 {
		verr.Add("month", "must be between 1 and 12")
	}
	if err := verr.OrNil(); err != nil {
		return domain.MonthlyBreakdown{}, err
	}

	m := time.Month(month)
	txns, err := s.transactionRepo.FindTransactionsInRange(ctx, userID, domain.MonthRange(year, m))
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for monthly breakdown",
			slog.Int("year", year), slog.Int("month", month))
		return domain.MonthlyBreakdown{}, fmt.Errorf("failed to compute monthly breakdown: %w", err)
	}
	return domain.BuildMonthlyBreakdown(year, m, txns), nil
}

// validateTransaction reports every violated field of a new or merged transaction.
func validateTransaction(txn *domain.Transaction) error {
	verr := validation.Struct(txn)
	if rd := txn.RecurringDetails; rd != nil && rd.NextDate != nil && rd.EndDate != nil && rd.EndDate.Before(*rd.NextDate) {
		verr.Add("recurringDetails.endDate", "must not be before nextDate")
	}
	return verr.OrNil()
}

func buildTransactionFilter(params dto.ListTransactionsParams) (domain.TransactionFilter, error) {
	var filter domain.TransactionFilter

	dateRange, err := dto.ParseDateRange(params.From, params.To)
	if err != nil {
		return filter, err
	}
	filter.Range = dateRange

	if params.Type != "" {
		t := domain.TransactionType(strings.ToLower(params.Type))
		if !t.IsValid() {
			return filter, apperrors.NewValidationError(apperrors.FieldError{Field: "type", Message: "must be one of: income, expense"})
		}
		filter.Type = &t
	}
	if c := strings.TrimSpace(params.Category); c != "" {
		filter.Category = &c
	}
	return filter, nil
}
