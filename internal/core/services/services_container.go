package services

import (
	"github.com/SscSPs/empower_finance_app/internal/core/ports"
	portsrepo "github.com/SscSPs/empower_finance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/empower_finance_app/internal/core/ports/services"
	"github.com/SscSPs/empower_finance_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// A nil publisher disables domain events.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, events ports.EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		WithTransactionEvents(events),
	)

	container.Goal = NewGoalService(
		repos.GoalRepo,
		WithGoalEvents(events),
		WithGoalWriteRetries(cfg.GoalWriteMaxRetries),
		WithGoalRetryBackoff(cfg.GoalRetryBackoff),
	)

	// The aggregation engine only reads through the two stores.
	container.Aggregation = NewAggregationService(container.Transaction, container.Goal)

	return container
}
