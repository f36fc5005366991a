package ports

import (
	"context"
	"time"
)

// EventType names a change that happened to a ledger entry or savings goal.
type EventType string

const (
	TransactionCreated EventType = "transaction.created"
	TransactionUpdated EventType = "transaction.updated"
	TransactionDeleted EventType = "transaction.deleted"
	GoalCreated        EventType = "goal.created"
	GoalUpdated        EventType = "goal.updated"
	GoalDeleted        EventType = "goal.deleted"
	GoalContributed    EventType = "goal.contributed"
)

// Event is a lightweight change notification. Consumers re-read the resource for details.
type Event struct {
	Type       EventType `json:"type"`
	UserID     string    `json:"userID"`
	ResourceID string    `json:"resourceID"`
	OccurredAt time.Time `json:"occurredAt"`
	// Set for GoalContributed only.
	MilestonesReached []int `json:"milestonesReached,omitempty"`
	Completed         bool  `json:"completed,omitempty"`
}

// EventPublisher delivers events to interested parties. Implementations must be safe
// for concurrent use; services log publish failures and never fail the request on them.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
