// Package analytics forwards domain events to PostHog as product analytics captures.
package analytics

import (
	"context"
	"io"
	"log/slog"

	"github.com/SscSPs/empower_finance_app/internal/core/ports"
	"github.com/posthog/posthog-go"
)

const defaultEndpoint = "https://eu.i.posthog.com"

// enqueuer is the subset of posthog.Client used here.
type enqueuer interface {
	io.Closer
	Enqueue(posthog.Message) error
}

// Publisher captures one PostHog event per domain event, keyed by the owning user.
// Amounts and names are never sent, only ids and small facts.
type Publisher struct {
	client enqueuer
	logger *slog.Logger
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher returns nil when apiKey is empty so the sink can be skipped.
func NewPublisher(apiKey, endpoint string, logger *slog.Logger) (*Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return nil, nil
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		return nil, err
	}
	logger.Info("Initialized posthog client", slog.String("endpoint", endpoint))
	return &Publisher{client: client, logger: logger}, nil
}

// Publish enqueues the capture. Delivery is batched by the client in the background.
func (p *Publisher) Publish(_ context.Context, event ports.Event) error {
	props := posthog.NewProperties().
		Set("resource_id", event.ResourceID)
	if event.Type == ports.GoalContributed {
		props.Set("milestones_reached", event.MilestonesReached).
			Set("completed", event.Completed)
	}

	p.logger.Debug("Enqueueing event", slog.String("distinct_id", event.UserID), slog.String("event", string(event.Type)))
	return p.client.Enqueue(posthog.Capture{
		DistinctId: event.UserID,
		Event:      string(event.Type),
		Timestamp:  event.OccurredAt,
		Properties: props,
	})
}

// Close flushes pending captures.
func (p *Publisher) Close() error {
	return p.client.Close()
}
