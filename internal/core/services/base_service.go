package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/empower_finance_app/internal/core/ports"
	"github.com/SscSPs/empower_finance_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Events ports.EventPublisher
	Clock  func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the service clock, falling back to the wall clock.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// Publish hands the event to the configured publisher. Failures are logged only;
// the mutation that produced the event has already been persisted.
func (s *BaseService) Publish(ctx context.Context, event ports.Event) {
	if s.Events == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.Now()
	}
	if err := s.Events.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish event",
			slog.String("event_type", string(event.Type)),
			slog.String("resource_id", event.ResourceID))
	}
}
