// Package events fans domain events out to the configured sinks.
package events

import (
	"context"
	"errors"

	"github.com/SscSPs/empower_finance_app/internal/core/ports"
)

// Multi publishes every event to each sink in order. One failing sink does not stop the others.
type Multi []ports.EventPublisher

var _ ports.EventPublisher = Multi(nil)

// Publish sends the event to all sinks and joins their errors.
func (m Multi) Publish(ctx context.Context, event ports.Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Combine drops nil sinks and returns nil when none remain, which disables publishing.
func Combine(publishers ...ports.EventPublisher) ports.EventPublisher {
	var m Multi
	for _, p := range publishers {
		if p != nil {
			m = append(m, p)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}
