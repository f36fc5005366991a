package events

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/empower_finance_app/internal/core/ports"
	"github.com/stretchr/testify/assert"
)

type recordingPublisher struct {
	events []ports.Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, event ports.Event) error {
	r.events = append(r.events, event)
	return r.err
}

func TestMulti_PublishesToAllSinks(t *testing.T) {
	failing := &recordingPublisher{err: errors.New("broker down")}
	ok := &recordingPublisher{}
	event := ports.Event{Type: ports.GoalCreated, UserID: "u1", ResourceID: "g1"}

	err := Multi{failing, nil, ok}.Publish(context.Background(), event)

	assert.ErrorContains(t, err, "broker down")
	assert.Len(t, failing.events, 1)
	assert.Equal(t, []ports.Event{event}, ok.events)
}

func TestCombine(t *testing.T) {
	assert.Nil(t, Combine(nil, nil))

	single := &recordingPublisher{}
	assert.Same(t, single, Combine(nil, single))

	combined := Combine(single, &recordingPublisher{})
	assert.IsType(t, Multi{}, combined)
}
