package infrastructure

import (
	"context"
	"errors"
	"testing"

	"dahcoins/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher captures published events
type recordingPublisher struct {
	PublishedEvents []events.Event
	PublishError    error
	failOn          events.EventType
}

func (m *recordingPublisher) Publish(event events.Event) error {
	if m.PublishError != nil && (m.failOn == "" || m.failOn == event.Type()) {
		return m.PublishError
	}
	m.PublishedEvents = append(m.PublishedEvents, event)
	return nil
}

func TestNATSTransactionalPublisher_FlushAfterCommit(t *testing.T) {
	inner := &recordingPublisher{}
	publisher := NewNATSTransactionalPublisher(inner)

	first := events.BalanceChangeEvent{Username: "alice", AvailableDelta: 10}
	second := events.NotificationEvent{Username: "alice", Message: "You earned 10 DAH Coins!"}

	require.NoError(t, publisher.Publish(first))
	require.NoError(t, publisher.Publish(second))

	assert.Empty(t, inner.PublishedEvents, "nothing reaches the bus before flush")
	assert.Equal(t, 2, publisher.Pending())

	require.NoError(t, publisher.Flush(context.Background()))

	require.Len(t, inner.PublishedEvents, 2)
	assert.Equal(t, first, inner.PublishedEvents[0])
	assert.Equal(t, second, inner.PublishedEvents[1])
	assert.Zero(t, publisher.Pending())
}

func TestNATSTransactionalPublisher_Discard(t *testing.T) {
	inner := &recordingPublisher{}
	publisher := NewNATSTransactionalPublisher(inner)

	require.NoError(t, publisher.Publish(events.StakeChangedEvent{StakeID: 1}))
	publisher.Discard()

	require.NoError(t, publisher.Flush(context.Background()))
	assert.Empty(t, inner.PublishedEvents)
}

func TestNATSTransactionalPublisher_FailureDoesNotStopFlush(t *testing.T) {
	inner := &recordingPublisher{
		PublishError: errors.New("nats unavailable"),
		failOn:       events.EventTypeBalanceChange,
	}
	publisher := NewNATSTransactionalPublisher(inner)

	require.NoError(t, publisher.Publish(events.BalanceChangeEvent{Username: "alice"}))
	require.NoError(t, publisher.Publish(events.NotificationEvent{Username: "alice"}))

	err := publisher.Flush(context.Background())
	assert.NoError(t, err)

	require.Len(t, inner.PublishedEvents, 1)
	assert.Equal(t, events.EventTypeNotification, inner.PublishedEvents[0].Type())
	assert.Zero(t, publisher.Pending())
}
