package infrastructure

import (
	"dahcoins/domain/events"

	log "github.com/sirupsen/logrus"
)

// NoopEventPublisher is an event publisher that drops every event.
// Used when NATS_SERVERS is empty and in integration tests.
type NoopEventPublisher struct{}

// NewNoopEventPublisher creates a new no-op event publisher
func NewNoopEventPublisher() *NoopEventPublisher {
	return &NoopEventPublisher{}
}

// Publish does nothing with the event
func (n *NoopEventPublisher) Publish(event events.Event) error {
	log.WithField("eventType", event.Type()).Debug("Dropping event, no publisher configured")
	return nil
}
