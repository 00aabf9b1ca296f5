package infrastructure

import (
	"fmt"

	"dahcoins/domain/events"
)

const (
	SubjectUserNotification  = "notifications.user"
	SubjectBalanceChanged    = "wallets.balance_changed"
	SubjectRedemptionCreated = "store.redemption_created"
	SubjectStakeChanged      = "staking.stake_changed"
	SubjectRevenueRecorded   = "revenue.recorded"

	domainEventStreamName = "dahcoins_events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeNotification:
		return SubjectUserNotification
	case events.EventTypeBalanceChange:
		return SubjectBalanceChanged
	case events.EventTypeRedemptionCreated:
		return SubjectRedemptionCreated
	case events.EventTypeStakeChanged:
		return SubjectStakeChanged
	case events.EventTypeRevenueRecorded:
		return SubjectRevenueRecorded
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case SubjectUserNotification:
		return events.EventTypeNotification
	case SubjectBalanceChanged:
		return events.EventTypeBalanceChange
	case SubjectRedemptionCreated:
		return events.EventTypeRedemptionCreated
	case SubjectStakeChanged:
		return events.EventTypeStakeChanged
	case SubjectRevenueRecorded:
		return events.EventTypeRevenueRecorded
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		SubjectUserNotification,
		SubjectBalanceChanged,
		SubjectRedemptionCreated,
		SubjectStakeChanged,
		SubjectRevenueRecorded,
	}
}
