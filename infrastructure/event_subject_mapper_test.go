package infrastructure

import (
	"testing"

	"dahcoins/domain/events"

	"github.com/stretchr/testify/assert"
)

func TestEventSubjectMapper_RoundTrip(t *testing.T) {
	t.Parallel()

	mapper := NewEventSubjectMapper()

	tests := []struct {
		event   events.Event
		subject string
	}{
		{events.NotificationEvent{Username: "alice"}, SubjectUserNotification},
		{events.BalanceChangeEvent{Username: "alice"}, SubjectBalanceChanged},
		{events.RedemptionCreatedEvent{Username: "alice"}, SubjectRedemptionCreated},
		{events.StakeChangedEvent{Username: "alice"}, SubjectStakeChanged},
		{events.RevenueRecordedEvent{AdID: "ad-1"}, SubjectRevenueRecorded},
	}

	for _, tt := range tests {
		t.Run(string(tt.event.Type()), func(t *testing.T) {
			subject := mapper.MapEventToSubject(tt.event)
			assert.Equal(t, tt.subject, subject)
			assert.Equal(t, tt.event.Type(), mapper.MapSubjectToEventType(subject))
			assert.Contains(t, mapper.GetAllSubjects(), subject)
		})
	}
}

func TestEventSubjectMapper_Unknown(t *testing.T) {
	t.Parallel()

	mapper := NewEventSubjectMapper()
	assert.Equal(t, events.EventType("misc.thing"), mapper.MapSubjectToEventType("misc.thing"))
}
