package services

import (
	"time"

	"dahcoins/domain/entities"
	"dahcoins/domain/events"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

// isNotification matches a published NotificationEvent for username
func isNotification(username string, kind events.NotificationKind) interface{} {
	return mock.MatchedBy(func(event interface{}) bool {
		e, ok := event.(events.NotificationEvent)
		return ok && e.Username == username && e.Kind == kind
	})
}

func wallet(username string, available, locked int64) *entities.Wallet {
	return &entities.Wallet{Username: username, Available: available, LockedForCollege: locked}
}

func int64Ptr(v int64) *int64 {
	return &v
}
