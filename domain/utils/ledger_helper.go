package utils

import (
	"context"
	"fmt"

	"dahcoins/domain/entities"
	"dahcoins/domain/events"
	"dahcoins/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// RecordLedgerEntry appends a ledger entry and emits a balance change event.
// This is the single entry point for all wallet changes in the system.
func RecordLedgerEntry(ctx context.Context, ledgerRepo interfaces.LedgerRepository, eventPublisher interfaces.EventPublisher, entry *entities.LedgerEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid ledger entry: %w", err)
	}

	if err := ledgerRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	event := events.BalanceChangeEvent{
		Username:        entry.Username,
		Event:           entry.Event,
		TransactionType: entry.TransactionType,
		AvailableDelta:  entry.AvailableDelta,
		LockedDelta:     entry.LockedDelta,
		AvailableAfter:  entry.AvailableAfter,
		LockedAfter:     entry.LockedAfter,
	}
	log.WithFields(log.Fields{
		"username":        event.Username,
		"event":           event.Event,
		"transactionType": event.TransactionType,
		"availableDelta":  event.AvailableDelta,
		"lockedDelta":     event.LockedDelta,
	}).Debug("Publishing BalanceChangeEvent")
	if err := eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish balance change event")
	}

	return nil
}

// Notify publishes a user notification, logging rather than returning failures
func Notify(eventPublisher interfaces.EventPublisher, username string, kind events.NotificationKind, amount int64, message string) {
	event := events.NotificationEvent{
		Username: username,
		Kind:     kind,
		Message:  message,
		Amount:   amount,
	}
	if err := eventPublisher.Publish(event); err != nil {
		log.WithFields(log.Fields{
			"username": username,
			"kind":     kind,
			"error":    err,
		}).Error("Failed to publish notification")
	}
}
