package utils

import (
	"context"
	"errors"
	"testing"

	"dahcoins/domain/entities"
	"dahcoins/domain/events"
	"dahcoins/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRecordLedgerEntry(t *testing.T) {
	ctx := context.Background()

	mockLedgerRepo := new(testhelpers.MockLedgerRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	entry := &entities.LedgerEntry{
		Username:        "alice",
		Event:           "post_created",
		TransactionType: entities.TransactionTypeEarn,
		BaseAmount:      5,
		AvailableDelta:  5,
		LockedDelta:     5,
		AvailableAfter:  5,
		LockedAfter:     5,
	}

	mockLedgerRepo.On("Append", ctx, entry).Return(nil)
	mockEventPublisher.On("Publish", mock.MatchedBy(func(event interface{}) bool {
		e, ok := event.(events.BalanceChangeEvent)
		return ok && e.Username == "alice" && e.AvailableDelta == 5 && e.LockedDelta == 5
	})).Return(nil)

	err := RecordLedgerEntry(ctx, mockLedgerRepo, mockEventPublisher, entry)
	assert.NoError(t, err)

	mockLedgerRepo.AssertExpectations(t)
	mockEventPublisher.AssertExpectations(t)
}

func TestRecordLedgerEntryPublishFailureIsIgnored(t *testing.T) {
	ctx := context.Background()

	mockLedgerRepo := new(testhelpers.MockLedgerRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	mockLedgerRepo.On("Append", ctx, mock.Anything).Return(nil)
	mockEventPublisher.On("Publish", mock.Anything).Return(errors.New("nats down"))

	err := RecordLedgerEntry(ctx, mockLedgerRepo, mockEventPublisher, &entities.LedgerEntry{
		Username:       "alice",
		AvailableDelta: 1,
		AvailableAfter: 1,
	})
	assert.NoError(t, err)
}

func TestRecordLedgerEntryRejectsInvalidEntry(t *testing.T) {
	ctx := context.Background()

	mockLedgerRepo := new(testhelpers.MockLedgerRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	err := RecordLedgerEntry(ctx, mockLedgerRepo, mockEventPublisher, &entities.LedgerEntry{
		Username:       "alice",
		AvailableDelta: -10,
		AvailableAfter: -5,
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ledger entry")

	mockLedgerRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	mockEventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
}
