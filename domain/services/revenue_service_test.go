package services

import (
	"context"
	"testing"

	"dahcoins/domain/entities"
	"dahcoins/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRevenueService_Record(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    entities.AdEventKind
		revenue float64
	}{
		{name: "impression pays CPM over a thousand", kind: entities.AdEventImpression, revenue: 0.0025},
		{name: "click pays CPC", kind: entities.AdEventClick, revenue: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			revenueRepo := new(testhelpers.MockRevenueRepository)
			publisher := new(testhelpers.MockEventPublisher)

			revenueRepo.On("AddRevenue", ctx, "ad-1", tt.revenue).Return(10.0, nil)
			revenueRepo.On("RecordEvent", ctx, mock.MatchedBy(func(e *entities.AdEvent) bool {
				return e.AdID == "ad-1" && e.Username == "alice" && e.Kind == tt.kind && e.Revenue == tt.revenue
			})).Return(nil)
			publisher.On("Publish", mock.AnythingOfType("events.RevenueRecordedEvent")).Return(nil)

			service := NewRevenueService(revenueRepo, publisher, DefaultRevenueConfig())

			var err error
			if tt.kind == entities.AdEventImpression {
				err = service.RecordImpression(ctx, "ad-1", "alice")
			} else {
				err = service.RecordClick(ctx, "ad-1", "alice")
			}

			require.NoError(t, err)
			revenueRepo.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestRevenueService_RequiresAdID(t *testing.T) {
	t.Parallel()

	revenueRepo := new(testhelpers.MockRevenueRepository)
	service := NewRevenueService(revenueRepo, new(testhelpers.MockEventPublisher), DefaultRevenueConfig())

	err := service.RecordClick(context.Background(), "", "alice")
	assert.ErrorIs(t, err, entities.ErrInvalidInput)
	revenueRepo.AssertNotCalled(t, "AddRevenue", mock.Anything, mock.Anything, mock.Anything)
}
