package services

import (
	"context"
	"testing"
	"time"

	"dahcoins/domain/entities"
	"dahcoins/domain/events"
	"dahcoins/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestStakingService(ledger *testhelpers.MockLedgerService, stakeRepo *testhelpers.MockStakeRepository, publisher *testhelpers.MockEventPublisher, now time.Time) *stakingService {
	s := NewStakingService(ledger, stakeRepo, publisher).(*stakingService)
	s.now = func() time.Time { return now }
	return s
}

func TestStakingService_CreateStake(t *testing.T) {
	t.Parallel()

	t.Run("locks principal", func(t *testing.T) {
		ctx := context.Background()
		ledger := new(testhelpers.MockLedgerService)
		stakeRepo := new(testhelpers.MockStakeRepository)
		publisher := new(testhelpers.MockEventPublisher)

		stakeRepo.On("Create", ctx, mock.AnythingOfType("*entities.Stake")).Run(func(args mock.Arguments) {
			args.Get(1).(*entities.Stake).ID = 42
		}).Return(nil)
		ledger.On("SpendCoins", ctx, "alice", int64(100), "stake_created").Return(true, nil)
		publisher.On("Publish", mock.MatchedBy(func(event interface{}) bool {
			e, ok := event.(events.StakeChangedEvent)
			return ok && e.StakeID == 42 && e.NewStatus == entities.StakeStatusActive
		})).Return(nil)

		service := newTestStakingService(ledger, stakeRepo, publisher, testNow)
		stake, err := service.CreateStake(ctx, "alice", 100, 7)

		require.NoError(t, err)
		assert.Equal(t, int64(42), stake.ID)
		assert.Equal(t, int64(125), stake.Reward)
		assert.Equal(t, testNow.Add(7*24*time.Hour), stake.EndTime)
		ledger.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		ctx := context.Background()
		ledger := new(testhelpers.MockLedgerService)
		stakeRepo := new(testhelpers.MockStakeRepository)

		stakeRepo.On("Create", ctx, mock.Anything).Return(nil)
		ledger.On("SpendCoins", ctx, "alice", int64(100), "stake_created").Return(false, nil)

		service := newTestStakingService(ledger, stakeRepo, new(testhelpers.MockEventPublisher), testNow)
		_, err := service.CreateStake(ctx, "alice", 100, 7)

		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	})

	t.Run("validation happens before any write", func(t *testing.T) {
		ctx := context.Background()
		stakeRepo := new(testhelpers.MockStakeRepository)
		service := newTestStakingService(new(testhelpers.MockLedgerService), stakeRepo, new(testhelpers.MockEventPublisher), testNow)

		_, err := service.CreateStake(ctx, "alice", 49, 7)
		assert.ErrorIs(t, err, entities.ErrInvalidStakeAmount)

		_, err = service.CreateStake(ctx, "alice", 100, 10)
		assert.ErrorIs(t, err, entities.ErrInvalidStakeDuration)

		stakeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func maturedStake(status entities.StakeStatus) *entities.Stake {
	start := testNow.Add(-8 * 24 * time.Hour)
	return &entities.Stake{
		ID:           7,
		Username:     "alice",
		Amount:       100,
		DurationDays: 7,
		Multiplier:   1.25,
		Reward:       125,
		Status:       status,
		StartTime:    start,
		EndTime:      start.Add(7 * 24 * time.Hour),
	}
}

func TestStakingService_ClaimStake(t *testing.T) {
	t.Parallel()

	t.Run("claims a stake that matured since the last check", func(t *testing.T) {
		ctx := context.Background()
		ledger := new(testhelpers.MockLedgerService)
		stakeRepo := new(testhelpers.MockStakeRepository)
		publisher := new(testhelpers.MockEventPublisher)

		stakeRepo.On("GetByID", ctx, int64(7)).Return(maturedStake(entities.StakeStatusActive), nil)
		stakeRepo.On("CompleteMatured", ctx, "alice", testNow).Return([]*entities.Stake{maturedStake(entities.StakeStatusCompleted)}, nil)
		stakeRepo.On("MarkClaimed", ctx, int64(7), testNow).Return(true, nil)
		ledger.On("CreditAvailable", ctx, "alice", int64(125), "stake_claimed").Return(wallet("alice", 125, 0), nil)
		publisher.On("Publish", mock.AnythingOfType("events.StakeChangedEvent")).Return(nil).Twice()
		publisher.On("Publish", mock.MatchedBy(func(event interface{}) bool {
			e, ok := event.(events.NotificationEvent)
			return ok && e.Message == "Stake claimed: +125 DAH Coins!"
		})).Return(nil).Once()

		service := newTestStakingService(ledger, stakeRepo, publisher, testNow)
		stake, err := service.ClaimStake(ctx, "alice", 7)

		require.NoError(t, err)
		assert.Equal(t, entities.StakeStatusClaimed, stake.Status)
		require.NotNil(t, stake.ClaimedAt)
		stakeRepo.AssertExpectations(t)
		ledger.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("not mature", func(t *testing.T) {
		ctx := context.Background()
		stakeRepo := new(testhelpers.MockStakeRepository)
		stake := maturedStake(entities.StakeStatusActive)
		stake.EndTime = testNow.Add(2 * time.Hour)
		stakeRepo.On("GetByID", ctx, int64(7)).Return(stake, nil)

		service := newTestStakingService(new(testhelpers.MockLedgerService), stakeRepo, new(testhelpers.MockEventPublisher), testNow)
		_, err := service.ClaimStake(ctx, "alice", 7)

		assert.ErrorIs(t, err, entities.ErrStakeNotMature)
	})

	t.Run("already claimed", func(t *testing.T) {
		ctx := context.Background()
		stakeRepo := new(testhelpers.MockStakeRepository)
		stakeRepo.On("GetByID", ctx, int64(7)).Return(maturedStake(entities.StakeStatusClaimed), nil)

		service := newTestStakingService(new(testhelpers.MockLedgerService), stakeRepo, new(testhelpers.MockEventPublisher), testNow)
		_, err := service.ClaimStake(ctx, "alice", 7)

		assert.ErrorIs(t, err, entities.ErrStakeAlreadyClaimed)
	})

	t.Run("lost race to a concurrent claim", func(t *testing.T) {
		ctx := context.Background()
		ledger := new(testhelpers.MockLedgerService)
		stakeRepo := new(testhelpers.MockStakeRepository)
		stakeRepo.On("GetByID", ctx, int64(7)).Return(maturedStake(entities.StakeStatusCompleted), nil)
		stakeRepo.On("MarkClaimed", ctx, int64(7), testNow).Return(false, nil)

		service := newTestStakingService(ledger, stakeRepo, new(testhelpers.MockEventPublisher), testNow)
		_, err := service.ClaimStake(ctx, "alice", 7)

		assert.ErrorIs(t, err, entities.ErrStakeAlreadyClaimed)
		ledger.AssertNotCalled(t, "CreditAvailable", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("other user's stake", func(t *testing.T) {
		ctx := context.Background()
		stakeRepo := new(testhelpers.MockStakeRepository)
		stakeRepo.On("GetByID", ctx, int64(7)).Return(maturedStake(entities.StakeStatusCompleted), nil)

		service := newTestStakingService(new(testhelpers.MockLedgerService), stakeRepo, new(testhelpers.MockEventPublisher), testNow)
		_, err := service.ClaimStake(ctx, "mallory", 7)

		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("missing stake", func(t *testing.T) {
		ctx := context.Background()
		stakeRepo := new(testhelpers.MockStakeRepository)
		stakeRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

		service := newTestStakingService(new(testhelpers.MockLedgerService), stakeRepo, new(testhelpers.MockEventPublisher), testNow)
		_, err := service.ClaimStake(ctx, "alice", 99)

		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestStakingService_GetStakes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stakeRepo := new(testhelpers.MockStakeRepository)
	pending := maturedStake(entities.StakeStatusActive)
	pending.ID = 8
	pending.EndTime = testNow.Add(time.Hour)
	stakeRepo.On("GetByUser", ctx, "alice").Return([]*entities.Stake{maturedStake(entities.StakeStatusActive), pending}, nil)

	service := newTestStakingService(new(testhelpers.MockLedgerService), stakeRepo, new(testhelpers.MockEventPublisher), testNow)
	stakes, err := service.GetStakes(ctx, "alice")

	require.NoError(t, err)
	require.Len(t, stakes, 2)
	assert.Equal(t, entities.StakeStatusCompleted, stakes[0].Status)
	assert.Equal(t, entities.StakeStatusActive, stakes[1].Status)
}

func TestStakingService_SweepMatured(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stakeRepo := new(testhelpers.MockStakeRepository)
	publisher := new(testhelpers.MockEventPublisher)
	stakeRepo.On("CompleteAllMatured", ctx, testNow).Return([]*entities.Stake{
		maturedStake(entities.StakeStatusCompleted),
		maturedStake(entities.StakeStatusCompleted),
	}, nil)
	publisher.On("Publish", mock.MatchedBy(func(event interface{}) bool {
		e, ok := event.(events.StakeChangedEvent)
		return ok && e.OldStatus == entities.StakeStatusActive && e.NewStatus == entities.StakeStatusCompleted
	})).Return(nil).Twice()

	service := newTestStakingService(new(testhelpers.MockLedgerService), stakeRepo, publisher, testNow)
	count, err := service.SweepMatured(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	publisher.AssertExpectations(t)
}
