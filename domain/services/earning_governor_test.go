package services

import (
	"context"
	"errors"
	"testing"

	"dahcoins/domain/entities"
	"dahcoins/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestGovernor(payoutRepo *testhelpers.MockPayoutRepository, revenueRepo *testhelpers.MockRevenueRepository) *earningGovernor {
	g := NewEarningGovernor(payoutRepo, revenueRepo, DefaultGovernorConfig()).(*earningGovernor)
	g.now = fixedClock
	return g
}

func TestEarningGovernor_CanUserEarn(t *testing.T) {
	t.Parallel()

	dayKey := entities.DayKey(testNow)
	monthKey := entities.MonthKey(testNow)

	tests := []struct {
		name         string
		dailyUsed    int64
		monthlyUsed  int64
		totalRevenue float64
		totalPaidOut int64
		requested    int64
		want         *entities.EarnCheck
	}{
		{
			name:         "fresh user gets full request",
			totalRevenue: 1000,
			requested:    5,
			want:         &entities.EarnCheck{Allowed: true, AdjustedAmount: 5},
		},
		{
			name:         "clamped to remaining daily cap",
			dailyUsed:    95,
			monthlyUsed:  95,
			totalRevenue: 1000,
			requested:    20,
			want:         &entities.EarnCheck{Allowed: true, AdjustedAmount: 5},
		},
		{
			name:         "clamped to remaining monthly cap",
			dailyUsed:    0,
			monthlyUsed:  1990,
			totalRevenue: 1000,
			requested:    50,
			want:         &entities.EarnCheck{Allowed: true, AdjustedAmount: 10},
		},
		{
			name:         "daily cap reached",
			dailyUsed:    100,
			monthlyUsed:  500,
			totalRevenue: 1000,
			requested:    1,
			want:         &entities.EarnCheck{Reason: entities.EarnReasonDailyLimit},
		},
		{
			name:         "monthly cap checked before daily",
			dailyUsed:    100,
			monthlyUsed:  2000,
			totalRevenue: 1000,
			requested:    1,
			want:         &entities.EarnCheck{Reason: entities.EarnReasonMonthlyLimit},
		},
		{
			name:         "empty pool",
			totalRevenue: 10,
			totalPaidOut: 6,
			requested:    1,
			want:         &entities.EarnCheck{Reason: entities.EarnReasonPoolDepleted},
		},
		{
			name:         "no revenue yet",
			requested:    1,
			want:         &entities.EarnCheck{Reason: entities.EarnReasonPoolDepleted},
		},
		{
			name:         "clamped to fractional pool",
			totalRevenue: 9,
			totalPaidOut: 2,
			requested:    5,
			want:         &entities.EarnCheck{Allowed: true, AdjustedAmount: 3},
		},
		{
			name:         "pool below one coin",
			totalRevenue: 1,
			requested:    5,
			want:         &entities.EarnCheck{Allowed: true, AdjustedAmount: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payoutRepo := new(testhelpers.MockPayoutRepository)
			revenueRepo := new(testhelpers.MockRevenueRepository)
			payoutRepo.On("GetUsage", mock.Anything, "alice", dayKey, monthKey).Return(tt.dailyUsed, tt.monthlyUsed, nil)
			payoutRepo.On("GetTotalPaidOut", mock.Anything).Return(tt.totalPaidOut, nil).Maybe()
			revenueRepo.On("GetTotalRevenue", mock.Anything).Return(tt.totalRevenue, nil).Maybe()

			governor := newTestGovernor(payoutRepo, revenueRepo)
			got, err := governor.CanUserEarn(context.Background(), "alice", tt.requested)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEarningGovernor_CanUserEarnRepositoryError(t *testing.T) {
	t.Parallel()

	payoutRepo := new(testhelpers.MockPayoutRepository)
	revenueRepo := new(testhelpers.MockRevenueRepository)
	payoutRepo.On("GetUsage", mock.Anything, "alice", mock.Anything, mock.Anything).Return(int64(0), int64(0), errors.New("database error"))

	governor := newTestGovernor(payoutRepo, revenueRepo)
	_, err := governor.CanUserEarn(context.Background(), "alice", 5)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get payout usage")
}

func TestEarningGovernor_RecordPayout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("charges counters and history", func(t *testing.T) {
		payoutRepo := new(testhelpers.MockPayoutRepository)
		revenueRepo := new(testhelpers.MockRevenueRepository)

		revenueRepo.On("GetTotalRevenue", ctx).Return(100.0, nil)
		payoutRepo.On("AddToTotal", ctx, int64(5), 60.0).Return(true, nil)
		payoutRepo.On("IncrementUsage", ctx, "alice", entities.DayKey(testNow), entities.MonthKey(testNow), int64(5)).Return(nil)
		payoutRepo.On("AppendHistory", ctx, mock.MatchedBy(func(r *entities.PayoutRecord) bool {
			return r.Username == "alice" && r.Coins == 5 && r.Reason == "post_created" && r.CreatedAt.Equal(testNow)
		})).Return(nil)
		payoutRepo.On("TrimHistory", ctx, entities.PayoutHistoryLimit).Return(nil)

		governor := newTestGovernor(payoutRepo, revenueRepo)
		err := governor.RecordPayout(ctx, "alice", 5, "post_created")

		require.NoError(t, err)
		payoutRepo.AssertExpectations(t)
		revenueRepo.AssertExpectations(t)
	})

	t.Run("pool exhausted between check and record", func(t *testing.T) {
		payoutRepo := new(testhelpers.MockPayoutRepository)
		revenueRepo := new(testhelpers.MockRevenueRepository)

		revenueRepo.On("GetTotalRevenue", ctx).Return(10.0, nil)
		payoutRepo.On("AddToTotal", ctx, int64(5), 6.0).Return(false, nil)

		governor := newTestGovernor(payoutRepo, revenueRepo)
		err := governor.RecordPayout(ctx, "alice", 5, "post_created")

		assert.ErrorIs(t, err, entities.ErrPoolDepleted)
		payoutRepo.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero coins is a no-op", func(t *testing.T) {
		payoutRepo := new(testhelpers.MockPayoutRepository)
		revenueRepo := new(testhelpers.MockRevenueRepository)

		governor := newTestGovernor(payoutRepo, revenueRepo)
		assert.NoError(t, governor.RecordPayout(ctx, "alice", 0, "post_created"))
		revenueRepo.AssertNotCalled(t, "GetTotalRevenue", mock.Anything)
	})

	t.Run("negative coins rejected", func(t *testing.T) {
		governor := newTestGovernor(new(testhelpers.MockPayoutRepository), new(testhelpers.MockRevenueRepository))
		assert.ErrorIs(t, governor.RecordPayout(ctx, "alice", -1, "post_created"), entities.ErrInvalidInput)
	})
}

func TestEarningGovernor_GetRevenueStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	payoutRepo := new(testhelpers.MockPayoutRepository)
	revenueRepo := new(testhelpers.MockRevenueRepository)

	revenueRepo.On("GetTotalRevenue", ctx).Return(250.0, nil)
	payoutRepo.On("GetTotalPaidOut", ctx).Return(int64(40), nil)
	payoutRepo.On("CountHistory", ctx).Return(int64(12), nil)

	governor := newTestGovernor(payoutRepo, revenueRepo)
	stats, err := governor.GetRevenueStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 250.0, stats.TotalRevenue)
	assert.Equal(t, int64(40), stats.TotalPaidOut)
	assert.InDelta(t, 110.0, stats.PoolAvailable, 1e-9)
	assert.Equal(t, 0.4, stats.ReserveRatio)
	assert.Equal(t, int64(12), stats.PayoutCount)
}

func TestEarningGovernor_GetUserLimits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	payoutRepo := new(testhelpers.MockPayoutRepository)
	payoutRepo.On("GetUsage", ctx, "alice", entities.DayKey(testNow), entities.MonthKey(testNow)).Return(int64(120), int64(300), nil)

	governor := newTestGovernor(payoutRepo, new(testhelpers.MockRevenueRepository))
	limits, err := governor.GetUserLimits(ctx, "alice")

	require.NoError(t, err)
	assert.Equal(t, int64(0), limits.DailyRemaining)
	assert.Equal(t, int64(1700), limits.MonthlyRemaining)
}
