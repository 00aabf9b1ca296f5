package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStakeReward(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount       int64
		durationDays int
		want         int64
	}{
		{amount: 100, durationDays: 3, want: 110},
		{amount: 100, durationDays: 7, want: 125},
		{amount: 100, durationDays: 14, want: 150},
		{amount: 100, durationDays: 30, want: 200},
		{amount: 55, durationDays: 7, want: 68},
		{amount: 51, durationDays: 3, want: 56},
	}

	for _, tt := range tests {
		multiplier, err := StakeMultiplier(tt.durationDays)
		require.NoError(t, err)
		assert.Equal(t, tt.want, StakeReward(tt.amount, multiplier), "amount=%d days=%d", tt.amount, tt.durationDays)
	}
}

func TestNewStake(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid stake", func(t *testing.T) {
		stake, err := NewStake("alice", 100, 7, now)
		require.NoError(t, err)
		assert.Equal(t, StakeStatusActive, stake.Status)
		assert.Equal(t, 1.25, stake.Multiplier)
		assert.Equal(t, int64(125), stake.Reward)
		assert.Equal(t, now.Add(7*24*time.Hour), stake.EndTime)
	})

	t.Run("below minimum", func(t *testing.T) {
		_, err := NewStake("alice", 49, 7, now)
		assert.ErrorIs(t, err, ErrInvalidStakeAmount)
	})

	t.Run("unsupported duration", func(t *testing.T) {
		_, err := NewStake("alice", 100, 5, now)
		assert.ErrorIs(t, err, ErrInvalidStakeDuration)
		assert.Contains(t, err.Error(), "choose one of [3 7 14 30]")
	})

	t.Run("duration checked before amount", func(t *testing.T) {
		_, err := NewStake("alice", 10, 5, now)
		assert.ErrorIs(t, err, ErrInvalidStakeDuration)
	})
}

func TestMaterialize(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	stake, err := NewStake("alice", 100, 3, start)
	require.NoError(t, err)

	assert.Equal(t, StakeStatusActive, Materialize(stake, start.Add(time.Hour)))
	assert.False(t, stake.IsClaimable(start.Add(time.Hour)))
	assert.Equal(t, 71*time.Hour, stake.TimeRemaining(start.Add(time.Hour)))

	assert.Equal(t, StakeStatusCompleted, Materialize(stake, stake.EndTime))
	assert.True(t, stake.IsClaimable(stake.EndTime))
	assert.Equal(t, time.Duration(0), stake.TimeRemaining(stake.EndTime.Add(time.Hour)))

	// Materialize does not mutate the stored status
	assert.Equal(t, StakeStatusActive, stake.Status)

	stake.Status = StakeStatusClaimed
	assert.Equal(t, StakeStatusClaimed, Materialize(stake, stake.EndTime.Add(time.Hour)))
	assert.False(t, stake.IsClaimable(stake.EndTime.Add(time.Hour)))
}
