package entities

import (
	"fmt"
	"math"
	"time"
)

// StakeStatus represents the lifecycle state of a stake
type StakeStatus string

const (
	StakeStatusActive    StakeStatus = "active"
	StakeStatusCompleted StakeStatus = "completed"
	StakeStatusClaimed   StakeStatus = "claimed"
)

// MinStakeAmount is the smallest principal accepted
const MinStakeAmount int64 = 50

var stakeMultipliers = map[int]float64{
	3:  1.1,
	7:  1.25,
	14: 1.5,
	30: 2.0,
}

// StakeDurations returns the supported lock periods in days
func StakeDurations() []int {
	return []int{3, 7, 14, 30}
}

// StakeMultiplier returns the reward multiplier for a duration
func StakeMultiplier(durationDays int) (float64, error) {
	m, ok := stakeMultipliers[durationDays]
	if !ok {
		return 0, fmt.Errorf("duration %d days, choose one of %v: %w", durationDays, StakeDurations(), ErrInvalidStakeDuration)
	}
	return m, nil
}

// StakeReward returns floor(amount × multiplier)
func StakeReward(amount int64, multiplier float64) int64 {
	// strip float noise before flooring: 100*1.1 is 110.00000000000001
	return int64(math.Floor(math.Round(float64(amount)*multiplier*1e6) / 1e6))
}

// Stake is a time-locked principal that matures into a multiplied reward
type Stake struct {
	ID           int64       `db:"id" json:"id"`
	Username     string      `db:"username" json:"username"`
	Amount       int64       `db:"amount" json:"amount"`
	DurationDays int         `db:"duration_days" json:"durationDays"`
	Multiplier   float64     `db:"multiplier" json:"multiplier"`
	Reward       int64       `db:"reward" json:"reward"`
	Status       StakeStatus `db:"status" json:"status"`
	StartTime    time.Time   `db:"start_time" json:"startTime"`
	EndTime      time.Time   `db:"end_time" json:"endTime"`
	ClaimedAt    *time.Time  `db:"claimed_at" json:"claimedAt,omitempty"`
}

// NewStake validates the request and builds an active stake starting at now
func NewStake(username string, amount int64, durationDays int, now time.Time) (*Stake, error) {
	multiplier, err := StakeMultiplier(durationDays)
	if err != nil {
		return nil, err
	}
	if amount < MinStakeAmount {
		return nil, fmt.Errorf("minimum stake is %d coins: %w", MinStakeAmount, ErrInvalidStakeAmount)
	}
	return &Stake{
		Username:     username,
		Amount:       amount,
		DurationDays: durationDays,
		Multiplier:   multiplier,
		Reward:       StakeReward(amount, multiplier),
		Status:       StakeStatusActive,
		StartTime:    now,
		EndTime:      now.Add(time.Duration(durationDays) * 24 * time.Hour),
	}, nil
}

// Materialize returns the stake's status as observed at now
func Materialize(s *Stake, now time.Time) StakeStatus {
	if s.Status == StakeStatusActive && !now.Before(s.EndTime) {
		return StakeStatusCompleted
	}
	return s.Status
}

// IsClaimable returns true if the stake can be claimed at now
func (s *Stake) IsClaimable(now time.Time) bool {
	return Materialize(s, now) == StakeStatusCompleted
}

// TimeRemaining returns how long until maturity, zero once matured
func (s *Stake) TimeRemaining(now time.Time) time.Duration {
	if !now.Before(s.EndTime) {
		return 0
	}
	return s.EndTime.Sub(now)
}
