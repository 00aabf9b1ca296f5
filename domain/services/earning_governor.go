package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"dahcoins/domain/entities"
	"dahcoins/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// GovernorConfig holds the issuance limits
type GovernorConfig struct {
	DailyUserCap         int64
	MonthlyUserCap       int64
	PlatformReserveRatio float64
}

// DefaultGovernorConfig returns the platform's standard limits
func DefaultGovernorConfig() GovernorConfig {
	return GovernorConfig{
		DailyUserCap:         100,
		MonthlyUserCap:       2000,
		PlatformReserveRatio: 0.4,
	}
}

// earningGovernor enforces per-user caps and the platform payout pool
type earningGovernor struct {
	payoutRepo  interfaces.PayoutRepository
	revenueRepo interfaces.RevenueRepository
	config      GovernorConfig
	now         func() time.Time
}

// NewEarningGovernor creates a new earning governor
func NewEarningGovernor(
	payoutRepo interfaces.PayoutRepository,
	revenueRepo interfaces.RevenueRepository,
	config GovernorConfig,
) interfaces.EarningGovernor {
	return &earningGovernor{
		payoutRepo:  payoutRepo,
		revenueRepo: revenueRepo,
		config:      config,
		now:         time.Now,
	}
}

// CanUserEarn decides how many of the requested coins may be issued.
// The adjusted amount may be lower than requested.
func (g *earningGovernor) CanUserEarn(ctx context.Context, username string, requested int64) (*entities.EarnCheck, error) {
	if requested < 0 {
		return nil, fmt.Errorf("requested amount %d must not be negative: %w", requested, entities.ErrInvalidInput)
	}

	now := g.now()
	dailyUsed, monthlyUsed, err := g.payoutRepo.GetUsage(ctx, username, entities.DayKey(now), entities.MonthKey(now))
	if err != nil {
		return nil, fmt.Errorf("failed to get payout usage: %w", err)
	}

	if monthlyUsed >= g.config.MonthlyUserCap {
		return &entities.EarnCheck{Reason: entities.EarnReasonMonthlyLimit}, nil
	}
	if dailyUsed >= g.config.DailyUserCap {
		return &entities.EarnCheck{Reason: entities.EarnReasonDailyLimit}, nil
	}

	maxAllowed := min(g.config.DailyUserCap-dailyUsed, g.config.MonthlyUserCap-monthlyUsed, requested)

	poolAvailable, err := g.poolAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if poolAvailable <= 0 {
		return &entities.EarnCheck{Reason: entities.EarnReasonPoolDepleted}, nil
	}

	return &entities.EarnCheck{
		Allowed:        true,
		AdjustedAmount: int64(math.Floor(math.Min(float64(maxAllowed), poolAvailable))),
	}, nil
}

// RecordPayout charges an issuance against the user's counters and the pool
func (g *earningGovernor) RecordPayout(ctx context.Context, username string, coins int64, reason string) error {
	if coins < 0 {
		return fmt.Errorf("payout %d must not be negative: %w", coins, entities.ErrInvalidInput)
	}
	if coins == 0 {
		return nil
	}

	totalRevenue, err := g.revenueRepo.GetTotalRevenue(ctx)
	if err != nil {
		return fmt.Errorf("failed to get total revenue: %w", err)
	}

	ceiling := totalRevenue * (1 - g.config.PlatformReserveRatio)
	ok, err := g.payoutRepo.AddToTotal(ctx, coins, ceiling)
	if err != nil {
		return fmt.Errorf("failed to update total paid out: %w", err)
	}
	if !ok {
		return fmt.Errorf("payout of %d coins to %s: %w", coins, username, entities.ErrPoolDepleted)
	}

	now := g.now()
	if err := g.payoutRepo.IncrementUsage(ctx, username, entities.DayKey(now), entities.MonthKey(now), coins); err != nil {
		return fmt.Errorf("failed to update payout usage: %w", err)
	}

	record := &entities.PayoutRecord{
		Username:  username,
		Coins:     coins,
		Reason:    reason,
		CreatedAt: now,
	}
	if err := g.payoutRepo.AppendHistory(ctx, record); err != nil {
		return fmt.Errorf("failed to append payout history: %w", err)
	}
	if err := g.payoutRepo.TrimHistory(ctx, entities.PayoutHistoryLimit); err != nil {
		return fmt.Errorf("failed to trim payout history: %w", err)
	}

	log.WithFields(log.Fields{
		"username": username,
		"coins":    coins,
		"reason":   reason,
	}).Debug("Recorded payout")

	return nil
}

// GetRevenueStats returns the platform-wide pool projection
func (g *earningGovernor) GetRevenueStats(ctx context.Context) (*entities.RevenueStats, error) {
	totalRevenue, err := g.revenueRepo.GetTotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total revenue: %w", err)
	}
	totalPaidOut, err := g.payoutRepo.GetTotalPaidOut(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total paid out: %w", err)
	}
	count, err := g.payoutRepo.CountHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count payouts: %w", err)
	}

	return &entities.RevenueStats{
		TotalRevenue:  totalRevenue,
		TotalPaidOut:  totalPaidOut,
		PoolAvailable: entities.PoolAvailable(totalRevenue, g.config.PlatformReserveRatio, totalPaidOut),
		ReserveRatio:  g.config.PlatformReserveRatio,
		PayoutCount:   count,
	}, nil
}

// GetUserLimits returns the user's cap usage for the current day and month
func (g *earningGovernor) GetUserLimits(ctx context.Context, username string) (*entities.UserLimits, error) {
	now := g.now()
	dailyUsed, monthlyUsed, err := g.payoutRepo.GetUsage(ctx, username, entities.DayKey(now), entities.MonthKey(now))
	if err != nil {
		return nil, fmt.Errorf("failed to get payout usage: %w", err)
	}
	return entities.NewUserLimits(username, dailyUsed, g.config.DailyUserCap, monthlyUsed, g.config.MonthlyUserCap), nil
}

func (g *earningGovernor) poolAvailable(ctx context.Context) (float64, error) {
	totalRevenue, err := g.revenueRepo.GetTotalRevenue(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get total revenue: %w", err)
	}
	totalPaidOut, err := g.payoutRepo.GetTotalPaidOut(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get total paid out: %w", err)
	}
	return entities.PoolAvailable(totalRevenue, g.config.PlatformReserveRatio, totalPaidOut), nil
}
