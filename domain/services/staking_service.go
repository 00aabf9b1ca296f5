package services

import (
	"context"
	"fmt"
	"time"

	"dahcoins/domain/entities"
	"dahcoins/domain/events"
	"dahcoins/domain/interfaces"
	"dahcoins/domain/utils"

	log "github.com/sirupsen/logrus"
)

type stakingService struct {
	ledger         interfaces.LedgerService
	stakeRepo      interfaces.StakeRepository
	eventPublisher interfaces.EventPublisher
	now            func() time.Time
}

// NewStakingService creates a new staking engine
func NewStakingService(
	ledger interfaces.LedgerService,
	stakeRepo interfaces.StakeRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.StakingService {
	return &stakingService{
		ledger:         ledger,
		stakeRepo:      stakeRepo,
		eventPublisher: eventPublisher,
		now:            time.Now,
	}
}

// CreateStake locks amount from the wallet for durationDays
func (s *stakingService) CreateStake(ctx context.Context, username string, amount int64, durationDays int) (*entities.Stake, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", entities.ErrInvalidInput)
	}

	stake, err := entities.NewStake(username, amount, durationDays, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.stakeRepo.Create(ctx, stake); err != nil {
		return nil, fmt.Errorf("failed to create stake: %w", err)
	}

	ok, err := s.ledger.SpendCoins(ctx, username, amount, "stake_created",
		entities.WithTransactionType(entities.TransactionTypeStakeLock),
		entities.WithRelatedEntity(stake.ID, entities.RelatedTypeStake),
		entities.WithMetadata(map[string]any{"durationDays": durationDays}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to debit stake principal: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("stake of %d coins: %w", amount, entities.ErrInsufficientFunds)
	}

	s.publish(stake, "")

	log.WithFields(log.Fields{
		"username":     username,
		"stakeID":      stake.ID,
		"amount":       amount,
		"durationDays": durationDays,
		"reward":       stake.Reward,
	}).Info("Created stake")

	return stake, nil
}

// CheckAndUpdateStakes completes the user's matured stakes and returns the ones that changed
func (s *stakingService) CheckAndUpdateStakes(ctx context.Context, username string) ([]*entities.Stake, error) {
	updated, err := s.stakeRepo.CompleteMatured(ctx, username, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to complete matured stakes: %w", err)
	}
	for _, stake := range updated {
		s.publish(stake, entities.StakeStatusActive)
	}
	return updated, nil
}

// ClaimStake credits a completed stake's reward and marks it claimed
func (s *stakingService) ClaimStake(ctx context.Context, username string, stakeID int64) (*entities.Stake, error) {
	stake, err := s.stakeRepo.GetByID(ctx, stakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stake: %w", err)
	}
	if stake == nil || stake.Username != username {
		return nil, fmt.Errorf("stake %d: %w", stakeID, entities.ErrNotFound)
	}

	now := s.now()
	switch entities.Materialize(stake, now) {
	case entities.StakeStatusActive:
		return nil, fmt.Errorf("stake %d matures in %s: %w", stakeID, stake.TimeRemaining(now).Round(time.Minute), entities.ErrStakeNotMature)
	case entities.StakeStatusClaimed:
		return nil, fmt.Errorf("stake %d: %w", stakeID, entities.ErrStakeAlreadyClaimed)
	}

	if stake.Status == entities.StakeStatusActive {
		if _, err := s.CheckAndUpdateStakes(ctx, username); err != nil {
			return nil, err
		}
	}

	claimed, err := s.stakeRepo.MarkClaimed(ctx, stakeID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark stake claimed: %w", err)
	}
	if !claimed {
		return nil, fmt.Errorf("stake %d: %w", stakeID, entities.ErrStakeAlreadyClaimed)
	}

	// Reward returns principal plus yield, so it bypasses the age split
	if _, err := s.ledger.CreditAvailable(ctx, username, stake.Reward, "stake_claimed",
		entities.WithTransactionType(entities.TransactionTypeStakeClaim),
		entities.WithRelatedEntity(stake.ID, entities.RelatedTypeStake),
	); err != nil {
		return nil, fmt.Errorf("failed to credit stake reward: %w", err)
	}

	stake.Status = entities.StakeStatusClaimed
	stake.ClaimedAt = &now
	s.publish(stake, entities.StakeStatusCompleted)
	utils.Notify(s.eventPublisher, username, events.NotificationStakeClaim, stake.Reward,
		fmt.Sprintf("Stake claimed: +%d DAH Coins!", stake.Reward))

	return stake, nil
}

// GetStakes returns the user's stakes with status as of now
func (s *stakingService) GetStakes(ctx context.Context, username string) ([]*entities.Stake, error) {
	stakes, err := s.stakeRepo.GetByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get stakes: %w", err)
	}
	now := s.now()
	for _, stake := range stakes {
		stake.Status = entities.Materialize(stake, now)
	}
	return stakes, nil
}

// SweepMatured completes matured stakes for every user
func (s *stakingService) SweepMatured(ctx context.Context) (int, error) {
	updated, err := s.stakeRepo.CompleteAllMatured(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep matured stakes: %w", err)
	}
	for _, stake := range updated {
		s.publish(stake, entities.StakeStatusActive)
	}
	return len(updated), nil
}

func (s *stakingService) publish(stake *entities.Stake, oldStatus entities.StakeStatus) {
	event := events.StakeChangedEvent{
		StakeID:   stake.ID,
		Username:  stake.Username,
		OldStatus: oldStatus,
		NewStatus: stake.Status,
		Amount:    stake.Amount,
		Reward:    stake.Reward,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish stake changed event")
	}
}
