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

// actionDispatcher turns user actions into governed coin issuance
type actionDispatcher struct {
	ledger         interfaces.LedgerService
	governor       interfaces.EarningGovernor
	walletRepo     interfaces.WalletRepository
	cooldownRepo   interfaces.CooldownRepository
	streakRepo     interfaces.LoginStreakRepository
	eventPublisher interfaces.EventPublisher
	now            func() time.Time
}

// NewActionDispatcher creates a new action dispatcher
func NewActionDispatcher(
	ledger interfaces.LedgerService,
	governor interfaces.EarningGovernor,
	walletRepo interfaces.WalletRepository,
	cooldownRepo interfaces.CooldownRepository,
	streakRepo interfaces.LoginStreakRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.ActionDispatcher {
	return &actionDispatcher{
		ledger:         ledger,
		governor:       governor,
		walletRepo:     walletRepo,
		cooldownRepo:   cooldownRepo,
		streakRepo:     streakRepo,
		eventPublisher: eventPublisher,
		now:            time.Now,
	}
}

// EarnCoins credits the action's base rate, subject to cooldown and the governor
func (d *actionDispatcher) EarnCoins(ctx context.Context, username string, age int, action entities.Action) (*entities.EarnResult, error) {
	if !action.IsValid() {
		return nil, fmt.Errorf("unknown action %q: %w", action, entities.ErrInvalidInput)
	}
	if err := d.lockWallet(ctx, username); err != nil {
		return nil, err
	}

	result, err := d.issue(ctx, username, age, action.String(), action.BaseRate(), action, entities.TransactionTypeEarn)
	if err != nil {
		return nil, err
	}
	if !result.Blocked {
		utils.Notify(d.eventPublisher, username, events.NotificationCoinsEarned, result.Earned, result.Message)
	}
	return result, nil
}

// RecordDailyLogin advances the login streak once per UTC day and pays the check-in rewards
func (d *actionDispatcher) RecordDailyLogin(ctx context.Context, username string, age int) (*entities.DailyLoginResult, error) {
	if err := d.lockWallet(ctx, username); err != nil {
		return nil, err
	}

	now := d.now()
	streak, err := d.streakRepo.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get login streak: %w", err)
	}
	if streak != nil && streak.LoggedInOn(now) {
		return &entities.DailyLoginResult{
			AlreadyCheckedIn: true,
			Streak:           streak.Streak,
			Message:          "Already checked in today",
		}, nil
	}
	if streak == nil {
		streak = &entities.LoginStreak{Username: username}
	}

	streak.Streak = streak.Advance(now)
	streak.LastLoginAt = now
	streak.LastLoginDate = entities.DayKey(now)
	if err := d.streakRepo.Upsert(ctx, streak); err != nil {
		return nil, fmt.Errorf("failed to save login streak: %w", err)
	}

	result := &entities.DailyLoginResult{Streak: streak.Streak}

	result.Login, err = d.issue(ctx, username, age, entities.ActionDailyLogin.String(), entities.ActionDailyLogin.BaseRate(), entities.ActionDailyLogin, entities.TransactionTypeEarn)
	if err != nil {
		return nil, err
	}

	if entities.IsBonusDay(streak.Streak) {
		result.Bonus, err = d.issue(ctx, username, age, entities.ActionStreakBonus.String(), entities.ActionStreakBonus.BaseRate(), entities.ActionStreakBonus, entities.TransactionTypeEarn)
		if err != nil {
			return nil, err
		}
	}

	if result.Login.Blocked {
		result.Message = result.Login.Message
		return result, nil
	}

	var bonus int64
	if result.Bonus != nil && !result.Bonus.Blocked {
		bonus = result.Bonus.Earned
	}
	result.Message = utils.DailyCheckInMessage(result.Login.Earned, streak.Streak, bonus)
	utils.Notify(d.eventPublisher, username, events.NotificationDailyLogin, result.Login.Earned+bonus, result.Message)

	log.WithFields(log.Fields{
		"username": username,
		"streak":   streak.Streak,
		"earned":   result.Login.Earned,
		"bonus":    bonus,
	}).Info("Recorded daily login")

	return result, nil
}

// AwardQuest pays a quest reward through the governor
func (d *actionDispatcher) AwardQuest(ctx context.Context, username string, age int, title string, reward int64) (*entities.EarnResult, error) {
	if title == "" {
		return nil, fmt.Errorf("quest title is required: %w", entities.ErrInvalidInput)
	}
	if reward <= 0 {
		return nil, fmt.Errorf("quest reward must be positive: %w", entities.ErrInvalidInput)
	}
	if err := d.lockWallet(ctx, username); err != nil {
		return nil, err
	}

	result, err := d.issue(ctx, username, age, "quest:"+title, reward, "", entities.TransactionTypeQuestReward)
	if err != nil {
		return nil, err
	}
	if !result.Blocked {
		result.Message = utils.QuestRewardMessage(title)
		utils.Notify(d.eventPublisher, username, events.NotificationQuestReward, result.Earned, result.Message)
	}
	return result, nil
}

// issue runs the cooldown and governor checks and credits the wallet.
// The caller must hold the wallet lock.
func (d *actionDispatcher) issue(ctx context.Context, username string, age int, event string, requested int64, action entities.Action, txType entities.TransactionType) (*entities.EarnResult, error) {
	now := d.now()

	if action.HasCooldown() {
		expiresAt, err := d.cooldownRepo.GetExpiry(ctx, username, action)
		if err != nil {
			return nil, fmt.Errorf("failed to get cooldown: %w", err)
		}
		if expiresAt != nil && now.Before(*expiresAt) {
			return entities.NewBlockedEarnResult(entities.EarnReasonCooldown), nil
		}
	}

	check, err := d.governor.CanUserEarn(ctx, username, requested)
	if err != nil {
		return nil, fmt.Errorf("failed to check earning limits: %w", err)
	}
	if !check.Allowed {
		return entities.NewBlockedEarnResult(check.Reason), nil
	}
	if check.AdjustedAmount <= 0 {
		return entities.NewBlockedEarnResult(entities.EarnReasonNoCoins), nil
	}

	_, err = d.ledger.AddCoins(ctx, username, age, event, check.AdjustedAmount,
		entities.WithTransactionType(txType),
		entities.WithMetadata(map[string]any{"requested": requested}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add coins: %w", err)
	}

	if err := d.governor.RecordPayout(ctx, username, check.AdjustedAmount, event); err != nil {
		return nil, fmt.Errorf("failed to record payout: %w", err)
	}

	if action.HasCooldown() {
		if err := d.cooldownRepo.SetExpiry(ctx, username, action, now.Add(action.Cooldown())); err != nil {
			return nil, fmt.Errorf("failed to set cooldown: %w", err)
		}
	}

	split := utils.AgeSplit(age, check.AdjustedAmount)
	return &entities.EarnResult{
		Earned:  split.Available,
		Locked:  split.LockedForCollege,
		Message: entities.EarnedMessage(split.Available),
	}, nil
}

func (d *actionDispatcher) lockWallet(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("username is required: %w", entities.ErrInvalidInput)
	}
	if _, err := d.walletRepo.GetForUpdate(ctx, username); err != nil {
		return fmt.Errorf("failed to lock wallet: %w", err)
	}
	return nil
}
