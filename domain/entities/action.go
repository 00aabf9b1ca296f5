package entities

import (
	"fmt"
	"time"
)

// Action is a user activity that can earn DAH Coins
type Action string

const (
	ActionPostCreated   Action = "post_created"
	ActionLikeGiven     Action = "like_given"
	ActionCommentPosted Action = "comment_posted"
	ActionDailyLogin    Action = "daily_login"
	ActionStreakBonus   Action = "streak_bonus"
	ActionFirstFollower Action = "first_follower"
	ActionSaleCompleted Action = "sale_completed"
	ActionReferral      Action = "referral"
	ActionProfileView   Action = "profile_view"
)

var actionRates = map[Action]int64{
	ActionPostCreated:   5,
	ActionLikeGiven:     1,
	ActionCommentPosted: 2,
	ActionDailyLogin:    3,
	ActionStreakBonus:   10,
	ActionFirstFollower: 15,
	ActionSaleCompleted: 25,
	ActionReferral:      50,
	ActionProfileView:   1,
}

var actionCooldowns = map[Action]time.Duration{
	ActionLikeGiven:     2 * time.Second,
	ActionCommentPosted: 5 * time.Second,
	ActionProfileView:   60 * time.Second,
}

// AllActions returns every known action
func AllActions() []Action {
	return []Action{
		ActionPostCreated,
		ActionLikeGiven,
		ActionCommentPosted,
		ActionDailyLogin,
		ActionStreakBonus,
		ActionFirstFollower,
		ActionSaleCompleted,
		ActionReferral,
		ActionProfileView,
	}
}

// ParseAction converts a wire string into a known action
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.IsValid() {
		return "", fmt.Errorf("unknown action %q: %w", s, ErrInvalidInput)
	}
	return a, nil
}

// IsValid returns true if the action is part of the rate table
func (a Action) IsValid() bool {
	_, ok := actionRates[a]
	return ok
}

// BaseRate returns the coins requested from the governor for this action
func (a Action) BaseRate() int64 {
	return actionRates[a]
}

// Cooldown returns the minimum interval between two credited attempts, zero if none
func (a Action) Cooldown() time.Duration {
	return actionCooldowns[a]
}

// HasCooldown returns true if the action is rate limited per user
func (a Action) HasCooldown() bool {
	return a.Cooldown() > 0
}

func (a Action) String() string {
	return string(a)
}
