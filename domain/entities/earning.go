package entities

import "fmt"

// EarnReason is the machine-readable cause of a blocked issuance
type EarnReason string

const (
	EarnReasonNone         EarnReason = ""
	EarnReasonMonthlyLimit EarnReason = "monthly_limit"
	EarnReasonDailyLimit   EarnReason = "daily_limit"
	EarnReasonPoolDepleted EarnReason = "pool_depleted"
	EarnReasonCooldown     EarnReason = "cooldown"
	EarnReasonNoCoins      EarnReason = "no_coins"
)

// Message returns the user-facing text for a blocked reason
func (r EarnReason) Message() string {
	switch r {
	case EarnReasonMonthlyLimit:
		return "Monthly earning limit reached"
	case EarnReasonDailyLimit:
		return "Daily earning limit reached"
	case EarnReasonPoolDepleted:
		return "Reward pool is empty right now. Try again later"
	case EarnReasonCooldown:
		return "Slow down! You're doing that too fast"
	case EarnReasonNoCoins:
		return "No coins available for this action right now"
	default:
		return ""
	}
}

// Err maps a reason onto its sentinel error
func (r EarnReason) Err() error {
	switch r {
	case EarnReasonMonthlyLimit:
		return ErrMonthlyCapExceeded
	case EarnReasonDailyLimit:
		return ErrDailyCapExceeded
	case EarnReasonPoolDepleted:
		return ErrPoolDepleted
	case EarnReasonCooldown:
		return ErrCooldown
	default:
		return nil
	}
}

// EarnCheck is the governor's verdict on a requested issuance
type EarnCheck struct {
	Allowed        bool       `json:"allowed"`
	Reason         EarnReason `json:"reason,omitempty"`
	AdjustedAmount int64      `json:"adjustedAmount"`
}

// EarnResult is returned by the action dispatcher
type EarnResult struct {
	Earned  int64      `json:"earned"`
	Locked  int64      `json:"locked"`
	Message string     `json:"message"`
	Blocked bool       `json:"blocked"`
	Reason  EarnReason `json:"reason,omitempty"`
}

// NewBlockedEarnResult builds a blocked result carrying the reason's message
func NewBlockedEarnResult(reason EarnReason) *EarnResult {
	return &EarnResult{
		Blocked: true,
		Reason:  reason,
		Message: reason.Message(),
	}
}

// EarnedMessage formats the standard credit notification
func EarnedMessage(amount int64) string {
	return fmt.Sprintf("+%d DAH Coins!", amount)
}
