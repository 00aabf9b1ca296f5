package events

import "dahcoins/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange     EventType = "balance_change"
	EventTypeNotification      EventType = "notification"
	EventTypeStakeChanged      EventType = "stake_changed"
	EventTypeRedemptionCreated EventType = "redemption_created"
	EventTypeRevenueRecorded   EventType = "revenue_recorded"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent is emitted for every ledger entry
type BalanceChangeEvent struct {
	Username        string
	Event           string
	TransactionType entities.TransactionType
	AvailableDelta  int64
	LockedDelta     int64
	AvailableAfter  int64
	LockedAfter     int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// NotificationKind identifies the template a notification was rendered from
type NotificationKind string

const (
	NotificationCoinsEarned NotificationKind = "coins_earned"
	NotificationDailyLogin  NotificationKind = "daily_login"
	NotificationQuestReward NotificationKind = "quest_reward"
	NotificationTipReceived NotificationKind = "tip_received"
	NotificationStakeClaim  NotificationKind = "stake_claimed"
	NotificationRedemption  NotificationKind = "redemption"
)

// NotificationEvent is a fire-and-forget user-facing message
type NotificationEvent struct {
	Username string
	Kind     NotificationKind
	Message  string
	Amount   int64
}

func (e NotificationEvent) Type() EventType {
	return EventTypeNotification
}

// StakeChangedEvent is emitted when a stake changes status
type StakeChangedEvent struct {
	StakeID   int64
	Username  string
	OldStatus entities.StakeStatus
	NewStatus entities.StakeStatus
	Amount    int64
	Reward    int64
}

func (e StakeChangedEvent) Type() EventType {
	return EventTypeStakeChanged
}

// RedemptionCreatedEvent is emitted when a redemption is recorded
type RedemptionCreatedEvent struct {
	RedemptionID int64
	Reference    string
	Username     string
	ItemID       string
	PricePaid    int64
	Status       entities.RedemptionStatus
	ViaFlashSale bool
}

func (e RedemptionCreatedEvent) Type() EventType {
	return EventTypeRedemptionCreated
}

// RevenueRecordedEvent is emitted for each ad impression or click
type RevenueRecordedEvent struct {
	AdID     string
	Username string
	Kind     entities.AdEventKind
	Revenue  float64
}

func (e RevenueRecordedEvent) Type() EventType {
	return EventTypeRevenueRecorded
}
