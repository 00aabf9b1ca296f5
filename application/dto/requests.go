package dto

import "dahcoins/domain/entities"

// AddCoinsRequest credits a base amount through the age split
type AddCoinsRequest struct {
	Username       string
	Age            int
	Event          string
	Amount         int64
	IdempotencyKey string
}

// SpendCoinsRequest debits available coins
type SpendCoinsRequest struct {
	Username       string
	Amount         int64
	Event          string
	IdempotencyKey string
}

// EarnRequest rewards a single user action
type EarnRequest struct {
	Username       string
	Age            int
	Action         entities.Action
	IdempotencyKey string
}

// DailyLoginRequest records a daily check-in
type DailyLoginRequest struct {
	Username       string
	Age            int
	IdempotencyKey string
}

// QuestRequest pays out a completed quest
type QuestRequest struct {
	Username       string
	Age            int
	Title          string
	Reward         int64
	IdempotencyKey string
}

// TipRequest moves coins between two wallets
type TipRequest struct {
	From           string
	To             string
	Amount         int64
	IdempotencyKey string
}

// PayoutRequest charges coins against the pool without crediting a wallet
type PayoutRequest struct {
	Username       string
	Coins          int64
	Reason         string
	IdempotencyKey string
}

// StakeRequest locks coins for a fixed duration
type StakeRequest struct {
	Username       string
	Amount         int64
	DurationDays   int
	IdempotencyKey string
}

// ClaimStakeRequest pays out a completed stake
type ClaimStakeRequest struct {
	Username       string
	StakeID        int64
	IdempotencyKey string
}

// RedeemRequest buys a catalog item
type RedeemRequest struct {
	Username       string
	ItemID         string
	ViaFlashSale   bool
	IdempotencyKey string
}

// AdEventRequest records a single ad impression or click
type AdEventRequest struct {
	AdID     string
	Username string
}
