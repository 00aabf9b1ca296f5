package entities

// TransactionType represents the kind of ledger change
type TransactionType string

const (
	// Issuance
	TransactionTypeEarn        TransactionType = "earn"
	TransactionTypeQuestReward TransactionType = "quest_reward"
	TransactionTypeAdminCredit TransactionType = "admin_credit"

	// Transfers
	TransactionTypeTipSent     TransactionType = "tip_sent"
	TransactionTypeTipReceived TransactionType = "tip_received"

	// Staking
	TransactionTypeStakeLock  TransactionType = "stake_lock"
	TransactionTypeStakeClaim TransactionType = "stake_claim"

	// Store
	TransactionTypeRedemption TransactionType = "redemption"

	// Generic debit recorded by SpendCoins callers that do not specify a type
	TransactionTypeSpend TransactionType = "spend"
)

// IsIssuance returns true if the type creates new coins funded by the payout pool
func (tt TransactionType) IsIssuance() bool {
	return tt == TransactionTypeEarn ||
		tt == TransactionTypeQuestReward ||
		tt == TransactionTypeAdminCredit
}

// IsTransferType returns true if the type moves coins between users
func (tt TransactionType) IsTransferType() bool {
	return tt == TransactionTypeTipSent ||
		tt == TransactionTypeTipReceived
}

// IsStakingType returns true if the type belongs to the staking engine
func (tt TransactionType) IsStakingType() bool {
	return tt == TransactionTypeStakeLock ||
		tt == TransactionTypeStakeClaim
}

// IsDebitType returns true if the type removes coins from available
func (tt TransactionType) IsDebitType() bool {
	return tt == TransactionTypeTipSent ||
		tt == TransactionTypeStakeLock ||
		tt == TransactionTypeRedemption ||
		tt == TransactionTypeSpend
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
