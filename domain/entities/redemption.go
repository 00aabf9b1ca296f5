package entities

import (
	"fmt"
	"time"
)

// RedemptionStatus tracks fulfillment progress
type RedemptionStatus string

const (
	RedemptionStatusPending   RedemptionStatus = "pending"
	RedemptionStatusFulfilled RedemptionStatus = "fulfilled"
	RedemptionStatusDelivered RedemptionStatus = "delivered"
)

// RedeemReason is the machine-readable cause of a failed redemption
type RedeemReason string

const (
	RedeemReasonInsufficientFunds RedeemReason = "insufficient_funds"
	RedeemReasonSoldOut           RedeemReason = "sold_out"
	RedeemReasonFlashExhausted    RedeemReason = "flash_sale_exhausted"
	RedeemReasonNotFound          RedeemReason = "not_found"
	RedeemReasonFailed            RedeemReason = "failed"
)

// Err maps a reason onto its sentinel error
func (r RedeemReason) Err() error {
	switch r {
	case RedeemReasonInsufficientFunds:
		return ErrInsufficientFunds
	case RedeemReasonSoldOut:
		return ErrSoldOut
	case RedeemReasonFlashExhausted:
		return ErrFlashSaleExhausted
	case RedeemReasonNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// Redemption is a completed spend of coins for a catalog item
type Redemption struct {
	ID          int64            `db:"id" json:"id"`
	Username    string           `db:"username" json:"username"`
	ItemID      string           `db:"item_id" json:"itemId"`
	PricePaid   int64            `db:"price_paid" json:"pricePaid"`
	FlashSaleID *int64           `db:"flash_sale_id" json:"flashSaleId,omitempty"`
	Status      RedemptionStatus `db:"status" json:"status"`
	Code        *string          `db:"code" json:"code,omitempty"`
	Reference   string           `db:"reference" json:"reference"`
	RedeemedAt  time.Time        `db:"redeemed_at" json:"redeemedAt"`
}

// RedeemResult is returned by the redemption store
type RedeemResult struct {
	Success    bool         `json:"success"`
	Reason     RedeemReason `json:"reason,omitempty"`
	Message    string       `json:"message"`
	Shortfall  int64        `json:"shortfall,omitempty"`
	Redemption *Redemption  `json:"redemption,omitempty"`
}

// NewFailedRedeemResult builds a failed result
func NewFailedRedeemResult(reason RedeemReason, message string) *RedeemResult {
	return &RedeemResult{Reason: reason, Message: message}
}

// InsufficientFundsMessage formats the shortfall message shown to users
func InsufficientFundsMessage(shortfall int64) string {
	return fmt.Sprintf("Not enough coins. You need %d more DAH Coins.", shortfall)
}
