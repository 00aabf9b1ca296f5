package entities

import (
	"fmt"
	"math"
	"time"
)

// FlashSale is a time-boxed, claim-capped discount on one item
type FlashSale struct {
	ID              int64     `db:"id" json:"id"`
	ItemID          string    `db:"item_id" json:"itemId"`
	DiscountPercent int       `db:"discount_percent" json:"discountPercent"`
	StartTime       time.Time `db:"start_time" json:"startTime"`
	EndTime         time.Time `db:"end_time" json:"endTime"`
	MaxClaims       int       `db:"max_claims" json:"maxClaims"`
	Claimed         int       `db:"claimed" json:"claimed"`
}

// IsActive returns true if the sale window contains now and claims remain
func (f *FlashSale) IsActive(now time.Time) bool {
	return !now.Before(f.StartTime) && now.Before(f.EndTime) && !f.IsExhausted()
}

// IsExhausted returns true if every claim has been taken
func (f *FlashSale) IsExhausted() bool {
	return f.Claimed >= f.MaxClaims
}

// RemainingClaims returns how many claims are left
func (f *FlashSale) RemainingClaims() int {
	return max(0, f.MaxClaims-f.Claimed)
}

// Price returns floor(listPrice × (1 − discount/100))
func (f *FlashSale) Price(listPrice int64) int64 {
	return int64(math.Floor(float64(listPrice) * float64(100-f.DiscountPercent) / 100))
}

// Validate checks the sale parameters before it is stored
func (f *FlashSale) Validate() error {
	if f.ItemID == "" {
		return fmt.Errorf("flash sale item is required: %w", ErrInvalidInput)
	}
	if f.DiscountPercent <= 0 || f.DiscountPercent > 100 {
		return fmt.Errorf("discount %d%% out of range: %w", f.DiscountPercent, ErrInvalidInput)
	}
	if f.MaxClaims <= 0 {
		return fmt.Errorf("max claims must be positive: %w", ErrInvalidInput)
	}
	if !f.EndTime.After(f.StartTime) {
		return fmt.Errorf("flash sale must end after it starts: %w", ErrInvalidInput)
	}
	return nil
}
