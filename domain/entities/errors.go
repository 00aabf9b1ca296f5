package entities

import "errors"

var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrDailyCapExceeded     = errors.New("daily earning limit reached")
	ErrMonthlyCapExceeded   = errors.New("monthly earning limit reached")
	ErrPoolDepleted         = errors.New("payout pool depleted")
	ErrCooldown             = errors.New("action on cooldown")
	ErrInvalidStakeAmount   = errors.New("invalid stake amount")
	ErrInvalidStakeDuration = errors.New("invalid stake duration")
	ErrStakeNotMature       = errors.New("stake has not matured")
	ErrStakeAlreadyClaimed  = errors.New("stake already claimed")
	ErrSoldOut              = errors.New("item sold out")
	ErrFlashSaleExhausted   = errors.New("flash sale exhausted")
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidTransition    = errors.New("invalid status transition")
)
