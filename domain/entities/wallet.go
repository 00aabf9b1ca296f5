package entities

import "time"

// Wallet holds a user's spendable and college-locked DAH Coin balances
type Wallet struct {
	Username         string    `db:"username" json:"username"`
	Available        int64     `db:"available" json:"available"`
	LockedForCollege int64     `db:"locked_for_college" json:"lockedForCollege"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// NewEmptyWallet returns the zero-balance wallet used before a user's first mutation
func NewEmptyWallet(username string) *Wallet {
	return &Wallet{Username: username}
}

// Total returns the sum of available and locked balances
func (w *Wallet) Total() int64 {
	return w.Available + w.LockedForCollege
}

// CanSpend returns true if the available balance covers amount
func (w *Wallet) CanSpend(amount int64) bool {
	return amount >= 0 && w.Available >= amount
}

// Shortfall returns how many coins are missing to cover amount
func (w *Wallet) Shortfall(amount int64) int64 {
	if w.Available >= amount {
		return 0
	}
	return amount - w.Available
}
