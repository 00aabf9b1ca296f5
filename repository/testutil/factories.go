package testutil

import (
	"time"

	"dahcoins/domain/entities"

	"github.com/google/uuid"
)

// CreateTestLedgerEntry creates a credit entry for username with matching after-balances
func CreateTestLedgerEntry(username string, available, locked int64) *entities.LedgerEntry {
	return &entities.LedgerEntry{
		Username:        username,
		Event:           "post_created",
		TransactionType: entities.TransactionTypeEarn,
		BaseAmount:      available + locked,
		AvailableDelta:  available,
		LockedDelta:     locked,
		AvailableAfter:  available,
		LockedAfter:     locked,
		TransactionMetadata: map[string]any{
			"test": true,
		},
	}
}

// CreateTestStake creates an active stake starting at start
func CreateTestStake(username string, amount int64, durationDays int, start time.Time) *entities.Stake {
	stake, err := entities.NewStake(username, amount, durationDays, start)
	if err != nil {
		panic(err)
	}
	return stake
}

// CreateTestFlashSale creates a sale on itemID open from start for the given window
func CreateTestFlashSale(itemID string, discount, maxClaims int, start time.Time, window time.Duration) *entities.FlashSale {
	return &entities.FlashSale{
		ItemID:          itemID,
		DiscountPercent: discount,
		StartTime:       start,
		EndTime:         start.Add(window),
		MaxClaims:       maxClaims,
	}
}

// CreateTestRedemption creates a pending redemption of itemID
func CreateTestRedemption(username, itemID string, price int64) *entities.Redemption {
	return &entities.Redemption{
		Username:   username,
		ItemID:     itemID,
		PricePaid:  price,
		Status:     entities.RedemptionStatusPending,
		Reference:  uuid.NewString(),
		RedeemedAt: time.Now().UTC(),
	}
}

// CreateTestPayoutRecord creates a payout history record
func CreateTestPayoutRecord(username string, coins int64) *entities.PayoutRecord {
	return &entities.PayoutRecord{
		Username:  username,
		Coins:     coins,
		Reason:    "post_created",
		CreatedAt: time.Now().UTC(),
	}
}
