package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCoins(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 DAH Coin", FormatCoins(1))
	assert.Equal(t, "0 DAH Coins", FormatCoins(0))
	assert.Equal(t, "250 DAH Coins", FormatCoins(250))
}

func TestDailyCheckInMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Daily check-in: +3 DAH Coins! 2 day streak", DailyCheckInMessage(3, 2, 0))
	assert.Equal(t, "Daily check-in: +3 DAH Coins! 7 day streak! Bonus +10", DailyCheckInMessage(3, 7, 10))
}

func TestNotificationMessages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "@bob sent you a tip of 5 DAH Coin!", TipMessage("bob", 5))
	assert.Equal(t, "Quest reward: First Post", QuestRewardMessage("First Post"))
}
