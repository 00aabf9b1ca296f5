package utils

import "fmt"

// FormatCoins renders an amount with the correct singular or plural unit
func FormatCoins(amount int64) string {
	if amount == 1 || amount == -1 {
		return fmt.Sprintf("%d DAH Coin", amount)
	}
	return fmt.Sprintf("%d DAH Coins", amount)
}

// TipMessage formats the notification sent to a tip recipient
func TipMessage(from string, amount int64) string {
	return fmt.Sprintf("@%s sent you a tip of %d DAH Coin!", from, amount)
}

// DailyCheckInMessage formats the check-in notification
func DailyCheckInMessage(reward int64, streak int, bonus int64) string {
	extra := fmt.Sprintf("%d day streak", streak)
	if bonus > 0 {
		extra = fmt.Sprintf("%d day streak! Bonus +%d", streak, bonus)
	}
	return fmt.Sprintf("Daily check-in: +%d DAH Coins! %s", reward, extra)
}

// QuestRewardMessage formats the quest notification
func QuestRewardMessage(title string) string {
	return fmt.Sprintf("Quest reward: %s", title)
}
