package entities

import "time"

const (
	// PayoutHistoryLimit is the number of payout records retained
	PayoutHistoryLimit = 1000

	dayKeyLayout   = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// PayoutRecord is a single issuance charged against the payout pool
type PayoutRecord struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Coins     int64     `db:"coins" json:"coins"`
	Reason    string    `db:"reason" json:"reason"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}

// DayKey returns the per-day counter key for t in UTC
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyLayout)
}

// MonthKey returns the per-month counter key for t in UTC
func MonthKey(t time.Time) string {
	return t.UTC().Format(monthKeyLayout)
}

// UserLimits is the read projection of a user's issuance caps
type UserLimits struct {
	Username         string `json:"username"`
	DailyUsed        int64  `json:"dailyUsed"`
	DailyCap         int64  `json:"dailyCap"`
	DailyRemaining   int64  `json:"dailyRemaining"`
	MonthlyUsed      int64  `json:"monthlyUsed"`
	MonthlyCap       int64  `json:"monthlyCap"`
	MonthlyRemaining int64  `json:"monthlyRemaining"`
}

// NewUserLimits derives remaining amounts from used counters
func NewUserLimits(username string, dailyUsed, dailyCap, monthlyUsed, monthlyCap int64) *UserLimits {
	return &UserLimits{
		Username:         username,
		DailyUsed:        dailyUsed,
		DailyCap:         dailyCap,
		DailyRemaining:   max(0, dailyCap-dailyUsed),
		MonthlyUsed:      monthlyUsed,
		MonthlyCap:       monthlyCap,
		MonthlyRemaining: max(0, monthlyCap-monthlyUsed),
	}
}

// RevenueStats is the platform-wide read projection of the payout pool
type RevenueStats struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalPaidOut  int64   `json:"totalPaidOut"`
	PoolAvailable float64 `json:"poolAvailable"`
	ReserveRatio  float64 `json:"reserveRatio"`
	PayoutCount   int64   `json:"payoutCount"`
}

// PoolAvailable computes the spendable share of revenue not yet paid out
func PoolAvailable(totalRevenue, reserveRatio float64, totalPaidOut int64) float64 {
	return totalRevenue*(1-reserveRatio) - float64(totalPaidOut)
}
