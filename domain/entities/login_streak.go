package entities

import "time"

const (
	// StreakBonusInterval awards a streak bonus every N consecutive days
	StreakBonusInterval = 7
	// StreakGracePeriod is the maximum gap between logins that keeps a streak alive
	StreakGracePeriod = 48 * time.Hour
)

// LoginStreak tracks consecutive daily check-ins
type LoginStreak struct {
	Username      string    `db:"username"`
	Streak        int       `db:"streak"`
	LastLoginAt   time.Time `db:"last_login_at"`
	LastLoginDate string    `db:"last_login_date"`
}

// LoggedInOn returns true if the last check-in happened on the UTC day of now
func (s *LoginStreak) LoggedInOn(now time.Time) bool {
	return s.LastLoginDate == DayKey(now)
}

// Advance returns the streak value after a check-in at now
func (s *LoginStreak) Advance(now time.Time) int {
	if s.Streak > 0 && now.Sub(s.LastLoginAt) < StreakGracePeriod {
		return s.Streak + 1
	}
	return 1
}

// IsBonusDay returns true if streak earns the weekly bonus
func IsBonusDay(streak int) bool {
	return streak > 0 && streak%StreakBonusInterval == 0
}

// DailyLoginResult describes the outcome of a check-in
type DailyLoginResult struct {
	AlreadyCheckedIn bool        `json:"alreadyCheckedIn"`
	Streak           int         `json:"streak"`
	Login            *EarnResult `json:"login,omitempty"`
	Bonus            *EarnResult `json:"bonus,omitempty"`
	Message          string      `json:"message"`
}
