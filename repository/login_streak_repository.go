package repository

import (
	"context"
	"errors"
	"fmt"

	"dahcoins/database"
	"dahcoins/domain/entities"

	"github.com/jackc/pgx/v5"
)

// LoginStreakRepository implements the LoginStreakRepository interface
type LoginStreakRepository struct {
	q Queryable
}

// NewLoginStreakRepository creates a new login streak repository
func NewLoginStreakRepository(db *database.DB) *LoginStreakRepository {
	return &LoginStreakRepository{q: db.Pool}
}

// NewLoginStreakRepositoryScoped creates a new login streak repository bound to a transaction
func NewLoginStreakRepositoryScoped(tx Queryable) *LoginStreakRepository {
	return &LoginStreakRepository{q: tx}
}

// Get returns the user's streak, or nil if they have never checked in
func (r *LoginStreakRepository) Get(ctx context.Context, username string) (*entities.LoginStreak, error) {
	query := `
		SELECT username, streak, last_login_at, last_login_date
		FROM login_streaks
		WHERE username = $1
	`

	var streak entities.LoginStreak
	err := r.q.QueryRow(ctx, query, username).Scan(
		&streak.Username,
		&streak.Streak,
		&streak.LastLoginAt,
		&streak.LastLoginDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get login streak for %s: %w", username, err)
	}
	return &streak, nil
}

// Upsert stores the user's streak state
func (r *LoginStreakRepository) Upsert(ctx context.Context, streak *entities.LoginStreak) error {
	query := `
		INSERT INTO login_streaks (username, streak, last_login_at, last_login_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE
		SET streak = EXCLUDED.streak,
		    last_login_at = EXCLUDED.last_login_at,
		    last_login_date = EXCLUDED.last_login_date
	`
	_, err := r.q.Exec(ctx, query, streak.Username, streak.Streak, streak.LastLoginAt, streak.LastLoginDate)
	if err != nil {
		return fmt.Errorf("failed to save login streak for %s: %w", streak.Username, err)
	}
	return nil
}
