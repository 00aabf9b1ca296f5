package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dahcoins/database"
	"dahcoins/domain/entities"

	"github.com/jackc/pgx/v5"
)

// CooldownRepository implements the CooldownRepository interface on Postgres
type CooldownRepository struct {
	q Queryable
}

// NewCooldownRepository creates a new cooldown repository
func NewCooldownRepository(db *database.DB) *CooldownRepository {
	return &CooldownRepository{q: db.Pool}
}

// NewCooldownRepositoryScoped creates a new cooldown repository bound to a transaction
func NewCooldownRepositoryScoped(tx Queryable) *CooldownRepository {
	return &CooldownRepository{q: tx}
}

// GetExpiry returns when the user's cooldown for action ends, or nil if none was set
func (r *CooldownRepository) GetExpiry(ctx context.Context, username string, action entities.Action) (*time.Time, error) {
	query := `SELECT expires_at FROM action_cooldowns WHERE username = $1 AND action = $2`

	var expiresAt time.Time
	err := r.q.QueryRow(ctx, query, username, action).Scan(&expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cooldown for %s/%s: %w", username, action, err)
	}
	return &expiresAt, nil
}

// SetExpiry stores when the user's cooldown for action ends
func (r *CooldownRepository) SetExpiry(ctx context.Context, username string, action entities.Action, expiresAt time.Time) error {
	query := `
		INSERT INTO action_cooldowns (username, action, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (username, action) DO UPDATE SET expires_at = EXCLUDED.expires_at
	`
	if _, err := r.q.Exec(ctx, query, username, action, expiresAt); err != nil {
		return fmt.Errorf("failed to set cooldown for %s/%s: %w", username, action, err)
	}
	return nil
}
