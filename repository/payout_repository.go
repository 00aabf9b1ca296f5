package repository

import (
	"context"
	"errors"
	"fmt"

	"dahcoins/database"
	"dahcoins/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PayoutRepository implements the PayoutRepository interface
type PayoutRepository struct {
	q Queryable
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *database.DB) *PayoutRepository {
	return &PayoutRepository{q: db.Pool}
}

// NewPayoutRepositoryScoped creates a new payout repository bound to a transaction
func NewPayoutRepositoryScoped(tx Queryable) *PayoutRepository {
	return &PayoutRepository{q: tx}
}

// GetUsage returns coins already charged to username for the day and month keys
func (r *PayoutRepository) GetUsage(ctx context.Context, username, dayKey, monthKey string) (int64, int64, error) {
	query := `
		SELECT
			COALESCE(SUM(coins) FILTER (WHERE period_key = $2), 0),
			COALESCE(SUM(coins) FILTER (WHERE period_key = $3), 0)
		FROM payout_usage
		WHERE username = $1 AND period_key IN ($2, $3)
	`

	var daily, monthly int64
	if err := r.q.QueryRow(ctx, query, username, dayKey, monthKey).Scan(&daily, &monthly); err != nil {
		return 0, 0, fmt.Errorf("failed to get payout usage for %s: %w", username, err)
	}
	return daily, monthly, nil
}

// IncrementUsage adds coins to both the daily and monthly counters
func (r *PayoutRepository) IncrementUsage(ctx context.Context, username, dayKey, monthKey string, coins int64) error {
	query := `
		INSERT INTO payout_usage (username, period_key, coins)
		VALUES ($1, $2, $4), ($1, $3, $4)
		ON CONFLICT (username, period_key) DO UPDATE
		SET coins = payout_usage.coins + EXCLUDED.coins
	`
	if _, err := r.q.Exec(ctx, query, username, dayKey, monthKey, coins); err != nil {
		return fmt.Errorf("failed to increment payout usage for %s: %w", username, err)
	}
	return nil
}

// GetTotalPaidOut returns the coins issued across all users
func (r *PayoutRepository) GetTotalPaidOut(ctx context.Context) (int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT total_paid_out FROM payout_totals WHERE id = 1`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to get total paid out: %w", err)
	}
	return total, nil
}

// AddToTotal increments total paid out only when the result stays within ceiling
func (r *PayoutRepository) AddToTotal(ctx context.Context, coins int64, ceiling float64) (bool, error) {
	query := `
		UPDATE payout_totals
		SET total_paid_out = total_paid_out + $1,
		    updated_at = NOW()
		WHERE id = 1 AND (total_paid_out + $1)::double precision <= $2
		RETURNING total_paid_out
	`

	var total int64
	err := r.q.QueryRow(ctx, query, coins, ceiling).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to add to total paid out: %w", err)
	}
	return true, nil
}

// AppendHistory records a payout
func (r *PayoutRepository) AppendHistory(ctx context.Context, record *entities.PayoutRecord) error {
	query := `
		INSERT INTO payout_history (username, coins, reason, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.q.QueryRow(ctx, query, record.Username, record.Coins, record.Reason, record.CreatedAt).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to append payout history for %s: %w", record.Username, err)
	}
	return nil
}

// TrimHistory deletes everything but the newest keep records
func (r *PayoutRepository) TrimHistory(ctx context.Context, keep int) error {
	query := `
		DELETE FROM payout_history
		WHERE id NOT IN (
			SELECT id FROM payout_history
			ORDER BY id DESC
			LIMIT $1
		)
	`
	if _, err := r.q.Exec(ctx, query, keep); err != nil {
		return fmt.Errorf("failed to trim payout history: %w", err)
	}
	return nil
}

// GetHistory returns the newest payout records first
func (r *PayoutRepository) GetHistory(ctx context.Context, limit int) ([]*entities.PayoutRecord, error) {
	query := `
		SELECT id, username, coins, reason, created_at
		FROM payout_history
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query payout history: %w", err)
	}
	defer rows.Close()

	records := make([]*entities.PayoutRecord, 0)
	for rows.Next() {
		var record entities.PayoutRecord
		if err := rows.Scan(&record.ID, &record.Username, &record.Coins, &record.Reason, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payout record: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payout history: %w", err)
	}

	return records, nil
}

// CountHistory returns the number of retained payout records
func (r *PayoutRepository) CountHistory(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM payout_history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payout history: %w", err)
	}
	return count, nil
}
