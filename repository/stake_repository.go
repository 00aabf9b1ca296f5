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

const stakeColumns = `id, username, amount, duration_days, multiplier, reward, status, start_time, end_time, claimed_at`

// StakeRepository implements the StakeRepository interface
type StakeRepository struct {
	q Queryable
}

// NewStakeRepository creates a new stake repository
func NewStakeRepository(db *database.DB) *StakeRepository {
	return &StakeRepository{q: db.Pool}
}

// NewStakeRepositoryScoped creates a new stake repository bound to a transaction
func NewStakeRepositoryScoped(tx Queryable) *StakeRepository {
	return &StakeRepository{q: tx}
}

// Create inserts a stake and fills in its ID
func (r *StakeRepository) Create(ctx context.Context, stake *entities.Stake) error {
	query := `
		INSERT INTO stakes (username, amount, duration_days, multiplier, reward, status, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.q.QueryRow(ctx, query,
		stake.Username,
		stake.Amount,
		stake.DurationDays,
		stake.Multiplier,
		stake.Reward,
		stake.Status,
		stake.StartTime,
		stake.EndTime,
	).Scan(&stake.ID)
	if err != nil {
		return fmt.Errorf("failed to create stake for %s: %w", stake.Username, err)
	}
	return nil
}

// GetByID returns a stake, or nil if it does not exist
func (r *StakeRepository) GetByID(ctx context.Context, id int64) (*entities.Stake, error) {
	query := `SELECT ` + stakeColumns + ` FROM stakes WHERE id = $1`

	stake, err := scanStake(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stake %d: %w", id, err)
	}
	return stake, nil
}

// GetByUser returns the user's stakes, newest first
func (r *StakeRepository) GetByUser(ctx context.Context, username string) ([]*entities.Stake, error) {
	query := `SELECT ` + stakeColumns + ` FROM stakes WHERE username = $1 ORDER BY start_time DESC, id DESC`

	rows, err := r.q.Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query stakes for %s: %w", username, err)
	}
	defer rows.Close()

	return scanStakes(rows)
}

// CompleteMatured flips the user's matured active stakes to completed and returns them
func (r *StakeRepository) CompleteMatured(ctx context.Context, username string, now time.Time) ([]*entities.Stake, error) {
	query := `
		UPDATE stakes
		SET status = 'completed'
		WHERE username = $1 AND status = 'active' AND end_time <= $2
		RETURNING ` + stakeColumns

	rows, err := r.q.Query(ctx, query, username, now)
	if err != nil {
		return nil, fmt.Errorf("failed to complete matured stakes for %s: %w", username, err)
	}
	defer rows.Close()

	return scanStakes(rows)
}

// CompleteAllMatured flips every matured active stake to completed and returns them
func (r *StakeRepository) CompleteAllMatured(ctx context.Context, now time.Time) ([]*entities.Stake, error) {
	query := `
		UPDATE stakes
		SET status = 'completed'
		WHERE status = 'active' AND end_time <= $1
		RETURNING ` + stakeColumns

	rows, err := r.q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to complete matured stakes: %w", err)
	}
	defer rows.Close()

	return scanStakes(rows)
}

// MarkClaimed moves a completed stake to claimed; false if it was not completed
func (r *StakeRepository) MarkClaimed(ctx context.Context, id int64, claimedAt time.Time) (bool, error) {
	query := `
		UPDATE stakes
		SET status = 'claimed', claimed_at = $2
		WHERE id = $1 AND status = 'completed'
	`
	tag, err := r.q.Exec(ctx, query, id, claimedAt)
	if err != nil {
		return false, fmt.Errorf("failed to claim stake %d: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanStake(row pgx.Row) (*entities.Stake, error) {
	var stake entities.Stake
	err := row.Scan(
		&stake.ID,
		&stake.Username,
		&stake.Amount,
		&stake.DurationDays,
		&stake.Multiplier,
		&stake.Reward,
		&stake.Status,
		&stake.StartTime,
		&stake.EndTime,
		&stake.ClaimedAt,
	)
	if err != nil {
		return nil, err
	}
	return &stake, nil
}

func scanStakes(rows pgx.Rows) ([]*entities.Stake, error) {
	stakes := make([]*entities.Stake, 0)
	for rows.Next() {
		stake, err := scanStake(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stake: %w", err)
		}
		stakes = append(stakes, stake)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stakes: %w", err)
	}
	return stakes, nil
}
