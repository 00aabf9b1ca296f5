package repository

import (
	"context"
	"errors"
	"fmt"

	"dahcoins/database"
	"dahcoins/domain/entities"

	"github.com/jackc/pgx/v5"
)

// RevenueRepository implements the RevenueRepository interface
type RevenueRepository struct {
	q Queryable
}

// NewRevenueRepository creates a new revenue repository
func NewRevenueRepository(db *database.DB) *RevenueRepository {
	return &RevenueRepository{q: db.Pool}
}

// NewRevenueRepositoryScoped creates a new revenue repository bound to a transaction
func NewRevenueRepositoryScoped(tx Queryable) *RevenueRepository {
	return &RevenueRepository{q: tx}
}

// AddRevenue increments the ad's running total and the global total.
// Both are single-statement increments so concurrent ad events never lose an update.
func (r *RevenueRepository) AddRevenue(ctx context.Context, adID string, amount float64) (float64, error) {
	adQuery := `
		INSERT INTO ad_revenue (ad_id, revenue)
		VALUES ($1, $2)
		ON CONFLICT (ad_id) DO UPDATE
		SET revenue = ad_revenue.revenue + EXCLUDED.revenue,
		    updated_at = NOW()
	`
	if _, err := r.q.Exec(ctx, adQuery, adID, amount); err != nil {
		return 0, fmt.Errorf("failed to add revenue for ad %s: %w", adID, err)
	}

	totalQuery := `
		UPDATE revenue_totals
		SET total_revenue = total_revenue + $1,
		    updated_at = NOW()
		WHERE id = 1
		RETURNING total_revenue
	`
	var total float64
	if err := r.q.QueryRow(ctx, totalQuery, amount).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to add total revenue: %w", err)
	}

	return total, nil
}

// RecordEvent appends an ad interaction to the event log
func (r *RevenueRepository) RecordEvent(ctx context.Context, event *entities.AdEvent) error {
	query := `
		INSERT INTO ad_events (ad_id, username, kind, revenue, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		event.AdID,
		event.Username,
		event.Kind,
		event.Revenue,
		event.CreatedAt,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to record ad event for ad %s: %w", event.AdID, err)
	}

	return nil
}

// GetTotalRevenue returns the aggregate revenue across all ads
func (r *RevenueRepository) GetTotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	if err := r.q.QueryRow(ctx, `SELECT total_revenue FROM revenue_totals WHERE id = 1`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to get total revenue: %w", err)
	}
	return total, nil
}

// GetAdRevenue returns the revenue attributed to one ad, zero if it has none
func (r *RevenueRepository) GetAdRevenue(ctx context.Context, adID string) (float64, error) {
	var revenue float64
	err := r.q.QueryRow(ctx, `SELECT revenue FROM ad_revenue WHERE ad_id = $1`, adID).Scan(&revenue)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get revenue for ad %s: %w", adID, err)
	}
	return revenue, nil
}
