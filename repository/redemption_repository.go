package repository

import (
	"context"
	"errors"
	"fmt"

	"dahcoins/database"
	"dahcoins/domain/entities"

	"github.com/jackc/pgx/v5"
)

const redemptionColumns = `id, username, item_id, price_paid, flash_sale_id, status, code, reference, redeemed_at`

// RedemptionRepository implements the RedemptionRepository interface
type RedemptionRepository struct {
	q Queryable
}

// NewRedemptionRepository creates a new redemption repository
func NewRedemptionRepository(db *database.DB) *RedemptionRepository {
	return &RedemptionRepository{q: db.Pool}
}

// NewRedemptionRepositoryScoped creates a new redemption repository bound to a transaction
func NewRedemptionRepositoryScoped(tx Queryable) *RedemptionRepository {
	return &RedemptionRepository{q: tx}
}

// Create inserts a redemption and fills in its ID
func (r *RedemptionRepository) Create(ctx context.Context, redemption *entities.Redemption) error {
	query := `
		INSERT INTO redemptions (username, item_id, price_paid, flash_sale_id, status, code, reference, redeemed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.q.QueryRow(ctx, query,
		redemption.Username,
		redemption.ItemID,
		redemption.PricePaid,
		redemption.FlashSaleID,
		redemption.Status,
		redemption.Code,
		redemption.Reference,
		redemption.RedeemedAt,
	).Scan(&redemption.ID)
	if err != nil {
		return fmt.Errorf("failed to create redemption for %s: %w", redemption.Username, err)
	}
	return nil
}

// GetByID returns a redemption, or nil if it does not exist
func (r *RedemptionRepository) GetByID(ctx context.Context, id int64) (*entities.Redemption, error) {
	query := `SELECT ` + redemptionColumns + ` FROM redemptions WHERE id = $1`

	redemption, err := scanRedemption(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get redemption %d: %w", id, err)
	}
	return redemption, nil
}

// GetByUser returns the user's redemptions, newest first
func (r *RedemptionRepository) GetByUser(ctx context.Context, username string) ([]*entities.Redemption, error) {
	query := `SELECT ` + redemptionColumns + ` FROM redemptions WHERE username = $1 ORDER BY redeemed_at DESC, id DESC`

	rows, err := r.q.Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query redemptions for %s: %w", username, err)
	}
	defer rows.Close()

	redemptions := make([]*entities.Redemption, 0)
	for rows.Next() {
		redemption, err := scanRedemption(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}
		redemptions = append(redemptions, redemption)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating redemptions: %w", err)
	}
	return redemptions, nil
}

// UpdateStatus moves a redemption from one status to another; false if it was not in from
func (r *RedemptionRepository) UpdateStatus(ctx context.Context, id int64, from, to entities.RedemptionStatus) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE redemptions SET status = $3 WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to update redemption %d: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanRedemption(row pgx.Row) (*entities.Redemption, error) {
	var redemption entities.Redemption
	err := row.Scan(
		&redemption.ID,
		&redemption.Username,
		&redemption.ItemID,
		&redemption.PricePaid,
		&redemption.FlashSaleID,
		&redemption.Status,
		&redemption.Code,
		&redemption.Reference,
		&redemption.RedeemedAt,
	)
	if err != nil {
		return nil, err
	}
	return &redemption, nil
}
