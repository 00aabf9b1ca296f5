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

const flashSaleColumns = `id, item_id, discount_percent, start_time, end_time, max_claims, claimed`

// FlashSaleRepository implements the FlashSaleRepository interface
type FlashSaleRepository struct {
	q Queryable
}

// NewFlashSaleRepository creates a new flash sale repository
func NewFlashSaleRepository(db *database.DB) *FlashSaleRepository {
	return &FlashSaleRepository{q: db.Pool}
}

// NewFlashSaleRepositoryScoped creates a new flash sale repository bound to a transaction
func NewFlashSaleRepositoryScoped(tx Queryable) *FlashSaleRepository {
	return &FlashSaleRepository{q: tx}
}

// Create schedules a flash sale
func (r *FlashSaleRepository) Create(ctx context.Context, sale *entities.FlashSale) error {
	query := `
		INSERT INTO flash_sales (item_id, discount_percent, start_time, end_time, max_claims, claimed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.q.QueryRow(ctx, query,
		sale.ItemID,
		sale.DiscountPercent,
		sale.StartTime,
		sale.EndTime,
		sale.MaxClaims,
		sale.Claimed,
	).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("failed to create flash sale for %s: %w", sale.ItemID, err)
	}
	return nil
}

// GetActive returns sales whose window contains now and that still have claims left
func (r *FlashSaleRepository) GetActive(ctx context.Context, now time.Time) ([]*entities.FlashSale, error) {
	query := `SELECT ` + flashSaleColumns + `
		FROM flash_sales
		WHERE start_time <= $1 AND end_time > $1 AND claimed < max_claims
		ORDER BY end_time, id`

	rows, err := r.q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query active flash sales: %w", err)
	}
	defer rows.Close()

	sales := make([]*entities.FlashSale, 0)
	for rows.Next() {
		sale, err := scanFlashSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flash sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating flash sales: %w", err)
	}
	return sales, nil
}

// GetActiveForItem returns the open sale with the deepest discount for an item, or nil
func (r *FlashSaleRepository) GetActiveForItem(ctx context.Context, itemID string, now time.Time) (*entities.FlashSale, error) {
	query := `SELECT ` + flashSaleColumns + `
		FROM flash_sales
		WHERE item_id = $1 AND start_time <= $2 AND end_time > $2 AND claimed < max_claims
		ORDER BY discount_percent DESC, end_time, id
		LIMIT 1`

	sale, err := scanFlashSale(r.q.QueryRow(ctx, query, itemID, now))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flash sale for %s: %w", itemID, err)
	}
	return sale, nil
}

// Claim takes one claim if the sale is open at now; false if exhausted or closed
func (r *FlashSaleRepository) Claim(ctx context.Context, saleID int64, now time.Time) (bool, error) {
	query := `
		UPDATE flash_sales
		SET claimed = claimed + 1
		WHERE id = $1 AND claimed < max_claims AND start_time <= $2 AND end_time > $2
	`
	tag, err := r.q.Exec(ctx, query, saleID, now)
	if err != nil {
		return false, fmt.Errorf("failed to claim flash sale %d: %w", saleID, err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanFlashSale(row pgx.Row) (*entities.FlashSale, error) {
	var sale entities.FlashSale
	err := row.Scan(
		&sale.ID,
		&sale.ItemID,
		&sale.DiscountPercent,
		&sale.StartTime,
		&sale.EndTime,
		&sale.MaxClaims,
		&sale.Claimed,
	)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}
